package services

import (
	"workhub_backend/internal/auth"
	"workhub_backend/internal/models"
	"workhub_backend/internal/repositories"
	"workhub_backend/pkg/apperrors"
)

// ContactCard is what an unlock reveals about another user.
type ContactCard struct {
	UserID string          `json:"userId"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Phone  string          `json:"phone"`
	Role   models.UserRole `json:"role"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type UserService interface {
	Register(email, password, name, phone string, role models.UserRole) (*AuthResult, error)
	Login(email, password string) (*AuthResult, error)
	Profile(userID string) (*models.User, error)

	// UnlockContact reveals the target's contact details against the
	// unlock_contact quota. The quota bucket is keyed by the target's role, so
	// a plan can meter worker unlocks separately from contractor unlocks.
	UnlockContact(requesterID, targetID string) (*ContactCard, error)

	// SaveProfile bookmarks another user's profile. Enforcement happens at the
	// route; this verifies the target and burns the lifetime quota.
	SaveProfile(userID, targetID string) error
}

type userService struct {
	userRepo repositories.UserRepository
	quota    QuotaService
}

func NewUserService(userRepo repositories.UserRepository, quota QuotaService) UserService {
	return &userService{userRepo: userRepo, quota: quota}
}

func (s *userService) Register(email, password, name, phone string, role models.UserRole) (*AuthResult, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	if role == models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, apperrors.NewConflictError("Email is already registered")
	} else if err != repositories.ErrUserNotFound {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Phone:        phone,
		Role:         role,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *userService) Login(email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}
	if user.Status != models.UserStatusActive {
		return nil, apperrors.NewForbiddenError("Account is not active")
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *userService) Profile(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err, "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *userService) UnlockContact(requesterID, targetID string) (*ContactCard, error) {
	target, err := s.Profile(targetID)
	if err != nil {
		return nil, err
	}

	card := &ContactCard{
		UserID: target.ID,
		Name:   target.Name,
		Email:  target.Email,
		Phone:  target.Phone,
		Role:   target.Role,
	}

	// Your own contact card is always visible.
	if requesterID == targetID {
		return card, nil
	}

	role := target.Role
	if _, err := s.quota.Enforce(requesterID, models.CapabilityUnlockContact, &role); err != nil {
		return nil, err
	}

	if err := s.quota.RecordUsage(requesterID, models.CapabilityUnlockContact, &role,
		map[string]interface{}{"target_user_id": targetID}); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *userService) SaveProfile(userID, targetID string) error {
	if userID == targetID {
		return apperrors.ErrInvalidOperation("profiles", "Cannot save your own profile")
	}
	if _, err := s.Profile(targetID); err != nil {
		return err
	}

	return s.quota.RecordUsage(userID, models.CapabilitySaveProfile, nil,
		map[string]interface{}{"target_user_id": targetID})
}
