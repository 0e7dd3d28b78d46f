package repositories

import (
	"errors"

	"workhub_backend/internal/models"

	"gorm.io/gorm"
)

type PointsRepository interface {
	GetBalance(userID string) (int64, error)
	TryDecrement(userID string, points int64) (bool, error)
	Increment(userID string, points int64) error
	AppendTransaction(transaction *models.PointsTransaction) error
	FindTransactionsByUser(userID string) ([]models.PointsTransaction, error)
}

type PointsRepositoryImpl struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) PointsRepository {
	return &PointsRepositoryImpl{db: db}
}

func (r *PointsRepositoryImpl) GetBalance(userID string) (int64, error) {
	var user models.User
	err := r.db.Select("points_balance").First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return user.PointsBalance, nil
}

// TryDecrement is the ledger's single conditional update: it succeeds only if
// the balance still covers the points at the moment of the write. A false
// return means a concurrent redemption won the race; the caller must treat
// the whole redemption as a no-op, never retry with a recomputed amount.
func (r *PointsRepositoryImpl) TryDecrement(userID string, points int64) (bool, error) {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND points_balance >= ?", userID, points).
		UpdateColumn("points_balance", gorm.Expr("points_balance - ?", points))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Increment credits points back unconditionally. Issuing it exactly once per
// reversed purchase is the caller's responsibility.
func (r *PointsRepositoryImpl) Increment(userID string, points int64) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("points_balance", gorm.Expr("points_balance + ?", points))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PointsRepositoryImpl) AppendTransaction(transaction *models.PointsTransaction) error {
	return r.db.Create(transaction).Error
}

func (r *PointsRepositoryImpl) FindTransactionsByUser(userID string) ([]models.PointsTransaction, error) {
	var transactions []models.PointsTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}
