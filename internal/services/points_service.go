package services

import (
	"workhub_backend/internal/logger"
	"workhub_backend/internal/models"
	"workhub_backend/internal/repositories"
	"workhub_backend/pkg/apperrors"
)

// RedeemResult reports what a redemption actually did. PointsRedeemed is 0
// when the request was capped away entirely or a concurrent spender drained
// the balance first.
type RedeemResult struct {
	PointsRedeemed int64   `json:"pointsRedeemed"`
	RupeeValue     int64   `json:"rupeeValue"`
	AmountDue      float64 `json:"amountDue"`
}

type PointsService interface {
	// Redeem converts points into a discount on purchaseAmount. The redeemable
	// rupee value is min(cap, requested, available); a result of zero points is
	// a valid outcome, not an error.
	Redeem(userID string, purchaseAmount float64, requestedPoints int64, reference string) (*RedeemResult, error)

	// Refund credits points back for a reversed purchase.
	Refund(userID string, points int64, reference string) error

	Balance(userID string) (int64, error)
	History(userID string) ([]models.PointsTransaction, error)
}

type pointsService struct {
	pointsRepo repositories.PointsRepository
	rupeeRate  int64
	capPercent int64
}

func NewPointsService(pointsRepo repositories.PointsRepository, rupeeRate, capPercent int64) PointsService {
	if rupeeRate <= 0 {
		rupeeRate = 10
	}
	if capPercent <= 0 {
		capPercent = 50
	}
	return &pointsService{
		pointsRepo: pointsRepo,
		rupeeRate:  rupeeRate,
		capPercent: capPercent,
	}
}

func (s *pointsService) Redeem(userID string, purchaseAmount float64, requestedPoints int64, reference string) (*RedeemResult, error) {
	noop := &RedeemResult{AmountDue: purchaseAmount}

	if purchaseAmount <= 0 || requestedPoints <= 0 {
		return noop, nil
	}

	balance, err := s.pointsRepo.GetBalance(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err, "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	// All three bounds are expressed in whole rupees before taking the min:
	// the plan cap on this purchase, what the caller asked to spend, and what
	// the balance can actually cover.
	capRupees := int64(purchaseAmount * float64(s.capPercent) / 100)
	requestedRupees := requestedPoints / s.rupeeRate
	availableRupees := balance / s.rupeeRate

	rupees := capRupees
	if requestedRupees < rupees {
		rupees = requestedRupees
	}
	if availableRupees < rupees {
		rupees = availableRupees
	}

	if rupees <= 0 {
		return noop, nil
	}

	points := rupees * s.rupeeRate

	ok, err := s.pointsRepo.TryDecrement(userID, points)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !ok {
		// Lost the race against a concurrent spend. The purchase proceeds at
		// full price rather than failing.
		return noop, nil
	}

	s.audit(&models.PointsTransaction{
		UserID:        userID,
		Type:          models.PointsTxRedeem,
		Points:        points,
		MonetaryValue: rupees,
		Reference:     reference,
	})

	return &RedeemResult{
		PointsRedeemed: points,
		RupeeValue:     rupees,
		AmountDue:      purchaseAmount - float64(rupees),
	}, nil
}

func (s *pointsService) Refund(userID string, points int64, reference string) error {
	if points <= 0 {
		return nil
	}

	if err := s.pointsRepo.Increment(userID, points); err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.ErrNotFound(err, "User not found")
		}
		return apperrors.InternalError(err)
	}

	s.audit(&models.PointsTransaction{
		UserID:        userID,
		Type:          models.PointsTxRefund,
		Points:        points,
		MonetaryValue: points / s.rupeeRate,
		Reference:     reference,
	})
	return nil
}

// audit records the ledger entry. The balance change already committed, so a
// failed audit write is logged and swallowed rather than unwinding the spend.
func (s *pointsService) audit(tx *models.PointsTransaction) {
	if err := s.pointsRepo.AppendTransaction(tx); err != nil {
		logger.Error("failed to append points transaction",
			"user_id", tx.UserID, "type", tx.Type, "points", tx.Points, "error", err)
	}
}

func (s *pointsService) Balance(userID string) (int64, error) {
	balance, err := s.pointsRepo.GetBalance(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return 0, apperrors.ErrNotFound(err, "User not found")
		}
		return 0, apperrors.InternalError(err)
	}
	return balance, nil
}

func (s *pointsService) History(userID string) ([]models.PointsTransaction, error) {
	transactions, err := s.pointsRepo.FindTransactionsByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return transactions, nil
}
