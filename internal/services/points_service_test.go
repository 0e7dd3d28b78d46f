package services

import (
	"testing"

	"workhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeemCapMath(t *testing.T) {
	t.Parallel()
	repo := newFakePointsRepo()
	repo.balances["user-1"] = 100000
	svc := NewPointsService(repo, 10, 50)

	// Purchase of 1000 rupees caps redemption at 500 rupees, regardless of the
	// requested points or the balance.
	result, err := svc.Redeem("user-1", 1000, 100000, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), result.PointsRedeemed)
	assert.Equal(t, int64(500), result.RupeeValue)
	assert.InDelta(t, 500.0, result.AmountDue, 0.001)

	balance, err := svc.Balance("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(95000), balance)
}

func TestRedeemRequestLimits(t *testing.T) {
	t.Parallel()
	repo := newFakePointsRepo()
	repo.balances["user-1"] = 100000
	svc := NewPointsService(repo, 10, 50)

	// Requested points below the cap bound the redemption.
	result, err := svc.Redeem("user-1", 1000, 200, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, int64(200), result.PointsRedeemed)
	assert.Equal(t, int64(20), result.RupeeValue)
}

func TestRedeemBalanceLimits(t *testing.T) {
	t.Parallel()
	repo := newFakePointsRepo()
	repo.balances["user-1"] = 30
	svc := NewPointsService(repo, 10, 50)

	result, err := svc.Redeem("user-1", 1000, 100000, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, int64(30), result.PointsRedeemed)
	assert.Equal(t, int64(3), result.RupeeValue)

	balance, _ := svc.Balance("user-1")
	assert.Equal(t, int64(0), balance)
}

func TestRedeemRoundsDownToWholeRupees(t *testing.T) {
	t.Parallel()
	repo := newFakePointsRepo()
	repo.balances["user-1"] = 100000
	svc := NewPointsService(repo, 10, 50)

	// 125 points is 12.5 rupees; only whole rupees redeem, so 120 points.
	result, err := svc.Redeem("user-1", 1000, 125, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, int64(120), result.PointsRedeemed)
	assert.Equal(t, int64(12), result.RupeeValue)
}

// The cap applies the percentage to the full fractional amount before
// flooring. Truncating the amount first would lose the paise and, for
// small purchases, floor a redeemable rupee down to zero.
func TestRedeemCapKeepsFractionalAmount(t *testing.T) {
	t.Parallel()
	repo := newFakePointsRepo()
	repo.balances["user-1"] = 100000
	svc := NewPointsService(repo, 10, 40)

	// 2.50 * 40% = 1.00 rupee. Flooring 2.50 to 2 first would give 0.
	result, err := svc.Redeem("user-1", 2.50, 100000, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.RupeeValue)
	assert.Equal(t, int64(10), result.PointsRedeemed)
	assert.InDelta(t, 1.50, result.AmountDue, 0.001)

	// 999.99 * 50% = 499.995, floored to 499 rupees.
	half := NewPointsService(repo, 10, 50)
	result, err = half.Redeem("user-1", 999.99, 100000, "booking-2")
	require.NoError(t, err)
	assert.Equal(t, int64(499), result.RupeeValue)
	assert.Equal(t, int64(4990), result.PointsRedeemed)
}

func TestRedeemNoopCases(t *testing.T) {
	t.Parallel()
	repo := newFakePointsRepo()
	repo.balances["user-1"] = 5 // below one rupee's worth
	svc := NewPointsService(repo, 10, 50)

	for name, run := range map[string]func() (*RedeemResult, error){
		"zero request":    func() (*RedeemResult, error) { return svc.Redeem("user-1", 1000, 0, "r") },
		"tiny balance":    func() (*RedeemResult, error) { return svc.Redeem("user-1", 1000, 100, "r") },
		"zero amount":     func() (*RedeemResult, error) { return svc.Redeem("user-1", 0, 100, "r") },
		"negative points": func() (*RedeemResult, error) { return svc.Redeem("user-1", 1000, -5, "r") },
	} {
		result, err := run()
		require.NoError(t, err, name)
		assert.Equal(t, int64(0), result.PointsRedeemed, name)
	}

	balance, _ := svc.Balance("user-1")
	assert.Equal(t, int64(5), balance, "no-op redemptions leave the balance alone")
	assert.Empty(t, repo.transactions, "no-ops are not audited")
}

// stalePointsRepo reports a balance that a concurrent spender has already
// drained, forcing the conditional decrement to lose.
type stalePointsRepo struct {
	*fakePointsRepo
}

func (s *stalePointsRepo) GetBalance(string) (int64, error) {
	return 100000, nil
}

func TestRedeemLostRaceIsNoop(t *testing.T) {
	t.Parallel()
	inner := newFakePointsRepo()
	inner.balances["user-1"] = 10 // real balance, far below the stale read
	svc := NewPointsService(&stalePointsRepo{inner}, 10, 50)

	result, err := svc.Redeem("user-1", 1000, 100000, "booking-1")
	require.NoError(t, err, "a lost race is a quiet no-op, not an error")
	assert.Equal(t, int64(0), result.PointsRedeemed)
	assert.InDelta(t, 1000.0, result.AmountDue, 0.001)

	assert.Equal(t, int64(10), inner.balances["user-1"])
}

func TestRedeemRefundRoundTrip(t *testing.T) {
	t.Parallel()
	repo := newFakePointsRepo()
	repo.balances["user-1"] = 1000
	svc := NewPointsService(repo, 10, 50)

	result, err := svc.Redeem("user-1", 100, 500, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, int64(500), result.PointsRedeemed)

	require.NoError(t, svc.Refund("user-1", result.PointsRedeemed, "booking-1"))

	balance, err := svc.Balance("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)

	history, err := svc.History("user-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.PointsTxRedeem, history[0].Type)
	assert.Equal(t, models.PointsTxRefund, history[1].Type)
}

func TestRedeemSurvivesAuditFailure(t *testing.T) {
	t.Parallel()
	repo := newFakePointsRepo()
	repo.balances["user-1"] = 1000
	repo.failAudit = true
	svc := NewPointsService(repo, 10, 50)

	result, err := svc.Redeem("user-1", 100, 500, "booking-1")
	require.NoError(t, err, "the spend committed; a failed audit write is logged, not surfaced")
	assert.Equal(t, int64(500), result.PointsRedeemed)
	assert.Equal(t, int64(500), repo.balances["user-1"])
}
