package models

// PointsTransaction is the append-only audit trail of the points ledger.
// The authoritative balance lives on the user row; these rows record why it
// changed.
type PointsTransaction struct {
	BaseModel
	UserID        string       `gorm:"type:uuid;not null;index"`
	Type          PointsTxType `gorm:"type:varchar(10);not null"`
	Points        int64        `gorm:"not null"`
	MonetaryValue int64        `gorm:"not null;default:0"` // rupee value at redemption time
	Reference     string       // booking/purchase the points applied to
}
