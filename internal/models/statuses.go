package models

type UserStatus string
type UserRole string
type JobStatus string
type ApplicationStatus string
type BookingStatus string
type EnrollmentStatus string
type PointsTxType string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserRoleWorker     UserRole = "worker"
	UserRoleEmployer   UserRole = "employer"
	UserRoleContractor UserRole = "contractor"
	UserRoleAssistant  UserRole = "assistant"
	UserRoleAdmin      UserRole = "admin"

	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"

	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"

	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"

	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusExpired   EnrollmentStatus = "expired"
	EnrollmentStatusPending   EnrollmentStatus = "pending"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
	EnrollmentStatusRefunded  EnrollmentStatus = "refunded"
	EnrollmentStatusFailed    EnrollmentStatus = "failed"

	PointsTxRedeem PointsTxType = "redeem"
	PointsTxRefund PointsTxType = "refund"
)
