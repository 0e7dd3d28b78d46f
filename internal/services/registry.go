package services

// ServiceContainer bundles the service layer for dependency injection.
type ServiceContainer struct {
	UserService        UserService
	EntitlementService EntitlementService
	QuotaService       QuotaService
	EnrollmentService  EnrollmentService
	SlotService        SlotService
	BookingService     BookingService
	PointsService      PointsService
	JobService         JobService
}
