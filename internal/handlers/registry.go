package handlers

// AppHandlers bundles the HTTP layer for route registration.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	PlanHandler    *PlanHandler
	SlotHandler    *SlotHandler
	BookingHandler *BookingHandler
	PointsHandler  *PointsHandler
	JobHandler     *JobHandler
}
