package routes

import (
	"github.com/go-chi/chi/v5"

	"aeroclub/flightdesk/internal/api"
	"aeroclub/flightdesk/internal/metrics"
	"aeroclub/flightdesk/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, handlers *api.Handlers, deps *api.Dependencies) {

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))

		// Presigned invoice downloads authenticate with the token itself
		v1.Get("/invoices/download", handlers.DownloadInvoiceHandler())

		// Everything else must carry a session
		v1.Group(func(member chi.Router) {
			member.Use(middleware.AuthMiddleware(deps.Services.Sessions))
			member.Use(middleware.IsMemberMiddleware())

			member.Get("/bookings", handlers.ListBookingsHandler())
			member.Post("/bookings", handlers.CreateBookingHandler())
			member.Get("/bookings/check-prerequisites", handlers.CheckPrerequisitesHandler())
			member.Get("/bookings/{id}", handlers.GetBookingHandler())
			member.Put("/bookings/{id}", handlers.UpdateBookingHandler())

			member.Get("/scheduler/day", handlers.SchedulerDayHandler())
			member.Post("/scheduler/reschedule", handlers.RescheduleHandler())

			member.Get("/aircraft", handlers.ListAircraftHandler())
			member.Get("/aircraft/{id}", handlers.GetAircraftHandler())
			member.Post("/aircraft/{id}/defects", handlers.ReportDefectHandler())
			member.Get("/aircraft/{id}/defects", handlers.ListDefectsHandler())
			member.Get("/lessons", handlers.ListLessonsHandler())
			member.Get("/lessons/{id}", handlers.GetLessonHandler())

			// Instructor group: workflow transitions
			member.Group(func(instructor chi.Router) {
				instructor.Use(middleware.IsInstructorMiddleware())

				instructor.Post("/bookings/{id}/briefing/complete", handlers.CompleteBriefingHandler())
				instructor.Post("/bookings/{id}/checkout", handlers.CheckoutHandler())
				instructor.Post("/bookings/{id}/checkin", handlers.CheckinHandler())
				instructor.Post("/bookings/{id}/debrief", handlers.CompleteDebriefHandler())

				// Staff group: billing and administration
				instructor.Group(func(staff chi.Router) {
					staff.Use(middleware.IsStaffMiddleware())

					staff.Get("/members", handlers.ListMembersHandler())
					staff.Get("/chargeables", handlers.ListChargeablesHandler())
					staff.Post("/invoices", handlers.CreateInvoiceHandler())
					staff.Get("/invoices/{id}/link", handlers.InvoiceLinkHandler())
					staff.Post("/payments", handlers.ProcessPaymentHandler())
				})
			})
		})
	})
}
