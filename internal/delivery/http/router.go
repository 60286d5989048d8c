package http

import (
	"net/http"

	"consultation-booking/internal/delivery/http/handler"
	"consultation-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

// Router wires the schedule service API: customers, doctors and
// schedules, all behind token authentication.
type Router struct {
	router              *mux.Router
	customerHandler     *handler.CustomerHandler
	doctorHandler       *handler.DoctorHandler
	scheduleHandler     *handler.ScheduleHandler
	notificationHandler *handler.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	customerHandler *handler.CustomerHandler,
	doctorHandler *handler.DoctorHandler,
	scheduleHandler *handler.ScheduleHandler,
	notificationHandler *handler.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		customerHandler:     customerHandler,
		doctorHandler:       doctorHandler,
		scheduleHandler:     scheduleHandler,
		notificationHandler: notificationHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Customer management
	protected.HandleFunc("/customers", r.customerHandler.CreateCustomer).Methods(http.MethodPost)
	protected.HandleFunc("/customers", r.customerHandler.ListCustomers).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{id}", r.customerHandler.GetCustomer).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{id}", r.customerHandler.UpdateCustomer).Methods(http.MethodPut)
	protected.HandleFunc("/customers/{id}", r.customerHandler.DeleteCustomer).Methods(http.MethodDelete)

	// Doctor management
	protected.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	protected.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	protected.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// Schedule management
	protected.HandleFunc("/schedules", r.scheduleHandler.CreateSchedule).Methods(http.MethodPost)
	protected.HandleFunc("/schedules", r.scheduleHandler.ListSchedules).Methods(http.MethodGet)
	protected.HandleFunc("/schedules/{id}", r.scheduleHandler.GetSchedule).Methods(http.MethodGet)
	protected.HandleFunc("/schedules/{id}", r.scheduleHandler.UpdateSchedule).Methods(http.MethodPut)
	protected.HandleFunc("/schedules/{id}", r.scheduleHandler.DeleteSchedule).Methods(http.MethodDelete)

	// Notification failures (operator-facing)
	protected.HandleFunc("/notifications/failures", r.notificationHandler.ListFailedNotifications).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
