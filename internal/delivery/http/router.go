package http

import (
	"net/http"

	"hospital-scheduling/internal/delivery/http/handler"
	"hospital-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	availabilityHandler *handler.AvailabilityHandler
	appointmentHandler  *handler.AppointmentHandler
	encounterHandler    *handler.EncounterHandler
	notificationHandler *handler.NotificationHandler
	directoryHandler    *handler.DirectoryHandler
	auditLogHandler     *handler.AuditLogHandler
	healthHandler       *handler.HealthHandler
	metricsHandler      http.Handler
	authMiddleware      *middleware.AuthMiddleware
	profileMiddleware   *middleware.ProfileMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	loggerMiddleware    *middleware.LoggerMiddleware
	rateLimiter         *middleware.RateLimiter
	recovery            func(http.Handler) http.Handler
}

type RouterConfig struct {
	AvailabilityHandler *handler.AvailabilityHandler
	AppointmentHandler  *handler.AppointmentHandler
	EncounterHandler    *handler.EncounterHandler
	NotificationHandler *handler.NotificationHandler
	DirectoryHandler    *handler.DirectoryHandler
	AuditLogHandler     *handler.AuditLogHandler
	HealthHandler       *handler.HealthHandler
	MetricsHandler      http.Handler
	AuthMiddleware      *middleware.AuthMiddleware
	ProfileMiddleware   *middleware.ProfileMiddleware
	CORSMiddleware      *middleware.CORSMiddleware
	LoggerMiddleware    *middleware.LoggerMiddleware
	RateLimiter         *middleware.RateLimiter
	Recovery            func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		router:              mux.NewRouter(),
		availabilityHandler: cfg.AvailabilityHandler,
		appointmentHandler:  cfg.AppointmentHandler,
		encounterHandler:    cfg.EncounterHandler,
		notificationHandler: cfg.NotificationHandler,
		directoryHandler:    cfg.DirectoryHandler,
		auditLogHandler:     cfg.AuditLogHandler,
		healthHandler:       cfg.HealthHandler,
		metricsHandler:      cfg.MetricsHandler,
		authMiddleware:      cfg.AuthMiddleware,
		profileMiddleware:   cfg.ProfileMiddleware,
		corsMiddleware:      cfg.CORSMiddleware,
		loggerMiddleware:    cfg.LoggerMiddleware,
		rateLimiter:         cfg.RateLimiter,
		recovery:            cfg.Recovery,
	}
}

func (r *Router) Setup() *mux.Router {
	// Ops endpoints
	r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)

	// Public routes
	public := api.PathPrefix("/public").Subrouter()
	public.HandleFunc("/doctors/{doctorId}/availability", r.availabilityHandler.ListPublicSlots).Methods(http.MethodGet)
	public.HandleFunc("/specializations", r.directoryHandler.ListSpecializations).Methods(http.MethodGet)
	public.HandleFunc("/specializations/{specialization}/doctors", r.directoryHandler.ListDoctorsBySpecialization).Methods(http.MethodGet)

	// Doctor routes (protected - doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.Use(r.profileMiddleware.Doctor)

	// Availability
	doctor.HandleFunc("/availability", r.availabilityHandler.ListSlots).Methods(http.MethodGet)
	doctor.HandleFunc("/availability", r.availabilityHandler.UpsertSlot).Methods(http.MethodPost)
	doctor.HandleFunc("/availability/{id}", r.availabilityHandler.DeleteSlot).Methods(http.MethodDelete)

	// Appointments
	doctor.HandleFunc("/appointments/pending", r.appointmentHandler.ListPendingForDoctor).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/accepted", r.appointmentHandler.ListAcceptedForDoctor).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}", r.appointmentHandler.TransitionAppointment).Methods(http.MethodPut)

	// Encounters
	doctor.HandleFunc("/encounters", r.encounterHandler.RecordEncounter).Methods(http.MethodPost)
	doctor.HandleFunc("/encounters/{id}", r.encounterHandler.GetEncounter).Methods(http.MethodGet)
	doctor.HandleFunc("/encounters/{id}/prescription", r.encounterHandler.GetPrescriptionByEncounter).Methods(http.MethodGet)
	doctor.HandleFunc("/patients", r.directoryHandler.ListPatients).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/{patientId}/encounters", r.encounterHandler.ListPatientEncounters).Methods(http.MethodGet)
	doctor.HandleFunc("/prescriptions/{id}", r.encounterHandler.GetPrescription).Methods(http.MethodGet)

	doctor.HandleFunc("/notifications/count", r.notificationHandler.DoctorCount).Methods(http.MethodGet)

	// Patient routes (protected - patient only)
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.Use(r.profileMiddleware.Patient)

	patient.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/appointments", r.appointmentHandler.ListMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/notifications", r.notificationHandler.PatientList).Methods(http.MethodGet)
	patient.HandleFunc("/notifications/count", r.notificationHandler.PatientCount).Methods(http.MethodGet)

	// Admin routes (protected - admin only, read-only oversight)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/patients/{patientId}/appointments/pending", r.appointmentHandler.ListPendingForPatient).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{patientId}/appointments/accepted", r.appointmentHandler.ListAcceptedForPatient).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{patientId}/encounters", r.encounterHandler.ListPatientEncounters).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Global middleware, outermost first
	r.router.Use(r.loggerMiddleware.Handle)
	r.router.Use(r.recovery)
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.rateLimiter.Handle)

	return r.router
}
