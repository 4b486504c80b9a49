package http

import (
	"net/http"

	"medconnect/internal/delivery/http/handler"
	"medconnect/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

const uuidVar = "{id:[0-9a-fA-F-]{36}}"

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	professionalHandler  *handler.ProfessionalHandler
	patientHandler       *handler.PatientHandler
	hospitalHandler      *handler.HospitalHandler
	appointmentHandler   *handler.AppointmentHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	engagementHandler    *handler.EngagementHandler
	operationsHandler    *handler.OperationsHandler
	dashboardHandler     *handler.DashboardHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
	requestLogger        mux.MiddlewareFunc
	metricsHandler       http.Handler
}

type RouterConfig struct {
	AuthHandler          *handler.AuthHandler
	ProfessionalHandler  *handler.ProfessionalHandler
	PatientHandler       *handler.PatientHandler
	HospitalHandler      *handler.HospitalHandler
	AppointmentHandler   *handler.AppointmentHandler
	MedicalRecordHandler *handler.MedicalRecordHandler
	EngagementHandler    *handler.EngagementHandler
	OperationsHandler    *handler.OperationsHandler
	DashboardHandler     *handler.DashboardHandler
	AuditLogHandler      *handler.AuditLogHandler
	AuthMiddleware       *middleware.AuthMiddleware
	CORSMiddleware       *middleware.CORSMiddleware
	RequestLogger        mux.MiddlewareFunc
	MetricsHandler       http.Handler
}

func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          cfg.AuthHandler,
		professionalHandler:  cfg.ProfessionalHandler,
		patientHandler:       cfg.PatientHandler,
		hospitalHandler:      cfg.HospitalHandler,
		appointmentHandler:   cfg.AppointmentHandler,
		medicalRecordHandler: cfg.MedicalRecordHandler,
		engagementHandler:    cfg.EngagementHandler,
		operationsHandler:    cfg.OperationsHandler,
		dashboardHandler:     cfg.DashboardHandler,
		auditLogHandler:      cfg.AuditLogHandler,
		authMiddleware:       cfg.AuthMiddleware,
		corsMiddleware:       cfg.CORSMiddleware,
		requestLogger:        cfg.RequestLogger,
		metricsHandler:       cfg.MetricsHandler,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(r.corsMiddleware.Handle)
	if r.requestLogger != nil {
		r.router.Use(r.requestLogger)
	}

	// Preflight requests need a matching route for the CORS middleware to run.
	r.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if r.metricsHandler != nil {
		r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public routes
	public := api.NewRoute().Subrouter()
	public.HandleFunc("/auth/register", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	public.HandleFunc("/auth/login", r.authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/auth/provider-login", r.authHandler.ProviderLogin).Methods(http.MethodPost)
	public.HandleFunc("/auth/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	public.HandleFunc("/professionals", r.professionalHandler.List).Methods(http.MethodGet)
	public.HandleFunc("/professionals/{id}", r.professionalHandler.Get).Methods(http.MethodGet)
	public.HandleFunc("/professionals/{id}/reviews", r.professionalHandler.Reviews).Methods(http.MethodGet)
	public.HandleFunc("/hospitals", r.hospitalHandler.ListHospitals).Methods(http.MethodGet)
	public.HandleFunc("/hospitals/{id}", r.hospitalHandler.GetHospital).Methods(http.MethodGet)
	public.HandleFunc("/specialties", r.hospitalHandler.ListSpecialties).Methods(http.MethodGet)
	public.HandleFunc("/specialties/{id}", r.hospitalHandler.GetSpecialty).Methods(http.MethodGet)

	// Authenticated routes, any role
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", r.authHandler.GetMe).Methods(http.MethodGet)
	protected.HandleFunc("/auth/me", r.authHandler.UpdateMe).Methods(http.MethodPut)
	protected.HandleFunc("/auth/password", r.authHandler.ChangePassword).Methods(http.MethodPut)

	// Appointment ids are constrained so /appointments/draft reaches the patient routes.
	protected.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/upcoming", r.appointmentHandler.Upcoming).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/"+uuidVar, r.appointmentHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/"+uuidVar, r.appointmentHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/"+uuidVar+"/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)

	protected.HandleFunc("/medical-records", r.medicalRecordHandler.ListRecords).Methods(http.MethodGet)
	protected.HandleFunc("/medical-records/{id}", r.medicalRecordHandler.GetRecord).Methods(http.MethodGet)
	protected.HandleFunc("/exam-results", r.medicalRecordHandler.ListExams).Methods(http.MethodGet)
	protected.HandleFunc("/exam-results/{id}", r.medicalRecordHandler.GetExam).Methods(http.MethodGet)

	protected.HandleFunc("/support/tickets", r.engagementHandler.CreateTicket).Methods(http.MethodPost)
	protected.HandleFunc("/support/tickets", r.engagementHandler.ListTickets).Methods(http.MethodGet)
	protected.HandleFunc("/support/tickets/{id}", r.engagementHandler.GetTicket).Methods(http.MethodGet)
	protected.HandleFunc("/support/tickets/{id}/close", r.engagementHandler.CloseTicket).Methods(http.MethodPost)

	protected.HandleFunc("/notifications", r.engagementHandler.ListNotifications).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/unread-count", r.engagementHandler.UnreadCount).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", r.engagementHandler.MarkAllRead).Methods(http.MethodPost)
	protected.HandleFunc("/notifications/{id}/read", r.engagementHandler.MarkRead).Methods(http.MethodPatch)
	protected.HandleFunc("/notifications/{id}", r.engagementHandler.DeleteNotification).Methods(http.MethodDelete)

	protected.HandleFunc("/reminders", r.engagementHandler.ListReminders).Methods(http.MethodGet)
	protected.HandleFunc("/reminders", r.engagementHandler.CreateReminder).Methods(http.MethodPost)
	protected.HandleFunc("/reminders/{id}", r.engagementHandler.UpdateReminder).Methods(http.MethodPut)
	protected.HandleFunc("/reminders/{id}", r.engagementHandler.DeleteReminder).Methods(http.MethodDelete)

	protected.HandleFunc("/dashboard/stats", r.dashboardHandler.Stats).Methods(http.MethodGet)
	protected.HandleFunc("/export/{resource}", r.dashboardHandler.Export).Methods(http.MethodGet)

	// Patient routes
	patient := api.NewRoute().Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)

	patient.HandleFunc("/patients/me", r.patientHandler.GetMe).Methods(http.MethodGet)
	patient.HandleFunc("/patients/me", r.patientHandler.UpdateMe).Methods(http.MethodPut)
	patient.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/draft", r.appointmentHandler.GetDraft).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/draft", r.appointmentHandler.DiscardDraft).Methods(http.MethodDelete)
	patient.HandleFunc("/appointments/draft/confirm", r.appointmentHandler.ConfirmDraft).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/draft/{step}", r.appointmentHandler.SaveDraftStep).Methods(http.MethodPut)
	patient.HandleFunc("/reviews", r.engagementHandler.CreateReview).Methods(http.MethodPost)
	patient.HandleFunc("/reviews/me", r.engagementHandler.MyReviews).Methods(http.MethodGet)

	// Professional routes
	professional := api.NewRoute().Subrouter()
	professional.Use(r.authMiddleware.Authenticate)
	professional.Use(middleware.RequireProfessional)

	professional.HandleFunc("/professionals/me", r.professionalHandler.UpdateMe).Methods(http.MethodPut)
	professional.HandleFunc("/medical-records", r.medicalRecordHandler.CreateRecord).Methods(http.MethodPost)

	// Staff routes (admin or professional)
	staff := api.NewRoute().Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)

	staff.HandleFunc("/patients", r.patientHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}", r.patientHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/medical-records/{id}", r.medicalRecordHandler.UpdateRecord).Methods(http.MethodPut)
	staff.HandleFunc("/exam-results", r.medicalRecordHandler.CreateExam).Methods(http.MethodPost)
	staff.HandleFunc("/exam-results/{id}", r.medicalRecordHandler.UpdateExam).Methods(http.MethodPut)
	staff.HandleFunc("/supplies", r.operationsHandler.ListSupplies).Methods(http.MethodGet)
	staff.HandleFunc("/supplies/low-stock", r.operationsHandler.LowStock).Methods(http.MethodGet)
	staff.HandleFunc("/supplies/{id}", r.operationsHandler.GetSupply).Methods(http.MethodGet)

	// Admin routes
	admin := api.NewRoute().Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/auth/register/professional", r.authHandler.RegisterProfessional).Methods(http.MethodPost)
	admin.HandleFunc("/admin/professionals/{id}/status", r.professionalHandler.UpdateStatus).Methods(http.MethodPut)

	admin.HandleFunc("/admin/hospitals", r.hospitalHandler.CreateHospital).Methods(http.MethodPost)
	admin.HandleFunc("/admin/hospitals/{id}", r.hospitalHandler.UpdateHospital).Methods(http.MethodPut)
	admin.HandleFunc("/admin/hospitals/{id}", r.hospitalHandler.DeleteHospital).Methods(http.MethodDelete)
	admin.HandleFunc("/admin/specialties", r.hospitalHandler.CreateSpecialty).Methods(http.MethodPost)
	admin.HandleFunc("/admin/specialties/{id}", r.hospitalHandler.UpdateSpecialty).Methods(http.MethodPut)
	admin.HandleFunc("/admin/specialties/{id}", r.hospitalHandler.DeleteSpecialty).Methods(http.MethodDelete)

	admin.HandleFunc("/appointments/"+uuidVar, r.appointmentHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/medical-records/{id}", r.medicalRecordHandler.DeleteRecord).Methods(http.MethodDelete)
	admin.HandleFunc("/exam-results/{id}", r.medicalRecordHandler.DeleteExam).Methods(http.MethodDelete)
	admin.HandleFunc("/support/tickets/{id}", r.engagementHandler.UpdateTicket).Methods(http.MethodPatch)
	admin.HandleFunc("/admin/notifications", r.engagementHandler.CreateNotification).Methods(http.MethodPost)

	admin.HandleFunc("/financial/transactions", r.operationsHandler.ListTransactions).Methods(http.MethodGet)
	admin.HandleFunc("/financial/transactions", r.operationsHandler.CreateTransaction).Methods(http.MethodPost)
	admin.HandleFunc("/financial/transactions/{id}", r.operationsHandler.GetTransaction).Methods(http.MethodGet)
	admin.HandleFunc("/financial/transactions/{id}", r.operationsHandler.UpdateTransaction).Methods(http.MethodPut)
	admin.HandleFunc("/financial/transactions/{id}", r.operationsHandler.DeleteTransaction).Methods(http.MethodDelete)
	admin.HandleFunc("/financial/summary", r.operationsHandler.Summary).Methods(http.MethodGet)

	admin.HandleFunc("/supplies", r.operationsHandler.CreateSupply).Methods(http.MethodPost)
	admin.HandleFunc("/supplies/{id}", r.operationsHandler.UpdateSupply).Methods(http.MethodPut)
	admin.HandleFunc("/supplies/{id}/quantity", r.operationsHandler.AdjustQuantity).Methods(http.MethodPatch)
	admin.HandleFunc("/supplies/{id}", r.operationsHandler.DeleteSupply).Methods(http.MethodDelete)

	admin.HandleFunc("/admin/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/admin/audit-logs/{id}", r.auditLogHandler.Get).Methods(http.MethodGet)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
