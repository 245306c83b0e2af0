package http

import (
	"net/http"

	"school-backend/internal/handlers"
	"school-backend/internal/middleware"
	"school-backend/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	studentHandler *handlers.StudentHandler,
	structureHandler *handlers.FeeStructureHandler,
	recordHandler *handlers.FeeRecordHandler,
	paymentHandler *handlers.PaymentHandler,
	statsHandler *handlers.StatsHandler,
	documentHandler *handlers.DocumentHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// staff covers the roles allowed to manage fees and record payments
	staff := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.RequireRole(models.RoleAdmin, models.RoleAccountant)(h).ServeHTTP
	}
	// viewer additionally admits teachers for read-only fee views
	viewer := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.RequireRole(models.RoleAdmin, models.RoleAccountant, models.RoleTeacher)(h).ServeHTTP
	}
	parent := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.RequireRole(models.RoleParent)(h).ServeHTTP
	}
	// viewerOrParent admits every role; the handler still checks that a
	// parent only reaches records and documents of their linked student
	viewerOrParent := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.RequireRole(
			models.RoleAdmin, models.RoleAccountant, models.RoleTeacher, models.RoleParent,
		)(h).ServeHTTP
	}

	// Public routes
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Account management - admin only
	authAPI := r.PathPrefix("/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/signup", authMiddleware.RequireAdmin(http.HandlerFunc(authHandler.Signup)).ServeHTTP).Methods("POST")

	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("/{id}/toggle-active", userHandler.ToggleActive).Methods("PATCH")

	// Students directory
	studentsAPI := r.PathPrefix("/api/students").Subrouter()
	studentsAPI.Use(authMiddleware.Authenticate)
	studentsAPI.HandleFunc("", viewer(studentHandler.ListStudents)).Methods("GET")
	studentsAPI.HandleFunc("", staff(studentHandler.CreateStudent)).Methods("POST")
	studentsAPI.HandleFunc("/{id}", viewer(studentHandler.GetStudent)).Methods("GET")

	// Fee module. Fixed paths are registered before the /{id} variable routes
	// so mux never swallows them.
	feesAPI := r.PathPrefix("/api/fees").Subrouter()
	feesAPI.Use(authMiddleware.Authenticate)

	// Structure catalog
	feesAPI.HandleFunc("/structures", viewer(structureHandler.ListStructures)).Methods("GET")
	feesAPI.HandleFunc("/structures", staff(structureHandler.CreateStructure)).Methods("POST")
	feesAPI.HandleFunc("/structures/multi", staff(structureHandler.CreateMulti)).Methods("POST")
	feesAPI.HandleFunc("/structures/{id}", staff(structureHandler.UpdateStructure)).Methods("PUT")
	feesAPI.HandleFunc("/structures/{id}", staff(structureHandler.DeleteStructure)).Methods("DELETE")
	feesAPI.HandleFunc("/structures/{id}/toggle", staff(structureHandler.ToggleStructure)).Methods("PATCH")

	// Assignment engine
	feesAPI.HandleFunc("/assign", staff(structureHandler.Assign)).Methods("POST")

	// Records
	feesAPI.HandleFunc("/bulk", staff(recordHandler.CreateRecordsBulk)).Methods("POST")
	feesAPI.HandleFunc("/student/{studentId}", viewer(recordHandler.ListByStudent)).Methods("GET")
	feesAPI.HandleFunc("/my", parent(recordHandler.MyRecords)).Methods("GET")
	feesAPI.HandleFunc("/class/{classId}/status", viewer(statsHandler.ClassFeeStatus)).Methods("GET")

	// Payments and receipts
	feesAPI.HandleFunc("/payments/all", staff(paymentHandler.ListAll)).Methods("GET")
	feesAPI.HandleFunc("/payments/{studentId}", viewer(paymentHandler.ListByStudent)).Methods("GET")
	feesAPI.HandleFunc("/receipt/{paymentId}", viewerOrParent(documentHandler.Receipt)).Methods("GET")

	// Aggregates and reporting
	feesAPI.HandleFunc("/stats/summary", viewer(statsHandler.Summary)).Methods("GET")
	feesAPI.HandleFunc("/report.pdf", staff(documentHandler.Report)).Methods("GET")

	feesAPI.HandleFunc("", viewer(recordHandler.ListRecords)).Methods("GET")
	feesAPI.HandleFunc("", staff(recordHandler.CreateRecord)).Methods("POST")
	feesAPI.HandleFunc("/{id}", viewerOrParent(recordHandler.GetRecord)).Methods("GET")
	feesAPI.HandleFunc("/{id}", staff(recordHandler.UpdateRecord)).Methods("PUT")
	feesAPI.HandleFunc("/{id}", staff(recordHandler.DeleteRecord)).Methods("DELETE")
	feesAPI.HandleFunc("/{id}/pay", staff(paymentHandler.Pay)).Methods("POST")
	feesAPI.HandleFunc("/{id}/parent-pay", parent(paymentHandler.ParentPay)).Methods("POST")
	feesAPI.HandleFunc("/{id}/bill.pdf", viewerOrParent(documentHandler.Bill)).Methods("GET")

	return r
}
