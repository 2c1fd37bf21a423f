package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/hasibmuhammad/portal-server/internal/auth"
	"github.com/hasibmuhammad/portal-server/internal/config"
	"github.com/hasibmuhammad/portal-server/internal/handlers"
	"github.com/hasibmuhammad/portal-server/internal/middleware"
	"github.com/hasibmuhammad/portal-server/internal/repository"
	"github.com/hasibmuhammad/portal-server/internal/utils"
)

func SetupRouter(client *mongo.Client, cfg config.Config, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is healthy"))
	}).Methods("GET")

	tokens := auth.NewTokenService(cfg.JWTSecret, time.Hour)
	authenticator := middleware.NewAuthenticator(tokens)

	assignmentRepo := repository.NewAssignmentRepository(client, cfg.DatabaseName)
	submissionRepo := repository.NewSubmissionRepository(client, cfg.DatabaseName)
	mailer := utils.NewMailer(cfg.SMTP, logger)

	authHandler := handlers.NewAuthHandler(tokens, cfg.CookieSecure, logger)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentRepo, logger)
	submissionHandler := handlers.NewSubmissionHandler(submissionRepo, cfg.Grading, mailer, logger)

	router.HandleFunc("/jwt", authHandler.IssueToken).Methods("POST")
	router.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	// Public catalog routes
	public := router.PathPrefix("/api").Subrouter()
	public.HandleFunc("/assignments", assignmentHandler.GetAssignments).Methods("GET")
	public.HandleFunc("/assignments/browse", assignmentHandler.BrowseAssignments).Methods("GET")
	public.HandleFunc("/assignments/featured", assignmentHandler.FeaturedAssignments).Methods("GET")

	// Everything below requires a valid credential cookie
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(authenticator.RequireAuth)
	protected.HandleFunc("/assignments", assignmentHandler.CreateAssignment).Methods("POST")
	protected.HandleFunc("/assignments/{id}", assignmentHandler.GetAssignmentByID).Methods("GET")
	protected.HandleFunc("/assignments/{id}", assignmentHandler.UpdateAssignment).Methods("PUT")
	protected.HandleFunc("/assignments/{id}", assignmentHandler.DeleteAssignment).Methods("DELETE")
	protected.HandleFunc("/submissions", submissionHandler.CreateSubmission).Methods("POST")
	protected.HandleFunc("/submissions/pending", submissionHandler.PendingSubmissions).Methods("GET")
	protected.HandleFunc("/submissions/mine", submissionHandler.MySubmissions).Methods("GET")
	protected.HandleFunc("/submissions/{id}/grade", submissionHandler.GradeSubmission).Methods("PATCH")

	return router
}
