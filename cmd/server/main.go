package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fitlogic/fitlogic-backend/internal/config"
	"github.com/fitlogic/fitlogic-backend/internal/db"
	"github.com/fitlogic/fitlogic-backend/internal/handler"
	"github.com/fitlogic/fitlogic-backend/internal/middleware"
	"github.com/fitlogic/fitlogic-backend/internal/repository"
	"github.com/fitlogic/fitlogic-backend/internal/service"
	"github.com/fitlogic/fitlogic-backend/internal/session"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable must be set")
	}

	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	accountRepo := repository.NewAccountRepository(database)
	resetTokenRepo := repository.NewResetTokenRepository(database)
	stateRepo := repository.NewStateRepository(database)
	workoutLogRepo := repository.NewWorkoutLogRepository(database)
	exerciseRepo := repository.NewExerciseRepository(database)

	emailService := service.NewEmailService(cfg.ResendAPIKey, cfg.MailFrom)
	tracker := service.NewTracker(stateRepo)
	sessions := session.NewManager()

	authHandler := handler.NewAuthHandler(cfg.JWTSecret, accountRepo, resetTokenRepo, emailService)
	profileHandler := handler.NewProfileHandler(tracker)
	scheduleHandler := handler.NewScheduleHandler(tracker)
	exerciseHandler := handler.NewExerciseHandler(exerciseRepo, tracker)
	workoutHandler := handler.NewWorkoutHandler(sessions, tracker, workoutLogRepo)

	// Rate limiters
	loginRL := middleware.NewRateLimiter(5, 15*time.Minute)
	forgotPasswordRL := middleware.NewRateLimiter(3, 60*time.Minute)

	r := mux.NewRouter()

	// Global middleware: CORS → Security Headers → MaxBytesReader
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
			next.ServeHTTP(w, r)
		})
	})

	r.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet, http.MethodOptions)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.Use(middleware.APIKeyMiddleware(cfg.APIKey))

	api.Handle("/auth/register", http.HandlerFunc(authHandler.Register)).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/login", loginRL.Middleware(http.HandlerFunc(authHandler.Login))).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/forgot-password", forgotPasswordRL.Middleware(http.HandlerFunc(authHandler.ForgotPassword))).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/reset-password", http.HandlerFunc(authHandler.ResetPassword)).Methods(http.MethodPost, http.MethodOptions)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	protected.HandleFunc("/profile", profileHandler.Get).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/profile", profileHandler.Put).Methods(http.MethodPut, http.MethodOptions)
	protected.HandleFunc("/metrics", profileHandler.Metrics).Methods(http.MethodGet, http.MethodOptions)

	protected.HandleFunc("/schedule", scheduleHandler.Get).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/schedule/rest-days", scheduleHandler.PutRestDays).Methods(http.MethodPut, http.MethodOptions)
	protected.HandleFunc("/schedule/rest-days/{day}/toggle", scheduleHandler.ToggleRestDay).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/schedule/soreness", scheduleHandler.Soreness).Methods(http.MethodPost, http.MethodOptions)

	protected.HandleFunc("/exercises", exerciseHandler.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/exercises", exerciseHandler.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/exercises/{id}", exerciseHandler.Delete).Methods(http.MethodDelete, http.MethodOptions)
	protected.HandleFunc("/exercises/calories", exerciseHandler.Calories).Methods(http.MethodPost, http.MethodOptions)

	protected.HandleFunc("/workouts/session", workoutHandler.StartSession).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/workouts/session", workoutHandler.GetSession).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/workouts/session", workoutHandler.Abandon).Methods(http.MethodDelete, http.MethodOptions)
	protected.HandleFunc("/workouts/session/done", workoutHandler.Done).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/workouts/session/skip-rest", workoutHandler.SkipRest).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/workouts/session/complete", workoutHandler.Complete).Methods(http.MethodPost, http.MethodOptions)

	protected.HandleFunc("/workouts/history", workoutHandler.History).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/workouts/history/{id}", workoutHandler.DeleteLog).Methods(http.MethodDelete, http.MethodOptions)

	addr := ":" + cfg.Port
	log.Printf("server starting on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
