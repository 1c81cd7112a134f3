package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kikgames18/service-kpi-dashboard/authenticator"
	"github.com/kikgames18/service-kpi-dashboard/controllers"
	"github.com/kikgames18/service-kpi-dashboard/database"
	authmiddleware "github.com/kikgames18/service-kpi-dashboard/middleware"
	"github.com/kikgames18/service-kpi-dashboard/repositories"
	"github.com/kikgames18/service-kpi-dashboard/services"
)

func main() {
	// Load environment variables from .env file, if present
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize database
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "service_kpi.db"
	}
	if err := database.InitializeDatabase(dbPath); err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.CloseDB()

	// Get database connection
	db := database.GetDB()

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	// Initialize token provider
	tokens, err := authenticator.NewJWTProvider(authenticator.JWTConfig{
		Secret: os.Getenv("JWT_SECRET"),
		TTL:    tokenTTL(),
	})
	if err != nil {
		logger.Fatal("Failed to initialize token provider", zap.Error(err))
	}

	// Initialize services
	srvs := services.NewServices(repos, tokens, logger)

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs)

	// Set up router
	r := setupRouter(ctrl, tokens, repos)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("Service KPI dashboard starting",
		zap.String("port", port),
		zap.String("database", dbPath))

	logger.Fatal("Server stopped", zap.Error(http.ListenAndServe(":"+port, r)))
}

// tokenTTL reads the token lifetime from TOKEN_TTL_HOURS, defaulting to 30 days
func tokenTTL() time.Duration {
	raw := os.Getenv("TOKEN_TTL_HOURS")
	if raw == "" {
		return authenticator.DefaultTokenTTL
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return authenticator.DefaultTokenTTL
	}
	return time.Duration(hours) * time.Hour
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, tokens authenticator.TokenProvider, repos *repositories.Repositories) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	r.Use(corsHandler.Handler)

	// PUBLIC ROUTES (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.GetDB().Ping(); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"status": "unhealthy"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status": "healthy", "service": "service-kpi-dashboard"}`)
	})

	r.Post("/api/auth/login", ctrl.Auth.Login)
	r.Post("/api/auth/register", ctrl.Auth.Register)

	// PROTECTED ROUTES (require a valid bearer token)
	requireAuth := authmiddleware.RequireAuth(tokens, repos.Profile)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/api/auth/me", ctrl.Auth.Me)
		r.Post("/api/auth/change-password", ctrl.Auth.ChangePassword)

		r.Route("/api/data", func(r chi.Router) {
			r.Get("/kpi-metrics", ctrl.KPI.Index)

			r.Get("/orders", ctrl.Order.Index)
			r.Post("/orders", ctrl.Order.Create)
			r.Put("/orders/{id}", ctrl.Order.Update)
			r.Delete("/orders/{id}", ctrl.Order.Delete)

			r.Get("/technicians", ctrl.Technician.Index)
			r.Post("/technicians", ctrl.Technician.Create)
			r.Put("/technicians/{id}", ctrl.Technician.Update)
			r.Delete("/technicians/{id}", ctrl.Technician.Delete)

			r.Get("/profile", ctrl.Profile.Show)
			r.Put("/profile", ctrl.Profile.Update)

			r.Get("/audit-log", ctrl.Audit.Index)

			r.Post("/backup/create", ctrl.Backup.Create)
			r.Post("/backup/restore", ctrl.Backup.Restore)
		})
	})

	return r
}

// allowedOrigins reads the CORS origin list from CORS_ORIGINS (comma separated)
func allowedOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
