package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kinspace/internal/config"
	"kinspace/internal/database"
	"kinspace/internal/handlers"
	"kinspace/internal/repository"
	"kinspace/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	personRepo := repository.NewPersonRepository(db)
	relationshipRepo := repository.NewRelationshipRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	graphRepo := repository.NewGraphRepository(db)

	// Initialize services
	authService := service.NewAuthService(accountRepo, cfg.SessionDuration)
	familyService := service.NewFamilyService(familyRepo, membershipRepo)
	claimService := service.NewClaimService(membershipRepo)
	personService := service.NewPersonService(personRepo, relationshipRepo, familyService)
	profileService := service.NewProfileService(profileRepo)
	graphService := service.NewGraphService(graphRepo)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService)
	familyHandler := handlers.NewFamilyHandler(familyService, graphService, emailService)
	claimHandler := handlers.NewClaimHandler(claimService)
	personHandler := handlers.NewPersonHandler(personService)
	profileHandler := handlers.NewProfileHandler(profileService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/register", authHandler.Register)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/logout", authHandler.Logout)

	// Family routes
	mux.HandleFunc("GET /api/families", middleware.RequireAuth(familyHandler.List))
	mux.HandleFunc("POST /api/families", middleware.RequireAuth(familyHandler.Create))
	mux.HandleFunc("POST /api/families/join", middleware.RequireAuth(familyHandler.Join))
	mux.HandleFunc("PATCH /api/families/{id}", middleware.RequireAuth(familyHandler.Rename))
	mux.HandleFunc("DELETE /api/families/{id}", middleware.RequireAuth(familyHandler.Remove))
	mux.HandleFunc("GET /api/families/{id}/members", middleware.RequireAuth(familyHandler.Members))
	mux.HandleFunc("POST /api/families/{id}/invite", middleware.RequireAuth(familyHandler.Invite))
	mux.HandleFunc("GET /api/families/{id}/graph", middleware.RequireAuth(familyHandler.Graph))

	// Identity claim
	mux.HandleFunc("POST /api/memberships/claim", middleware.RequireAuth(claimHandler.Claim))

	// Persons and relationships
	mux.HandleFunc("POST /api/people", middleware.RequireAuth(personHandler.Create))
	mux.HandleFunc("POST /api/relationships", middleware.RequireAuth(personHandler.CreateRelationship))

	// Profile
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profileHandler.Get))
	mux.HandleFunc("POST /api/profile", middleware.RequireAuth(profileHandler.Save))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}
	}
}
