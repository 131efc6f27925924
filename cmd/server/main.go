package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/meduzzen/company-directory-api/internal/cache"
	"github.com/meduzzen/company-directory-api/internal/config"
	"github.com/meduzzen/company-directory-api/internal/database"
	"github.com/meduzzen/company-directory-api/internal/handlers"
	"github.com/meduzzen/company-directory-api/internal/middleware"
	"github.com/meduzzen/company-directory-api/internal/repository"
	"github.com/meduzzen/company-directory-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()
	redisClient := cache.Connect(cfg)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)

	// Services
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenExpireMins)
	authService := services.NewAuthService(userRepo, tokenService)
	userService := services.NewUserService(userRepo)
	companyService := services.NewCompanyService(companyRepo)
	membershipService := services.NewMembershipService(companyRepo, membershipRepo)
	auth0Service, err := services.NewAuth0Service(cfg, userRepo)
	if err != nil {
		log.Fatalf("Failed to initialize identity provider integration: %v", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	auth0Handler := handlers.NewAuth0Handler(auth0Service)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	// Router
	r := gin.Default()
	requireAuth := middleware.RequireAuth(authService)

	// Health and diagnostics
	r.GET("/", healthHandler.Root)
	r.GET("/postgres-test", healthHandler.PostgresTest)
	r.GET("/redis-test", healthHandler.RedisTest)

	// Local authentication and self-service profile
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.GET("/me", requireAuth, authHandler.GetMe)
		auth.POST("/me", requireAuth, authHandler.UpdateMe)
		auth.DELETE("/me", requireAuth, authHandler.DeleteMe)
	}

	// Federated login
	auth0 := r.Group("/auth0")
	{
		auth0.GET("/login", auth0Handler.Login)
		auth0.GET("/token", auth0Handler.Token)
		auth0.POST("/token/client", auth0Handler.TokenClient)
		auth0.GET("/protected", auth0Handler.Protected)
	}

	// User directory
	users := r.Group("/users")
	{
		users.GET("", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
		users.POST("", userHandler.CreateUser)
		users.PUT("/:id", requireAuth, userHandler.UpdateUser)
		users.DELETE("/:id", requireAuth, userHandler.DeleteUser)
	}

	// Companies: public read, owner-gated mutation
	companies := r.Group("/companies")
	{
		companies.GET("", companyHandler.ListCompanies)
		companies.POST("", requireAuth, companyHandler.CreateCompany)
		companies.GET("/owned", requireAuth, companyHandler.ListOwnedCompanies)
		companies.POST("/owned", requireAuth, companyHandler.CreateCompany)
		companies.PUT("/owned/:id", requireAuth, companyHandler.UpdateCompany)
		companies.DELETE("/owned/:id", requireAuth, companyHandler.DeleteCompany)
		companies.GET("/joined", requireAuth, membershipHandler.ListJoinedCompanies)
		companies.GET("/:id", companyHandler.GetCompany)
		companies.PUT("/:id", requireAuth, companyHandler.UpdateCompany)
		companies.DELETE("/:id", requireAuth, companyHandler.DeleteCompany)

		// Membership workflows scoped to a company
		companies.POST("/:id/invite", requireAuth, membershipHandler.SendInvitation)
		companies.GET("/:id/invitations", requireAuth, membershipHandler.ListCompanyInvitations)
		companies.POST("/:id/membership-requests", requireAuth, membershipHandler.RequestMembership)
		companies.GET("/:id/membership-requests", requireAuth, membershipHandler.ListCompanyMembershipRequests)
		companies.GET("/:id/members", membershipHandler.ListMembers)
		companies.DELETE("/:id/members/me", requireAuth, membershipHandler.LeaveCompany)
		companies.DELETE("/:id/members/:user_id", requireAuth, membershipHandler.RemoveMember)
	}

	// Invitations addressed to or issued by the caller
	invitations := r.Group("/invitations", requireAuth)
	{
		invitations.GET("/my", membershipHandler.ListMyInvitations)
		invitations.DELETE("/:id", membershipHandler.CancelInvitation)
		invitations.PUT("/:id/accept", membershipHandler.AcceptInvitation)
		invitations.PUT("/:id/decline", membershipHandler.DeclineInvitation)
	}

	// Membership requests authored by or decided by the caller
	membershipRequests := r.Group("/membership-requests", requireAuth)
	{
		membershipRequests.GET("/my", membershipHandler.ListMyMembershipRequests)
		membershipRequests.DELETE("/:id", membershipHandler.CancelMembershipRequest)
		membershipRequests.PUT("/:id/:action", membershipHandler.HandleMembershipRequest)
	}

	// Start server
	log.Printf("%s starting on :8080", cfg.AppName)
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
