package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/xblade/league-api/internal/config"
	"github.com/xblade/league-api/internal/constants"
	"github.com/xblade/league-api/internal/database"
	"github.com/xblade/league-api/internal/handlers"
	"github.com/xblade/league-api/internal/middleware"
	"github.com/xblade/league-api/internal/realtime"
	"github.com/xblade/league-api/internal/repository"
	"github.com/xblade/league-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

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
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		redisAddr,                 // Redis address from config
		"",                        // username (empty for default user)
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	leagueRepo := repository.NewLeagueRepository(db)
	seasonRepo := repository.NewSeasonRepository(db)
	clubRepo := repository.NewClubRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	memberRepo := repository.NewMembershipRepository(db)

	// Realtime hub: broadcasts mutation events to per-season rooms
	hub := realtime.NewHub()

	// Services
	authService := services.NewAuthService(userRepo, cfg.BootstrapAdmin)
	membershipService := services.NewMembershipService(seasonRepo, clubRepo, playerRepo, memberRepo, hub)
	rosterService := services.NewRosterService(seasonRepo, clubRepo, playerRepo, memberRepo, hub)
	cascadeService := services.NewCascadeService(leagueRepo, seasonRepo, clubRepo, playerRepo, memberRepo, hub)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	leagueHandler := handlers.NewLeagueHandler(leagueRepo, cascadeService)
	seasonHandler := handlers.NewSeasonHandler(seasonRepo, leagueRepo, cascadeService)
	clubHandler := handlers.NewClubHandler(clubRepo, cascadeService)
	playerHandler := handlers.NewPlayerHandler(playerRepo, cascadeService)
	rosterHandler := handlers.NewRosterHandler(membershipService, rosterService)
	publicHandler := handlers.NewPublicHandler(leagueRepo, seasonRepo, clubRepo, playerRepo, membershipService, rosterService)
	wsHandler := handlers.NewWSHandler(hub)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "League API is running",
		})
	})

	// Realtime endpoint: clients join/leave season rooms over this socket
	r.GET("/ws", wsHandler.Serve)

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Public read-only routes
		public := api.Group("/public")
		{
			public.GET("/leagues", publicHandler.ListLeagues)
			public.GET("/leagues/:leagueId/seasons", publicHandler.ListLeagueSeasons)
			public.GET("/clubs", publicHandler.ListClubs)
			public.GET("/players", publicHandler.ListPlayers)
			public.GET("/seasons/:seasonId/clubs", publicHandler.ListSeasonClubs)
			public.GET("/seasons/:seasonId/players", publicHandler.ListSeasonPlayers)
			public.GET("/seasons/:seasonId/roster", publicHandler.SeasonRoster)
		}

		// Admin routes (authenticated admins only)
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			users := admin.Group("/users")
			{
				users.GET("", userHandler.ListUsers)
				users.PUT("/:userId", userHandler.UpdateUser)
				users.DELETE("/:userId", userHandler.DeleteUser)
			}

			leagues := admin.Group("/leagues")
			{
				leagues.POST("", leagueHandler.CreateLeague)
				leagues.GET("", leagueHandler.ListLeagues)
				leagues.GET("/:id", leagueHandler.GetLeague)
				leagues.PUT("/:id", leagueHandler.UpdateLeague)
				leagues.DELETE("/:id", leagueHandler.DeleteLeague)
			}

			seasons := admin.Group("/seasons")
			{
				seasons.POST("", seasonHandler.CreateSeason)
				seasons.GET("", seasonHandler.ListSeasons)
				seasons.GET("/:id", seasonHandler.GetSeason)
				seasons.PUT("/:id", seasonHandler.UpdateSeason)
				seasons.DELETE("/:id", seasonHandler.DeleteSeason)
			}

			clubs := admin.Group("/clubs")
			{
				clubs.POST("", clubHandler.CreateClub)
				clubs.GET("", clubHandler.ListClubs)
				clubs.GET("/:id", clubHandler.GetClub)
				clubs.PUT("/:id", clubHandler.UpdateClub)
				clubs.DELETE("/:id", clubHandler.DeleteClub)
			}

			players := admin.Group("/players")
			{
				players.POST("", playerHandler.CreatePlayer)
				players.GET("", playerHandler.ListPlayers)
				players.GET("/:id", playerHandler.GetPlayer)
				players.PUT("/:id", playerHandler.UpdatePlayer)
				players.DELETE("/:id", playerHandler.DeletePlayer)
			}

			sm := admin.Group("/season-management")
			{
				sm.POST("/clubs/create", rosterHandler.CreateClubInSeason)
				sm.POST("/players/create", rosterHandler.CreatePlayerInSeason)

				sm.POST("/clubs", rosterHandler.AddClubToSeason)
				sm.DELETE("/clubs/:seasonId/:clubId", rosterHandler.RemoveClubFromSeason)
				sm.GET("/clubs/:seasonId", rosterHandler.ListSeasonClubs)
				sm.GET("/clubs/available/:seasonId", rosterHandler.ListAvailableClubs)
				sm.PUT("/clubs/:seasonId/:clubId/assignment", rosterHandler.UpdateClubAssignment)

				sm.POST("/players", rosterHandler.AddPlayerToSeason)
				sm.DELETE("/players/:seasonId/:playerId", rosterHandler.RemovePlayerFromSeason)
				sm.GET("/players/:seasonId", rosterHandler.ListSeasonPlayers)
				sm.GET("/players/available/:seasonId", rosterHandler.ListAvailablePlayers)
				sm.PUT("/players/:seasonId/:playerId/assignment", rosterHandler.UpdatePlayerAssignment)

				sm.PUT("/roster/players/:playerId/club", rosterHandler.UpdatePlayerClub)
				sm.GET("/roster/:seasonId", rosterHandler.SeasonRoster)
			}
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
