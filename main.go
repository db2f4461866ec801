// main.go
package main

import (
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"go-holo-council/controllers"
	"go-holo-council/logger"
	"go-holo-council/middleware"
	"go-holo-council/services"
	"go-holo-council/store"
	"go-holo-council/websocket"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logger.Debug.Println("main: no .env file found, relying on environment")
	}
	logger.SetLogLevel(os.Getenv("APP_ENV"))

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	// Read configuration from environment variables
	applicationURL := os.Getenv("APPLICATION_URL")
	if applicationURL == "" {
		applicationURL = "http://localhost:8080" // Default to localhost for local testing
	}
	websocketURL := os.Getenv("WEBSOCKET_URL")
	if websocketURL == "" {
		websocketURL = "ws://localhost:8080/contest-updates" // Default to localhost for local testing
	}
	controllers.SetConfig(applicationURL, websocketURL)

	dbPath := os.Getenv("CONTEST_DB")
	if dbPath == "" {
		dbPath = "contest.db"
	}
	st, err := store.Open(dbPath)
	if err != nil {
		logger.Error.Fatalf("main: failed to open contest store %q: %v", dbPath, err)
	}
	defer func() { _ = st.Close() }()

	// Initialize session store
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "secret"
	}
	cookieStore := cookie.NewStore([]byte(sessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("council_session", cookieStore))

	// Services
	contest := services.NewContestService(st)
	tally := services.NewTallyService()
	settings := services.NewSettingsService(st)
	progress := services.NewProgressService(st)
	auth := services.NewAuthService(st)
	images := services.NewImageService()

	// Controllers
	authCtl := controllers.NewAuthController(auth)
	voteCtl := controllers.NewVoteController(contest, progress)
	chartCtl := controllers.NewChartController(tally, contest)
	progressCtl := controllers.NewProgressController(progress)
	adminCtl := controllers.NewAdminController(contest, settings)
	imageCtl := controllers.NewImageController(images)

	// Public routes
	router.GET("/health", controllers.Health)
	router.GET("/config", controllers.Config)
	router.POST("/login", authCtl.Login)
	router.POST("/logout", authCtl.Logout)

	// Protected routes
	protected := router.Group("/", middleware.AuthRequired)
	{
		protected.GET("/me", authCtl.Me)
		protected.GET("/qrcode", controllers.GetQRCode)
		protected.GET("/contest-updates", controllers.ContestUpdates)
		protected.GET("/charts/:view", chartCtl.GetChart)
		protected.GET("/charts", chartCtl.GetChartSummary)
		protected.POST("/votes", voteCtl.SubmitBallot)
		protected.POST("/votes/adjust", voteCtl.AdjustTokens)
		protected.POST("/votes/unlock", voteCtl.UnlockBallot)
		protected.GET("/votes/status", voteCtl.VotingStatus)
		protected.GET("/check", progressCtl.GetCheck)
		protected.GET("/warriors", progressCtl.GetWarriors)
		protected.POST("/images/edit", imageCtl.EditImage)
	}

	// Admin routes
	admin := router.Group("/admin", middleware.AuthRequired, middleware.AdminRequired())
	{
		admin.POST("/operators", adminCtl.AddOperator)
		admin.PUT("/operators", adminCtl.UpdateOperator)
		admin.DELETE("/operators/:username", adminCtl.DeleteOperator)
		admin.PUT("/operators/:username/photo", adminCtl.SetOperatorPhoto)
		admin.POST("/singers", adminCtl.AddSinger)
		admin.PUT("/singers/:id/photo", adminCtl.UpdateSingerPhoto)
		admin.DELETE("/singers/:id", adminCtl.DeleteSinger)
		admin.POST("/locks/charts/:view", adminCtl.ToggleChartLock)
		admin.POST("/locks/voting/:evening", adminCtl.ToggleVotingLock)
		admin.POST("/visibility", adminCtl.ToggleSingerVisibility)
		admin.DELETE("/votes", adminCtl.DeleteVote)
	}

	// Start the WebSocket fan-out and bind it to the store feed
	go websocket.HandleMessages()
	websocket.Start(st)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info.Printf("main: listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		logger.Error.Fatalf("Failed to run server: %v", err)
	}
}
