package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"journeysAPI/handlers"
	"journeysAPI/internal/jobs"
	"journeysAPI/internal/notification"
	"journeysAPI/middleware"
	"journeysAPI/services"
)

var (
	dbPool              *pgxpool.Pool
	userService         *services.UserService
	streakService       *services.StreakService
	levelService        *services.LevelService
	badgeService        *services.BadgeService
	activityService     *services.ActivityService
	journalService      *services.JournalService
	addictionService    *services.AddictionService
	progressionService  *services.ProgressionService
	storeService        *services.StoreService
	notificationService *services.NotificationService
	fcmService          *notification.FCMService
	scheduler           *jobs.Scheduler
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to database")

	notificationService = services.NewNotificationService(dbPool)
	userService = services.NewUserService(dbPool)
	streakService = services.NewStreakService(dbPool)
	levelService = services.NewLevelService(dbPool)
	badgeService = services.NewBadgeService(dbPool)
	badgeService.SetNotifier(notificationService)

	activityService = services.NewActivityService(streakService, levelService, badgeService, userService)
	activityService.SetNotifier(notificationService)

	journalService = services.NewJournalService(dbPool, activityService)
	addictionService = services.NewAddictionService(dbPool, activityService, streakService)
	progressionService = services.NewProgressionService(streakService, levelService, badgeService, journalService)
	storeService = services.NewStoreService(dbPool)

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		notificationService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	scheduler = jobs.NewScheduler(streakService, levelService)

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	scheduler.Start()
	defer scheduler.Stop()
	defer notificationService.Stop()

	userHandler := handlers.NewUserHandler(userService)
	activityHandler := handlers.NewActivityHandler(activityService, userService)
	progressionHandler := handlers.NewProgressionHandler(progressionService, badgeService, userService)
	journalHandler := handlers.NewJournalHandler(journalService, userService)
	addictionHandler := handlers.NewAddictionHandler(addictionService, userService)
	storeHandler := handlers.NewStoreHandler(storeService, userService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, userService)
	webhookHandler := handlers.NewWebhookHandler(userService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "journeys-api"}`))
	}).Methods("GET")

	r.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	api := r.PathPrefix("/api/v1").Subrouter()

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/update-profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/delete-account", userHandler.DeleteAccount).Methods("DELETE")

	protected.HandleFunc("/user/login-ping", activityHandler.LoginPing).Methods("POST")
	protected.HandleFunc("/user/progression", progressionHandler.GetProgression).Methods("GET")
	protected.HandleFunc("/user/badges", progressionHandler.GetBadges).Methods("GET")

	protected.HandleFunc("/meditation/complete", activityHandler.CompleteMeditation).Methods("POST")

	protected.HandleFunc("/journal", journalHandler.SaveEntry).Methods("POST")
	protected.HandleFunc("/journal", journalHandler.GetEntries).Methods("GET")
	protected.HandleFunc("/journal/calendar", journalHandler.GetCalendar).Methods("GET")
	protected.HandleFunc("/user/stats/weekly", journalHandler.GetWeeklyStats).Methods("GET")
	protected.HandleFunc("/user/stats/monthly", journalHandler.GetMonthlyStats).Methods("GET")
	protected.HandleFunc("/user/stats/all-time", journalHandler.GetAllTimeStats).Methods("GET")

	protected.HandleFunc("/addictions", addictionHandler.GetCatalog).Methods("GET")
	protected.HandleFunc("/addictions/tracked", addictionHandler.GetTracked).Methods("GET")
	protected.HandleFunc("/addictions/{id}/check-in", addictionHandler.CheckIn).Methods("POST")
	protected.HandleFunc("/addictions/{id}/reset", addictionHandler.Reset).Methods("POST")

	protected.HandleFunc("/store", storeHandler.GetStore).Methods("GET")
	protected.HandleFunc("/store/purchase/item", storeHandler.PurchaseItem).Methods("POST")
	protected.HandleFunc("/store/inventory", storeHandler.GetUserItems).Methods("GET")

	protected.HandleFunc("/notifications", notificationHandler.GetNotifications).Methods("GET")
	protected.HandleFunc("/notifications/unread-count", notificationHandler.GetUnreadCount).Methods("GET")
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods("PUT")
	protected.HandleFunc("/notifications/read-all", notificationHandler.MarkAllAsRead).Methods("PUT")
	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")

	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
