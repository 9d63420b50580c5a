package main

import (
	"log"

	api "todovault-backend/cmd/api"
	authdomain "todovault-backend/internal/auth/domain"
	authRepo "todovault-backend/internal/auth/repository"
	authUsecase "todovault-backend/internal/auth/usecase"
	"todovault-backend/internal/task/notifier"
	taskRepo "todovault-backend/internal/task/repository"
	taskUsecase "todovault-backend/internal/task/usecase"
	"todovault-backend/pkg/config"
	"todovault-backend/pkg/database"
	"todovault-backend/pkg/fcm"
	"todovault-backend/pkg/kvstore"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &authdomain.RefreshToken{}, &authdomain.DeviceToken{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize the task collection store
	var store kvstore.Store
	switch cfg.StorageBackend {
	case "redis":
		store, err = kvstore.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.StorageQuotaBytes)
		if err != nil {
			log.Fatal("Failed to connect to redis:", err)
		}
		log.Println("Task storage backend: redis")
	case "memory":
		store = kvstore.NewMemoryStore(cfg.StorageQuotaBytes)
		log.Println("Task storage backend: memory (non-durable, dev only)")
	default:
		store, err = kvstore.NewGormStore(db, cfg.StorageQuotaBytes)
		if err != nil {
			log.Fatal("Failed to initialize database storage:", err)
		}
		log.Println("Task storage backend: database")
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	tokenRepository := authRepo.NewDeviceTokenRepository(db)
	taskRepository := taskRepo.NewKVTaskRepository(store)

	// Initialize use cases
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, cfg)
	taskUsecaseInstance := taskUsecase.NewTaskUsecase(taskRepository, nil)

	// Initialize FCM client and the due-date notifier (optional)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		}
	} else {
		log.Println("[WARN] No Firebase credentials configured, push notifications disabled")
	}

	expiryNotifier := notifier.NewExpiryNotifier(taskRepository, tokenRepository, fcmClient)
	expiryNotifier.Start()
	defer expiryNotifier.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, taskUsecaseInstance, tokenRepository)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
