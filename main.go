package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/auth"
	"github.com/qasemB/Ecommerce-Api/config"
	"github.com/qasemB/Ecommerce-Api/events"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/routes"
	"github.com/qasemB/Ecommerce-Api/validation"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting application...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// Init DB
	db := initDatabase(cfg.DatabaseDSN)

	// Auto-migrate all tables and seed the super role
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	if err := models.SeedSuperRole(db); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	validation.Setup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := routes.Deps{
		DB:      db,
		Tokens:  auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL, cfg.RememberTTL),
		Revoked: initRevocations(ctx, cfg),
		Hub:     events.NewHub(),
	}
	publishers := events.Multi{deps.Hub}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
		if err != nil {
			log.Fatalf("❌ Kafka client: %v", err)
		}
		defer kafka.Close()
		publishers = append(publishers, kafka)
		log.Printf("📨 Publishing orders to %s", cfg.KafkaOrderTopic)
	}
	deps.Publisher = publishers

	// Gin setup
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	registry, err := routes.SetupRoutes(r, deps)
	if err != nil {
		log.Fatalf("❌ Routes: %v", err)
	}
	log.Printf("🔐 %d admin routes registered", len(registry.Entries()))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("🚀 Server running on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Shutdown: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// initRevocations uses redis when configured, otherwise an in-process list.
func initRevocations(ctx context.Context, cfg config.Config) auth.RevocationStore {
	if cfg.RedisAddr == "" {
		log.Println("⚠️ REDIS_ADDR not set, keeping revoked tokens in memory")
		return auth.NewMemoryRevocations()
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Redis connection failed: %v", err)
	}
	return auth.NewRedisRevocations(rdb)
}
