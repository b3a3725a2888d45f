package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/coffeegram/coffee-backend/internal/config"
	"github.com/coffeegram/coffee-backend/internal/handler"
	"github.com/coffeegram/coffee-backend/internal/middleware"
	"github.com/coffeegram/coffee-backend/internal/migration"
	"github.com/coffeegram/coffee-backend/internal/queue"
	"github.com/coffeegram/coffee-backend/internal/repository"
	"github.com/coffeegram/coffee-backend/internal/routes"
	"github.com/coffeegram/coffee-backend/internal/search"
	"github.com/coffeegram/coffee-backend/internal/service"
	"github.com/coffeegram/coffee-backend/internal/ws"
	"github.com/coffeegram/coffee-backend/pkg/cache"
	"github.com/coffeegram/coffee-backend/pkg/jwt"
	"github.com/coffeegram/coffee-backend/pkg/logger"
	pkgredis "github.com/coffeegram/coffee-backend/pkg/redis"
	"github.com/coffeegram/coffee-backend/pkg/storage"
)

func main() {
	config.LoadDotEnv()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.local.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Env)
	log := logger.GetLogger()
	log.Info().Str("env", cfg.App.Env).Msg("starting coffee-backend api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database. Startup continues without one so /health keeps serving,
	// but every data endpoint will fail.
	var db *gorm.DB
	db, err = gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Warn().Err(err).Msg("database unavailable, continuing degraded")
		db = nil
	} else if err := migration.Run(db); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}

	// Redis
	rdb, err := pkgredis.NewClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, cache and fan-out disabled")
		rdb = nil
	}
	cacheService := cache.NewService(rdb)

	// Search
	var searchClient *search.Client
	if cfg.Elasticsearch.Enabled {
		searchClient, err = search.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
		if err != nil {
			log.Warn().Err(err).Msg("elasticsearch unavailable, search disabled")
			searchClient = nil
		}
	}

	// Object storage
	var storageClient *storage.S3Client
	if cfg.Storage.Enabled {
		storageClient, err = storage.NewS3Client(storage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if err != nil {
			log.Warn().Err(err).Msg("storage unavailable, media disabled")
			storageClient = nil
		}
	}

	// Task queue
	var queueClient *queue.Client
	if cfg.Push.Enabled && rdb != nil {
		queueClient = queue.NewClient(queue.Addr(cfg.Redis.Host, cfg.Redis.Port), cfg.Redis.Password, cfg.Redis.DB)
		defer queueClient.Close()
	}

	// Websocket hub
	hub := ws.NewHub(rdb)
	go hub.Run(ctx)

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshIn)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendshipRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	tokenRepo := repository.NewDeviceTokenRepository(db)

	// Services
	presenceService := service.NewPresenceService(roomRepo, friendRepo, hub)
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo, cacheService)
	friendService := service.NewFriendService(friendRepo, userRepo, presenceService, queueClient)
	roomService := service.NewRoomService(roomRepo, userRepo, presenceService)
	messageService := service.NewMessageService(messageRepo, roomRepo, presenceService, queueClient)
	postService := service.NewPostService(postRepo, userRepo, cacheService, searchClient)
	commentService := service.NewCommentService(commentRepo, postRepo)
	collectionService := service.NewCollectionService(collectionRepo, postRepo)
	gateway := service.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL)
	paymentService := service.NewPaymentService(paymentRepo, userRepo, gateway)

	// Router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORS.AllowOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Register(r, jwtManager, routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(userService),
		Friend:     handler.NewFriendHandler(friendService),
		Chat:       handler.NewChatHandler(roomService, messageService, presenceService, hub),
		Post:       handler.NewPostHandler(postService),
		Comment:    handler.NewCommentHandler(commentService),
		Collection: handler.NewCollectionHandler(collectionService),
		Payment:    handler.NewPaymentHandler(paymentService),
		Media:      handler.NewMediaHandler(storageClient),
		Push:       handler.NewPushHandler(tokenRepo),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: r,
	}

	go func() {
		log.Info().Int("port", cfg.App.Port).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
