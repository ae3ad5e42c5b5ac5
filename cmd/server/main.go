package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oniks98/learn-lingo-sub000/internal/api"
	"github.com/oniks98/learn-lingo-sub000/internal/config"
	"github.com/oniks98/learn-lingo-sub000/internal/core"
	"github.com/oniks98/learn-lingo-sub000/internal/db"
	"github.com/oniks98/learn-lingo-sub000/internal/identity"
	"github.com/oniks98/learn-lingo-sub000/internal/middleware"
	"github.com/oniks98/learn-lingo-sub000/internal/session"
	"github.com/oniks98/learn-lingo-sub000/pkg/cache"
	"github.com/oniks98/learn-lingo-sub000/pkg/mailer"
	"github.com/oniks98/learn-lingo-sub000/pkg/messagequeue"
)

func main() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// Firebase Admin SDK: Realtime Database and Auth clients.
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitDatabase(initCtx, appConfig); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	rtdbClient := db.GetDatabaseClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if rtdbClient == nil || firebaseAuthClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firebase clients are nil after initialization. Application cannot start.")
	}
	zapLogger.Info("Firebase Realtime Database and Auth clients initialized successfully.")

	// Cache: Redis when configured, in-process otherwise.
	var appCache cache.Cache
	if appConfig.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(cache.NewRedisCacheConfig{
			Address:  appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to connect to Redis", zap.Error(err))
		}
		appCache = redisCache
		zapLogger.Info("Redis cache connected", zap.String("address", appConfig.RedisAddr))
	} else {
		appCache = cache.NewMemoryCache()
		zapLogger.Warn("REDIS_ADDR not configured, using in-process cache.")
	}

	// Mail pipeline: SMTP sender, optionally decoupled through RabbitMQ.
	var mailSender mailer.Sender
	if appConfig.SMTPHost != "" {
		smtpMailer, err := mailer.NewSMTPMailer(mailer.Config{
			Host:   appConfig.SMTPHost,
			Port:   appConfig.SMTPPort,
			User:   appConfig.SMTPUser,
			Pass:   appConfig.SMTPPass,
			Sender: appConfig.EmailSender,
		})
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Invalid SMTP configuration", zap.Error(err))
		}
		mailSender = smtpMailer
	} else {
		zapLogger.Warn("SMTP_HOST not configured, booking confirmation emails disabled.")
	}

	var mq messagequeue.MessageQueue
	if appConfig.AMQPURL != "" {
		mq, err = messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{
			URL:    appConfig.AMQPURL,
			Logger: zapLogger,
		})
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mq.Close()
		zapLogger.Info("RabbitMQ connected.")
	}

	// Repositories.
	userRepo := db.NewUserRepository(rtdbClient)
	teacherRepo := db.NewTeacherRepository(rtdbClient)
	bookingRepo := db.NewBookingRepository(rtdbClient)
	favoriteRepo := db.NewFavoriteRepository(rtdbClient)

	// Services.
	var mailService *core.MailService
	var mailDispatcher core.MailDispatcher
	if mailSender != nil || mq != nil {
		mailService = core.NewMailService(mailSender, mq, zapLogger)
		mailDispatcher = mailService
	}
	userService := core.NewUserService(userRepo, bookingRepo, favoriteRepo, firebaseAuthClient, zapLogger)
	teacherService := core.NewTeacherService(teacherRepo, appCache, zapLogger)
	bookingService := core.NewBookingService(bookingRepo, teacherRepo, mailDispatcher, zapLogger)
	favoriteService := core.NewFavoriteService(favoriteRepo, teacherRepo, zapLogger)
	ratesService := core.NewRatesService(core.NewHTTPRateFetcher(appConfig.RatesAPIURL), appCache, zapLogger)
	zapLogger.Info("Core services initialized successfully.")

	// Background consumer delivers queued booking emails.
	if mq != nil && mailService != nil {
		go func() {
			if err := mailService.ConsumeBookingEmails(); err != nil {
				zapLogger.Error("Booking email consumer stopped", zap.Error(err))
			}
		}()
	}

	identityClient := identity.NewClient(appConfig.FirebaseWebAPIKey)
	secureCookies := strings.ToLower(appConfig.GinMode) == "release"
	sessionManager := session.NewManager(appConfig.SessionSecret, appConfig.SessionTTL, secureCookies)

	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured.")
	}

	api.SetupRoutes(router, zapLogger, api.Services{
		Accounts:  firebaseAuthClient,
		Identity:  identityClient,
		Sessions:  sessionManager,
		AuthMW:    middleware.NewAuthMiddleware(firebaseAuthClient, zapLogger),
		Users:     userService,
		Teachers:  teacherService,
		Bookings:  bookingService,
		Favorites: favoriteService,
		Rates:     ratesService,
	})

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exiting gracefully.")
}
