package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	"github.com/mikiasgoitom/Coursely/internal/domain/policy"
	handlerHttp "github.com/mikiasgoitom/Coursely/internal/handler/http"
	"github.com/mikiasgoitom/Coursely/internal/handler/http/middleware"
	redisclient "github.com/mikiasgoitom/Coursely/internal/infrastructure/cache"
	"github.com/mikiasgoitom/Coursely/internal/infrastructure/config"
	database "github.com/mikiasgoitom/Coursely/internal/infrastructure/database"
	"github.com/mikiasgoitom/Coursely/internal/infrastructure/eventbus"
	"github.com/mikiasgoitom/Coursely/internal/infrastructure/external_services"
	"github.com/mikiasgoitom/Coursely/internal/infrastructure/jwt"
	"github.com/mikiasgoitom/Coursely/internal/infrastructure/logger"
	"github.com/mikiasgoitom/Coursely/internal/infrastructure/metrics"
	passwordservice "github.com/mikiasgoitom/Coursely/internal/infrastructure/password_service"
	randomgenerator "github.com/mikiasgoitom/Coursely/internal/infrastructure/random_generator"
	"github.com/mikiasgoitom/Coursely/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/Coursely/internal/infrastructure/store"
	"github.com/mikiasgoitom/Coursely/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/Coursely/internal/infrastructure/validator"
	"github.com/mikiasgoitom/Coursely/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig := config.NewConfig()
	appLogger := logger.NewStdLogger()
	if appConfig.MongoURI == "" {
		log.Fatal("MONGODB_URI environment variable not set")
	}
	if appConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(appConfig.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()
	db := mongoClient.Client.Database(appConfig.MongoDBName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Dependency Injection: Repositories
	identityRepo := mongodb.NewMongoIdentityRepository(db.Collection(database.IdentitiesCollection))
	profileRepo := mongodb.NewMongoProfileRepository(db.Collection(database.ProfilesCollection))
	courseRepo := mongodb.NewCourseRepository(db.Collection(database.CoursesCollection))
	enrollmentRepo := mongodb.NewEnrollmentRepository(db.Collection(database.EnrollmentsCollection))
	tokenRepo := mongodb.NewTokenRepository(db.Collection(database.TokensCollection))

	// Optional Redis status overlay; without it suspensions apply at the next token refresh.
	var statusStore contract.IStatusStore
	if appConfig.RedisURL != "" {
		rdb := redisclient.NewRedisFromURL(ctx, appConfig.RedisURL)
		defer redisclient.Close(rdb)
		statusStore = store.NewStatusStore(rdb, appConfig.GetAccessTokenExpiry())
	} else {
		appLogger.Warnf("REDIS_URL not set, status changes apply at token refresh")
	}

	// Event bus and metrics
	bus := eventbus.New(appLogger)
	defer bus.Close()
	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)
	evaluator := policy.NewEvaluator(recorder)

	// Dependency Injection: Services
	hasher := passwordservice.NewHasher()
	jwtManager := jwt.NewJWTManager(appConfig.JWTSecret, appConfig.GetAccessTokenExpiry(), appConfig.GetRefreshTokenExpiry())
	jwtService := jwt.NewJWTService(jwtManager)
	validator.RegisterCustomValidators()
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()
	randomGenerator := randomgenerator.NewRandomGenerator()
	smtp := appConfig.SMTP
	mailService := external_services.NewEmailService(smtp.Host, smtp.Port, smtp.Username, smtp.Password, smtp.From, appLogger)
	storageService := external_services.NewStorageService(appConfig.StoragePublicBaseURL, appConfig.StorageProtectedBaseURL, appConfig.GetAppBaseURL(), appConfig.StorageSigningSecret)

	// Dependency Injection: Usecases
	confirmations := usecase.NewEmailConfirmationUseCase(tokenRepo, mailService, hasher, randomGenerator, uuidGenerator, appConfig.GetAppBaseURL(), appConfig.GetEmailConfirmationTokenExpiry())
	provisioner := usecase.NewProfileProvisioner(identityRepo, profileRepo, bus, appLogger, appConfig, recorder)
	authUsecase := usecase.NewAuthUsecase(identityRepo, profileRepo, tokenRepo, confirmations, provisioner, hasher, jwtService, bus, appLogger, appConfig, appValidator, uuidGenerator, recorder)
	resolver := usecase.NewProfileResolver(profileRepo, statusStore, appLogger, recorder)
	profileUsecase := usecase.NewProfileUsecase(profileRepo, courseRepo, statusStore, bus, evaluator, appLogger)
	courseUsecase := usecase.NewCourseUsecase(courseRepo, enrollmentRepo, storageService, evaluator, uuidGenerator, appLogger)
	enrollmentUsecase := usecase.NewEnrollmentUsecase(courseRepo, enrollmentRepo, storageService, evaluator, uuidGenerator, appLogger, appConfig)

	// Event subscriptions
	err = provisioner.Start(ctx, func(ctx context.Context, h func(context.Context, entity.ProfileProvisionRetry) error) error {
		return eventbus.Subscribe(ctx, bus, entity.TopicProfileProvisionRetry, h)
	})
	if err != nil {
		log.Fatalf("Failed to start profile provisioner: %v", err)
	}
	err = eventbus.Subscribe(ctx, bus, entity.TopicIdentitySignedUp, func(_ context.Context, e entity.IdentitySignedUp) error {
		appLogger.Infof("identity %s signed up as %s", e.IdentityID, e.Role)
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe to %s: %v", entity.TopicIdentitySignedUp, err)
	}
	err = eventbus.Subscribe(ctx, bus, entity.TopicProfileStatusChanged, func(_ context.Context, e entity.ProfileStatusChanged) error {
		appLogger.Infof("profile %s status set to %s by %s", e.ProfileID, e.Status, e.ChangedBy)
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe to %s: %v", entity.TopicProfileStatusChanged, err)
	}

	// Setup API routes
	router := gin.Default()
	appRouter := handlerHttp.NewRouter(handlerHttp.RouterDeps{
		Auth:               authUsecase,
		Profiles:           profileUsecase,
		Courses:            courseUsecase,
		Enrollments:        enrollmentUsecase,
		Resolver:           resolver,
		JWTService:         jwtService,
		Logger:             appLogger,
		BaseURL:            appConfig.GetAppBaseURL(),
		GoogleClientID:     appConfig.GoogleClientID,
		GoogleClientSecret: appConfig.GoogleClientSecret,
		Limiter:            middleware.NewLimiter(appConfig.RateLimitPerSecond),
	})
	appRouter.SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Server running on port %s", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
