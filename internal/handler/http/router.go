package http

import (
	"net/http"
	"time"

	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Coursely/internal/handler/http/middleware"
	"github.com/mikiasgoitom/Coursely/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	authHandler       *AuthHandler
	profileHandler    *ProfileHandler
	adminHandler      *AdminHandler
	courseHandler     *CourseHandler
	enrollmentHandler *EnrollmentHandler
	jwtService        usecase.JWTService
	resolver          usecasecontract.IProfileResolver
	logger            usecasecontract.IAppLogger
	limiter           *limiter.Limiter
}

// RouterDeps groups what the HTTP surface needs from the application layer.
type RouterDeps struct {
	Auth               usecasecontract.IAuthUseCase
	Profiles           usecasecontract.IProfileUseCase
	Courses            usecasecontract.ICourseUseCase
	Enrollments        usecasecontract.IEnrollmentUseCase
	Resolver           usecasecontract.IProfileResolver
	JWTService         usecase.JWTService
	Logger             usecasecontract.IAppLogger
	BaseURL            string
	GoogleClientID     string
	GoogleClientSecret string
	// Limiter is optional; nil disables rate limiting.
	Limiter *limiter.Limiter
}

func NewRouter(deps RouterDeps) *Router {
	return &Router{
		authHandler:       NewAuthHandler(deps.Auth, deps.BaseURL, deps.GoogleClientID, deps.GoogleClientSecret),
		profileHandler:    NewProfileHandler(deps.Profiles),
		adminHandler:      NewAdminHandler(deps.Profiles),
		courseHandler:     NewCourseHandler(deps.Courses),
		enrollmentHandler: NewEnrollmentHandler(deps.Enrollments),
		jwtService:        deps.JWTService,
		resolver:          deps.Resolver,
		logger:            deps.Logger,
		limiter:           deps.Limiter,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if r.limiter != nil {
		router.Use(middleware.RateLimiter(r.limiter))
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	requireAuth := middleware.AuthMiddleWare(r.jwtService, r.resolver, r.logger)
	optionalAuth := middleware.OptionalAuth(r.jwtService, r.resolver, r.logger)

	auth := v1.Group("/auth")
	{
		auth.POST("/signup", r.authHandler.Signup)
		auth.POST("/admin/signup", r.authHandler.AdminSignup)
		auth.POST("/confirm-email", r.authHandler.ConfirmEmail)
		auth.POST("/resend-confirmation", r.authHandler.ResendConfirmation)
		auth.POST("/login", r.authHandler.Login)
		auth.POST("/refresh-token", r.authHandler.RefreshToken)
		auth.POST("/logout", r.authHandler.Logout)

		// Google OAuth endpoints
		auth.GET("/google/login", r.authHandler.HandleGoogleLogin)
		auth.GET("/google/callback", r.authHandler.HandleGoogleCallback)
	}

	// Signed media links carry their own authorization.
	v1.GET("/media/signed", r.enrollmentHandler.ResolveMedia)

	// Public reads; a bearer token, when sent, widens what the policy allows.
	public := v1.Group("/")
	public.Use(optionalAuth)
	{
		public.GET("/courses", r.courseHandler.ListCourses)
		public.GET("/courses/:id", r.courseHandler.GetCourse)
		public.GET("/creators/:id/courses", r.courseHandler.ListCreatorCourses)
		public.GET("/profiles/:id", r.profileHandler.GetProfile)
	}

	protected := v1.Group("/")
	protected.Use(requireAuth)
	{
		protected.GET("/me", r.profileHandler.GetMe)
		protected.PUT("/me", r.profileHandler.UpdateMe)
		protected.GET("/me/enrollments", r.enrollmentHandler.ListMyEnrollments)

		protected.POST("/courses", r.courseHandler.CreateCourse)
		protected.PUT("/courses/:id", r.courseHandler.UpdateCourse)
		protected.POST("/courses/:id/publish", r.courseHandler.PublishCourse)
		protected.POST("/courses/:id/unpublish", r.courseHandler.UnpublishCourse)
		protected.DELETE("/courses/:id", r.courseHandler.DeleteCourse)

		protected.POST("/courses/:id/enroll", r.enrollmentHandler.Enroll)
		protected.GET("/courses/:id/playback", r.enrollmentHandler.Playback)
	}

	// Admin routes; the access policy checks the admin role per action.
	admin := v1.Group("/admin")
	admin.Use(requireAuth)
	{
		admin.GET("/profiles", r.adminHandler.ListProfiles)
		admin.PATCH("/profiles/:id/role", r.adminHandler.SetRole)
		admin.PATCH("/profiles/:id/status", r.adminHandler.SetStatus)
	}
}
