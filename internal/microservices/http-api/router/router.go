// Package router wires the API handlers, middleware and policies into a gin engine.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"yamdb/internal/config"
	"yamdb/internal/mail"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/handler"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/permission"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/service"
	"yamdb/internal/ratelimit"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

type Options struct {
	Config *config.Config
	DB     *gorm.DB
	Logger *zap.Logger
	Mailer mail.Mailer
	// nil disables throttling of the auth endpoints
	Limiter ratelimit.Limiter
}

func New(opts Options) (*gin.Engine, error) {
	if opts.Config == nil || opts.DB == nil || opts.Mailer == nil {
		return nil, errors.New("router: config, db and mailer are required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, errors.New("router: unexpected binding validator")
	}
	if err := dto.RegisterValidators(v); err != nil {
		return nil, err
	}

	// repositories
	userRepo := repository.NewUserRepository(opts.DB)
	codeRepo := repository.NewConfirmationCodeRepository(opts.DB)
	categoryRepo := repository.NewCategoryRepository(opts.DB)
	genreRepo := repository.NewGenreRepository(opts.DB)
	titleRepo := repository.NewTitleRepo(opts.DB)
	reviewRepo := repository.NewReviewRepository(opts.DB)
	commentRepo := repository.NewCommentRepository(opts.DB)

	// services
	authService := service.NewAuthService(userRepo, codeRepo, opts.Mailer, opts.Config, log)
	userService := service.NewUserService(userRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	// handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewSlugHandler(service.NewCategoryService(categoryRepo))
	genreHandler := handler.NewSlugHandler(service.NewGenreService(genreRepo))
	titleHandler := handler.NewTitleHandler(titleService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	commentHandler := handler.NewCommentHandler(commentService)
	healthHandler := handler.NewHealthHandler(opts.DB)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		middleware.RequestID(),
		ginzap.GinzapWithConfig(log, &ginzap.Config{
			TimeFormat: time.RFC3339,
			UTC:        true,
			SkipPaths:  []string{"/healthz"},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}
				if v := c.GetString(middleware.RequestIDKey); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}
				if v := c.GetString(middleware.ContextUserIDKey); v != "" {
					fields = append(fields, zap.String("user_id", v))
				}
				return fields
			},
		}),
		ginzap.RecoveryWithZap(log, true),
	)
	if len(opts.Config.CORSOrigins) > 0 {
		r.Use(newCORS(opts.Config.CORSOrigins))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": handler.DetailNotFound})
	})
	r.NoMethod(methodNotAllowed)

	r.GET("/healthz", healthHandler.Check)

	v1 := r.Group("/api/v1", middleware.Authenticate(authService, userRepo))

	// auth
	authLimit := middleware.RateLimit(opts.Limiter, "auth", log)
	v1.POST("/auth/email/", authLimit, authHandler.Register)
	v1.POST("/token/", authLimit, authHandler.Token)

	// users
	self := middleware.Require(permission.Authenticated)
	adminOnly := middleware.Require(permission.AdminOnly)
	users := v1.Group("/users")
	{
		users.GET("/me/", self, userHandler.Me)
		users.PATCH("/me/", self, userHandler.UpdateMe)
		users.PUT("/me/", self, methodNotAllowed)
		users.DELETE("/me/", self, methodNotAllowed)

		users.GET("/", adminOnly, userHandler.List)
		users.POST("/", adminOnly, userHandler.Create)
		users.GET("/:username/", adminOnly, userHandler.Get)
		users.PUT("/:username/", adminOnly, userHandler.Update)
		users.PATCH("/:username/", adminOnly, userHandler.Update)
		users.DELETE("/:username/", adminOnly, userHandler.Delete)
	}

	// catalog
	registerSlugRoutes(v1.Group("/categories"), categoryHandler)
	registerSlugRoutes(v1.Group("/genres"), genreHandler)

	titles := v1.Group("/titles", middleware.Require(permission.AdminOrReadOnly))
	{
		titles.GET("/", titleHandler.List)
		titles.POST("/", titleHandler.Create)
		titles.GET("/:title_id/", titleHandler.Get)
		titles.PUT("/:title_id/", titleHandler.Update)
		titles.PATCH("/:title_id/", titleHandler.Update)
		titles.DELETE("/:title_id/", titleHandler.Delete)
	}

	// reviews and comments; ownership is checked by the services
	reviews := v1.Group("/titles/:title_id/reviews", middleware.Require(permission.ReviewAndComment))
	{
		reviews.GET("/", reviewHandler.List)
		reviews.POST("/", reviewHandler.Create)
		reviews.GET("/:review_id/", reviewHandler.Get)
		reviews.PUT("/:review_id/", reviewHandler.Update)
		reviews.PATCH("/:review_id/", reviewHandler.Update)
		reviews.DELETE("/:review_id/", reviewHandler.Delete)

		comments := reviews.Group("/:review_id/comments")
		comments.GET("/", commentHandler.List)
		comments.POST("/", commentHandler.Create)
		comments.GET("/:comment_id/", commentHandler.Get)
		comments.PUT("/:comment_id/", commentHandler.Update)
		comments.PATCH("/:comment_id/", commentHandler.Update)
		comments.DELETE("/:comment_id/", commentHandler.Delete)
	}

	return r, nil
}

// registerSlugRoutes exposes list, create and delete. Detail reads and
// updates are refused, after the admin check.
func registerSlugRoutes[T models.SlugEntity](g *gin.RouterGroup, h *handler.SlugHandler[T]) {
	g.GET("/", h.List)
	g.POST("/", middleware.Require(permission.AdminOnly), h.Create)

	detail := g.Group("/:slug", middleware.Require(permission.AdminOnly))
	detail.DELETE("/", h.Delete)
	detail.GET("/", methodNotAllowed)
	detail.PUT("/", methodNotAllowed)
	detail.PATCH("/", methodNotAllowed)
}

func newCORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": fmt.Sprintf(handler.DetailMethodNotAllowed, c.Request.Method)})
}
