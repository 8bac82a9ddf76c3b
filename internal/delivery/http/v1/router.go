package v1

import (
	"context"
	"net/http"
	"time"

	"go-jobreels-backend/config"
	"go-jobreels-backend/internal/delivery/http/middleware"
	"go-jobreels-backend/internal/delivery/http/response"
	"go-jobreels-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	ChatUC        domain.ChatUsecase
	UnlockUC      domain.UnlockUsecase
	InteractionUC domain.InteractionUsecase
	VideoUC       domain.VideoUsecase
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	global := middleware.DefaultRateLimitConfig()
	if deps.Config.RateLimitGlobalThreshold > 0 {
		global.Limit = deps.Config.RateLimitGlobalThreshold
	}
	if window > 0 {
		global.Window = window
	}
	r.Use(middleware.RateLimitMiddleware(global))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes with optional identity (name gating on the feed)
	public := v1.Group("")
	public.Use(middleware.OptionalAuthMiddleware(deps.Config, deps.AuthUC))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config, deps.AuthUC))

	uploadLimit := middleware.UploadRateLimitConfig()
	if deps.Config.RateLimitUploadThreshold > 0 {
		uploadLimit.Limit = deps.Config.RateLimitUploadThreshold
	}
	if window > 0 {
		uploadLimit.Window = window
	}
	upload := protected.Group("")
	upload.Use(middleware.RateLimitMiddleware(uploadLimit))

	NewAuthHandler(protected, deps.AuthUC)
	NewChatHandler(protected, deps.ChatUC, deps.UnlockUC, deps.AuthUC)
	NewUnlockHandler(protected, deps.UnlockUC, deps.Config.EnableDebugRoutes)
	NewInteractionHandler(protected, deps.InteractionUC)
	NewFeedHandler(public, upload, deps.VideoUC, deps.AuthUC, deps.Config.MaxVideoUploadBytes)

	return r
}

// contextWithIdentity copies the caller's identity from gin's string keys to
// the typed context keys the usecases read. gin stores Set values under
// plain strings, which ctx.Value with a domain.CtxKey will not see.
func contextWithIdentity(c *gin.Context) context.Context {
	ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, c.GetString(string(domain.KeyUserID)))
	ctx = context.WithValue(ctx, domain.KeyUserRole, c.GetString(string(domain.KeyUserRole)))
	return ctx
}
