package handlers

import (
	"taskmate/internal/logger"
	"taskmate/internal/metrics"
	"taskmate/internal/service"
	"taskmate/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "taskmate/docs"
)

// Handler wires HTTP layer to services, the session gate and logging.
type Handler struct {
	services *service.Service
	gate     *session.Gate
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, gate *session.Gate, log *logger.Logger) *Handler {
	return &Handler{services: services, gate: gate, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
// CORS is enabled only when allowedOrigins is non-empty.
func (h *Handler) InitRoutes(allowedOrigins ...string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), metrics.Middleware(), h.requestLogger)

	if len(allowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = allowedOrigins
		corsConfig.AllowCredentials = true
		corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", metrics.Handler())

	// Health endpoint
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerTaskRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.GET("/login", h.handle(h.loginPage))
	r.POST("/login", h.handle(h.login))
	r.GET("/signup", h.handle(h.signupPage))
	r.POST("/signup", h.handle(h.signup))
	r.POST("/logout", h.handle(h.logout))
}

// The board is a page and redirects to login; mutations are API calls and get 401.
func (h *Handler) registerTaskRoutes(r *gin.Engine) {
	r.GET("/tasks", h.requireUser(redirectToLogin), h.handle(h.board))

	api := r.Group("/tasks", h.requireUser(rejectUnauthorized))
	{
		api.POST("", h.handle(h.postTasks))
		api.PATCH("", h.handle(h.updateTask))
		api.DELETE("", h.handle(h.deleteTask))
	}
}
