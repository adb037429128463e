package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dashhub/productivity-service/internal/config"
	"github.com/dashhub/productivity-service/internal/metrics"
	"github.com/dashhub/productivity-service/internal/services"
	"github.com/dashhub/productivity-service/internal/session"
	"github.com/dashhub/productivity-service/internal/utils"
)

// HandlerManager owns all handlers and the route table
type HandlerManager struct {
	authHandler       *AuthHandler
	typingHandler     *TypingHandler
	todoHandler       *TodoHandler
	calculatorHandler *CalculatorHandler

	sessions   session.Store
	identity   services.IdentityService
	sessionCfg config.SessionConfig
	logger     utils.Logger
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessions session.Store,
	cfg *config.Config,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler: NewAuthHandler(
			serviceManager.Identity(),
			sessions,
			cfg.Casdoor,
			cfg.Session,
			cfg.FrontendURL,
			logger,
		),
		typingHandler:     NewTypingHandler(serviceManager.Typing(), logger),
		todoHandler:       NewTodoHandler(serviceManager.Todo(), logger),
		calculatorHandler: NewCalculatorHandler(serviceManager.Calculator(), logger),
		sessions:          sessions,
		identity:          serviceManager.Identity(),
		sessionCfg:        cfg.Session,
		logger:            logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Session middleware populates "current user or absent" for every
	// route; each protected handler does its own explicit auth check.
	router.Use(SessionMiddleware(hm.sessions, hm.identity, hm.sessionCfg.CookieName, hm.logger))

	auth := router.Group("/auth")
	{
		auth.GET("/login", hm.authHandler.Login)
		auth.GET("/callback", hm.authHandler.Callback)
		auth.GET("/current_user", hm.authHandler.CurrentUserInfo)
		auth.GET("/logout", hm.authHandler.Logout)
	}

	api := router.Group("/api")
	{
		typing := api.Group("/typing-tests")
		{
			typing.POST("", hm.typingHandler.SubmitTest)
			typing.GET("/stats", hm.typingHandler.GetStats)
			typing.GET("/export", hm.typingHandler.ExportHistory)
		}

		todos := api.Group("/todos")
		{
			todos.POST("", hm.todoHandler.CreateTodo)
			todos.GET("", hm.todoHandler.ListTodos)
			todos.PUT("/:id", hm.todoHandler.UpdateTodo)
			todos.DELETE("/:id", hm.todoHandler.DeleteTodo)
		}

		calculator := api.Group("/calculator")
		{
			calculator.POST("", hm.calculatorHandler.SaveEntry)
			calculator.GET("/last", hm.calculatorHandler.GetLast)
			calculator.GET("/history", hm.calculatorHandler.GetHistory)
		}
	}

	router.GET("/metrics", metrics.Handler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "productivity-service",
		})
	})
}
