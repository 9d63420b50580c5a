package api

import (
	authRepo "todovault-backend/internal/auth/repository"
	authUsecase "todovault-backend/internal/auth/usecase"
	taskDelivery "todovault-backend/internal/task/delivery"
	taskUsecasePkg "todovault-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

// Handler owns the HTTP surface: the Gin engine, CORS, and the route table.
type Handler struct {
	authUsecase authUsecase.AuthUsecase
	taskHandler *taskDelivery.TaskHandler
	tokenRepo   authRepo.DeviceTokenRepository
}

// NewHandler wires the usecases into their HTTP handlers
func NewHandler(authUc authUsecase.AuthUsecase, taskUc taskUsecasePkg.TaskUsecase, tokenRepo authRepo.DeviceTokenRepository) *Handler {
	return &Handler{
		authUsecase: authUc,
		taskHandler: taskDelivery.NewTaskHandler(taskUc),
		tokenRepo:   tokenRepo,
	}
}

// Start builds the engine and blocks serving on addr
func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.taskHandler, h.tokenRepo)

	return r.Run(addr)
}
