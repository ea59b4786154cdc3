package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "flowtime-logger.com/flowtime-logger/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.POST("/tasks", h.StartTask)
	e.GET("/tasks", h.ListTasks)
	e.GET("/tasks/:id", h.GetTask)

	e.GET("/tasks/current", h.CurrentTask)
	e.POST("/tasks/current/stop", h.StopTask)
	e.POST("/tasks/current/cont", h.ContTask)
	e.POST("/tasks/current/end", h.EndTask)
}
