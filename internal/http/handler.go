package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	dto "flowtime-logger.com/flowtime-logger/internal/data_models"
	apperrors "flowtime-logger.com/flowtime-logger/internal/errors"
	"flowtime-logger.com/flowtime-logger/internal/flowtime"
	"flowtime-logger.com/flowtime-logger/internal/http/validators"
	"flowtime-logger.com/flowtime-logger/internal/services"
)

type Handler struct {
	sessions *services.SessionService
}

func NewHandler(sessions *services.SessionService) *Handler {
	return &Handler{
		sessions: sessions,
	}
}

func (h *Handler) StartTask(c echo.Context) error {
	var req dto.StartTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateStartTaskRequest(&req); err != nil {
		return err
	}

	snapshot, err := h.sessions.Start(c.Request().Context(), req.Description)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, snapshot)
}

func (h *Handler) StopTask(c echo.Context) error {
	snapshot, err := h.sessions.Stop(c.Request().Context())
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) ContTask(c echo.Context) error {
	snapshot, err := h.sessions.Cont(c.Request().Context())
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) EndTask(c echo.Context) error {
	result, err := h.sessions.End(c.Request().Context())
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) CurrentTask(c echo.Context) error {
	snapshot, err := h.sessions.Current()
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.sessions.ListTasks(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tasks")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "task id must be an integer")
	}

	record, periods, err := h.sessions.GetTask(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return exceptionError(apperrors.ErrTaskNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load task")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"task":    record,
		"periods": periods,
	})
}

// mapServiceError translates session and engine errors into HTTP errors.
// Illegal transitions are caller bugs and come back as 409 with the state
// that rejected the operation.
func mapServiceError(err error) error {
	var itErr *flowtime.IllegalTransitionError
	var stErr *flowtime.StorageError

	switch {
	case errors.Is(err, services.ErrNoActiveTask):
		return exceptionError(apperrors.ErrNoActiveTask)
	case errors.Is(err, services.ErrSessionActive):
		return exceptionError(apperrors.ErrSessionActive)
	case errors.As(err, &itErr):
		return echo.NewHTTPError(http.StatusConflict, itErr.Error())
	case errors.As(err, &stErr):
		return echo.NewHTTPError(http.StatusInternalServerError, stErr.Error())
	default:
		return echo.NewHTTPError(apperrors.StatusCode(err), "operation failed")
	}
}

func exceptionError(e *apperrors.Exception) error {
	return echo.NewHTTPError(apperrors.StatusCode(e), e.Message)
}
