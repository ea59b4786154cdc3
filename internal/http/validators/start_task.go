package validators

import (
	"github.com/labstack/echo/v4"

	dto "flowtime-logger.com/flowtime-logger/internal/data_models"
	apperrors "flowtime-logger.com/flowtime-logger/internal/errors"
)

func ValidateStartTaskRequest(r *dto.StartTaskRequest) error {
	if r.Description == "" {
		return echo.NewHTTPError(
			apperrors.ErrDescriptionRequired.StatusCode,
			apperrors.ErrDescriptionRequired.Message,
		)
	}
	return nil
}
