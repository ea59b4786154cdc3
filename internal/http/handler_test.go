package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"flowtime-logger.com/flowtime-logger/internal/flowtime"
	"flowtime-logger.com/flowtime-logger/internal/services"
)

func TestMapServiceError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"no active task", services.ErrNoActiveTask, http.StatusNotFound},
		{"session active", services.ErrSessionActive, http.StatusConflict},
		{
			"illegal transition",
			&flowtime.IllegalTransitionError{Op: "end", State: flowtime.StateRunning},
			http.StatusConflict,
		},
		{
			"storage failure",
			&flowtime.StorageError{Description: "t", Phase: "task insert", Err: errors.New("disk full")},
			http.StatusInternalServerError,
		},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var httpErr *echo.HTTPError
			if !errors.As(mapServiceError(tc.err), &httpErr) {
				t.Fatal("expected an *echo.HTTPError")
			}
			if httpErr.Code != tc.want {
				t.Errorf("expected status %d, got %d", tc.want, httpErr.Code)
			}
		})
	}
}
