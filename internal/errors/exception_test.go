package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	if got := StatusCode(ErrNoActiveTask); got != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, got)
	}
	if got := StatusCode(ErrSessionActive); got != http.StatusConflict {
		t.Errorf("expected %d, got %d", http.StatusConflict, got)
	}

	wrapped := fmt.Errorf("handling request: %w", ErrTaskNotFound)
	if got := StatusCode(wrapped); got != http.StatusNotFound {
		t.Errorf("expected wrapped exception to resolve to %d, got %d", http.StatusNotFound, got)
	}
}

func TestStatusCodeDefaultsToInternalError(t *testing.T) {
	if got := StatusCode(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("expected %d for a plain error, got %d", http.StatusInternalServerError, got)
	}
}
