package errors

import "net/http"

var ErrSessionActive = &Exception{
	Message:    "a task is already being tracked",
	StatusCode: http.StatusConflict,
}
