package errors

import "net/http"

var ErrNoActiveTask = &Exception{
	Message:    "no task is being tracked",
	StatusCode: http.StatusNotFound,
}
