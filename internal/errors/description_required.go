package errors

import "net/http"

var ErrDescriptionRequired = &Exception{
	Message:    "description is required",
	StatusCode: http.StatusBadRequest,
}
