package dto

type StartTaskRequest struct {
	Description string `json:"description"`
}
