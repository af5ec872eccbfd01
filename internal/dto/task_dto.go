package dto

type CreateTaskResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
