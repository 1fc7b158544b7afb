package models

// APIResponse is the response envelope for every HTTP endpoint. Message is
// set only when Success is false.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}
