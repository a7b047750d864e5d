package dto

type LoginRequest struct {
	NIK      string `json:"nik"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	NIK      string `json:"nik"`
	Name     string `json:"name,omitempty"`
	Division string `json:"division,omitempty"`
}

type CreateTaskRequest struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

type TaskResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
