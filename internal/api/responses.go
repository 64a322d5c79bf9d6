package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type BulkSendResponse struct {
	Queued int `json:"queued" example:"4"`
	Failed int `json:"failed" example:"1"`
}
