package httpdto

// ChatRequest is used for POST /chat. The user identity comes from the bearer
// token, not the body.
type ChatRequest struct {
	Message      string `json:"message"`
	SystemPrompt string `json:"systemPrompt"`
	Mode         string `json:"mode"`
}

// ChatResponse carries the model's reply and the persisted reply turn's id
type ChatResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}
