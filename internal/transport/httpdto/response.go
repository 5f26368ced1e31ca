package httpdto

// ErrorResponse is the shape of every error body. Action carries an optional
// hint for the client, e.g. "login" when a registration collides with an
// existing account.
type ErrorResponse struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
}

func NewErrorResponse(err string) ErrorResponse {
	return ErrorResponse{Error: err}
}

func NewErrorResponseWithAction(err, action string) ErrorResponse {
	return ErrorResponse{Error: err, Action: action}
}
