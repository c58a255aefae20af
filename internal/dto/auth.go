package dto

// TokenRequest carries the shared service key the Discord-facing process
// exchanges for a short-lived API token.
type TokenRequest struct {
	ServiceKey string `json:"serviceKey" binding:"required"`
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}
