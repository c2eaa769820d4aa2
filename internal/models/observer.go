package models

// TokenRequest is the body of a token request
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse represents a successful token request
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// Claims represents JWT claims
type Claims struct {
	Subject string `json:"sub"`
	Exp     int64  `json:"exp"`
}
