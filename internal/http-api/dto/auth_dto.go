package dto

// Data Transfer Objects for the email confirmation flow

// SignupRequest: payload for POST /auth/email
type SignupRequest struct {
	Email string `json:"email" binding:"required,email,max=254"`
}

// TokenRequest: payload for POST /auth/token
type TokenRequest struct {
	Email            string `json:"email" binding:"required,email,max=254"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: access token returned after a successful confirmation
type TokenResponse struct {
	Token string `json:"token"`
}
