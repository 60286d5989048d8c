package dto

// Request DTOs

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ClaimSet is the payload of the internal validation endpoint. The
// schedule service validates this exact shape on every remote
// verification; a 200 with a malformed body is still rejected.
type ClaimSet struct {
	Sub   string `json:"sub" validate:"required,uuid"`
	Email string `json:"email" validate:"required,email"`
	Iat   int64  `json:"iat" validate:"required"`
	Exp   int64  `json:"exp" validate:"required"`
}
