package dto

import "time"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Fullname    *string `json:"fullname"`
	DOB         *string `json:"dob"`
	Description *string `json:"description"`
}

// LoginRequest payload for login. Accepted as JSON or as an URL-encoded form.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// TokenResponse standard response for login.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ProfileUpdateRequest carries the self-editable profile fields. Omitted
// fields are left unchanged.
type ProfileUpdateRequest struct {
	Email       *string `json:"email"`
	Fullname    *string `json:"fullname"`
	DOB         *string `json:"dob"`
	Description *string `json:"description"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Fullname      *string   `json:"fullname"`
	DOB           *string   `json:"dob"`
	Description   *string   `json:"description"`
	Role          string    `json:"role"`
	AccountStatus string    `json:"account_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
