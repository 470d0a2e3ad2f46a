package dto

// TelegramLoginRequest carries the raw WebApp init data string from the
// Telegram client. Validation of its HMAC happens server-side.
type TelegramLoginRequest struct {
	InitData string `json:"initData" binding:"required"`
}

// LoginRequest is the username/password login for API-only users.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest creates a username/password account.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginResponse returns the bearer token and the authenticated user.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}
