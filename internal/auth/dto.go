package auth

// LoginRequest carries the admin credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserDTO is the transport shape that omits the credential hash.
type UserDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// LoginResponse returns the bearer token and the authenticated account.
type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}
