package dto

// RegisterRequest carries the registration form fields. Required-ness is
// validated in the service so missing fields map to the same message
// taxonomy as the other validation failures.
type RegisterRequest struct {
	Username     string `form:"username" json:"username"`
	Password     string `form:"password" json:"password"`
	Confirmation string `form:"confirmation" json:"confirmation"`
}

// LoginRequest carries the login form fields
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}
