package handler

// loginRequest carries the credentials and the role the client believes it
// has. The role is informational; the stored role decides access.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required"`
}

type loginResponse struct {
	UserID   int64  `json:"userid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}
