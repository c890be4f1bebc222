package handler

type createUserRequest struct {
	Username string `json:"username"  validate:"required,max=150"`
	Password string `json:"password"  validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	Role     string `json:"role"      validate:"required,oneof=learner instructor admin super_admin"`
	IsActive *bool  `json:"is_active"`
}

// updateUserRequest replaces the whole account, so the password is required
// again and is re-hashed even when unchanged. An omitted is_active means true.
type updateUserRequest struct {
	Username string `json:"username"  validate:"required,max=150"`
	Password string `json:"password"  validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	Role     string `json:"role"      validate:"required,oneof=learner instructor admin super_admin"`
	IsActive *bool  `json:"is_active"`
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
