package dto

type RegisterInput struct {
	RollNo       string `json:"roll_no" binding:"required,min=5,max=20"`
	Email        string `json:"email" binding:"required,email"`
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"omitempty,oneof=student class_representative"`
	Department   string `json:"department" binding:"required"`
	Year         string `json:"year" binding:"required"`
	ClassSection string `json:"class_section" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        interface{} `json:"user"`
}

type UpdateProfileInput struct {
	Name         string `json:"name" binding:"omitempty,min=2,max=100"`
	Department   string `json:"department" binding:"omitempty"`
	Year         string `json:"year" binding:"omitempty"`
	ClassSection string `json:"class_section" binding:"omitempty"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}
