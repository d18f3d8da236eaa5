package dto

// CreateUserInput is the admin-side user creation payload. Unlike public
// registration it may create admins, which never carry a class section.
type CreateUserInput struct {
	RollNo       string `json:"roll_no" binding:"required,min=5,max=20"`
	Email        string `json:"email" binding:"required,email"`
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"required,oneof=student class_representative admin"`
	Department   string `json:"department" binding:"omitempty"`
	Year         string `json:"year" binding:"omitempty"`
	ClassSection string `json:"class_section" binding:"omitempty"`
}

type UserListQuery struct {
	PageQuery
	Role       string `form:"role"`
	Department string `form:"department"`
	Year       string `form:"year"`
	Approved   *bool  `form:"approved"`
	Active     *bool  `form:"active"`
	Search     string `form:"search"`
}
