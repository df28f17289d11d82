package dto

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionUserDTO struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LoginResponseDTO struct {
	Success bool           `json:"success"`
	User    SessionUserDTO `json:"user"`
}
