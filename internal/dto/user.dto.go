package dto

import "github.com/wiissal/take-a-chef/internal/models"

type UserDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

func NewUser(u *models.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
