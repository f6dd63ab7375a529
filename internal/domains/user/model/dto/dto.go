package dto

import "hotel/internal/domains/user/model"

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u *UserResponse) FromModel(m model.User) {
	u.ID = m.ID
	u.Username = m.Username
	u.Email = m.Email
	u.Role = m.Role
}
