package dto

import (
	"github.com/xblade/league-api/internal/models"
)

// UserDTO is the public shape of a user account.
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// ToUserDTO converts a user model.
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}
}
