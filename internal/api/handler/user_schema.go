package handler

import "github.com/homehub/household-api/internal/core/domain"

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateUsernameRequest struct {
	NewUsername string `json:"newUsername" validate:"required"`
}

type updatePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required"`
}

type resetPasswordRequest struct {
	ResetCode   string `json:"resetCode"   validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type userListResponse struct {
	HouseholdUsers []userResponse `json:"household-users"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}
