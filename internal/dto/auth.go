package dto

import "github.com/rentalhub/rentalhub-api/internal/models"

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Role        string `json:"role" binding:"required"`
	PhoneNumber string `json:"phone_number"`
}

// TokenResponse is returned by the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      uint64 `json:"user_id"`
	Role        string `json:"role"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID           uint64 `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         string `json:"role"`
	PhoneNumber  string `json:"phone_number"`
	ProfileImage string `json:"profile_image"`
}

func ToUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         string(user.Role),
		PhoneNumber:  user.PhoneNumber,
		ProfileImage: user.ProfileImageURL,
	}
}

// UserSearchResult is the trimmed view returned by the user search endpoint.
type UserSearchResult struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func ToUserSearchResult(user models.User) UserSearchResult {
	return UserSearchResult{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName(),
		Email:    user.Email,
		Role:     string(user.Role),
	}
}
