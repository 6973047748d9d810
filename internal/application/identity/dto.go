package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/jx4/backend/internal/domain/identity"
)

// LoginInput contains login credentials
type LoginInput struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginResult contains the authentication result
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenInput contains the refresh token
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResult contains the refreshed token pair
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// UserInfo is the admin identity exposed to the console
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Role        string     `json:"role"`
	DeptSlugs   []string   `json:"dept_slugs"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// CreateAdminUserRequest creates a console operator
type CreateAdminUserRequest struct {
	Username  string   `json:"username" binding:"required,min=3,max=50"`
	Password  string   `json:"password" binding:"required,min=8,max=72"`
	Role      string   `json:"role" binding:"required,oneof=super dept_admin"`
	DeptSlugs []string `json:"dept_slugs"`
}

// UpdateAdminUserRequest changes an operator's scope or credential
type UpdateAdminUserRequest struct {
	Password  *string  `json:"password" binding:"omitempty,min=8,max=72"`
	Role      *string  `json:"role" binding:"omitempty,oneof=super dept_admin"`
	DeptSlugs []string `json:"dept_slugs"`
}

// ToUserInfo converts a domain AdminUser
func ToUserInfo(u *identity.AdminUser) UserInfo {
	return UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		Role:        string(u.Role),
		DeptSlugs:   u.DeptSlugs,
		LastLoginAt: u.LastLoginAt,
	}
}

// ToUserInfos converts a slice of domain AdminUsers
func ToUserInfos(users []identity.AdminUser) []UserInfo {
	infos := make([]UserInfo, len(users))
	for i := range users {
		infos[i] = ToUserInfo(&users[i])
	}
	return infos
}
