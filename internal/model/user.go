// Package model defines the request-scoped values exchanged over the API.
package model

// Default identity used when the upstream proxy did not forward one,
// which is the normal case during local development.
const (
	DefaultUserEmail = "local_user@example.com"
	DefaultUsername  = "local_user"
)

// Identity headers set by the Databricks Apps proxy.
const (
	HeaderForwardedEmail = "X-Forwarded-Email"
	HeaderForwardedUser  = "X-Forwarded-Preferred-Username"
)

// UserInfo is the identity of the caller as reported by the app proxy.
type UserInfo struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
}

// NewUserInfo builds a UserInfo from raw header values. Empty values are
// treated as missing; when both are missing the default local identity is
// returned.
func NewUserInfo(email, username string) UserInfo {
	if email == "" && username == "" {
		return DefaultUserInfo()
	}
	return UserInfo{
		Email:    optional(email),
		Username: optional(username),
	}
}

// DefaultUserInfo returns the local development identity.
func DefaultUserInfo() UserInfo {
	email, username := DefaultUserEmail, DefaultUsername
	return UserInfo{Email: &email, Username: &username}
}

// IsDefault reports whether u carries the local development identity.
func (u UserInfo) IsDefault() bool {
	return u.Email != nil && *u.Email == DefaultUserEmail &&
		u.Username != nil && *u.Username == DefaultUsername
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
