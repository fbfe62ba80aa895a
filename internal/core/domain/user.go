package domain

import "time"

const (
	RoleAdmin     = "admin"
	RoleHousehold = "household"
)

// AdminUsername is the fixed handle of the administrator account. It is
// assigned at provisioning time and never renamed.
const AdminUsername = "admin"

// User models an account in the household directory.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TokenPayload is the identity snapshot embedded in every issued token.
// It reflects the account at issuance time; a rename or role change does not
// reach in-flight tokens until they expire or are refreshed.
type TokenPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// PayloadFor builds the token payload snapshot for a user.
func PayloadFor(u *User) TokenPayload {
	return TokenPayload{ID: u.ID, Username: u.Username, Role: u.Role}
}

// TokenPair carries a freshly issued access/refresh token couple.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
