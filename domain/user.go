package domain

import "time"

// Provider names accepted for external sign-in.
const (
	ProviderCredentials = "credentials"
	ProviderGitHub      = "github"
)

// User represents a registered identity.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	Provider     string    `json:"provider"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Directory display fallbacks mirror what the user directory page shows
// when an account never set a name.
func (u *User) DirectoryName() string {
	if u == nil || u.DisplayName == "" {
		return "(no name)"
	}
	return u.DisplayName
}
