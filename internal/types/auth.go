package types

import "time"

// AuthType identifies how credentials were obtained
type AuthType string

const (
	AuthTypeOAuth AuthType = "oauth"
)

// Credentials holds OAuth2 tokens for one profile
type Credentials struct {
	Type         AuthType  `json:"type"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiryDate   time.Time `json:"expiryDate"`
	Scopes       []string  `json:"scopes"`
}

// Expired reports whether the access token has expired, with buffer applied
// by the caller.
func (c *Credentials) Expired(buffer time.Duration) bool {
	if c.ExpiryDate.IsZero() {
		return false
	}
	return time.Now().Add(buffer).After(c.ExpiryDate)
}
