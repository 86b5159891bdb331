package auth

import "time"

// AccessClaims are the claims carried by an access token. v4.local tokens are
// encrypted, so clients cannot read them.
type AccessClaims struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`

	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}
