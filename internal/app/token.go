package app

import (
	"time"
)

// CharacterToken is an SSO token belonging to a character.
type CharacterToken struct {
	AccessToken  string
	CharacterID  int32
	IssuedAt     time.Time
	RefreshToken string
}

// RemainsValid reports whether the access token remains valid for the
// provider reported lifetime, reduced by buffer.
//
// The buffer marks a token as expired before the provider would actually
// reject it, so it is never handed out mid-expiry.
func (ct CharacterToken) RemainsValid(lifetime, buffer time.Duration) bool {
	return time.Now().Before(ct.IssuedAt.Add(lifetime - buffer))
}

// Token is a new token pair as returned from the identity provider.
type Token struct {
	AccessToken  string
	RefreshToken string
}
