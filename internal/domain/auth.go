package domain

import "time"

// Token describes an issued access token.
type Token struct {
	ID        string
	UserID    string
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
