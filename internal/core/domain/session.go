package domain

import "time"

// Session authorizes individual requests until ExpiresAt.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

// RefreshSession is the longer-lived half of a credential pair, used solely
// to obtain a new pair.
type RefreshSession struct {
	RefreshToken string
	UserID       int64
	ExpiresAt    time.Time
}

// Credentials is the (access token, refresh token) pair handed to a client.
// At most one pair is live per user; issuing a new pair invalidates the
// previous one.
type Credentials struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}
