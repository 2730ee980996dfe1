package models

import "time"

// Session represents one signed-in period for a user, identified by an
// opaque access token that is the sole lookup key. ExpiresAt is stamped at
// issuance and never extended. LogoutAt is nil while the session is active
// and set exactly once on signout. Rows are never deleted; they remain as
// an audit trail.
type Session struct {
	ID          int64
	UUID        string
	UserID      int64
	AccessToken string
	LoginAt     time.Time
	ExpiresAt   time.Time
	LogoutAt    *time.Time
}

// Active reports whether the session has not been signed out and has not
// passed its expiry at the given instant. Expiry is evaluated lazily here;
// there is no background sweeper.
func (s *Session) Active(now time.Time) bool {
	return s.LogoutAt == nil && !now.After(s.ExpiresAt)
}
