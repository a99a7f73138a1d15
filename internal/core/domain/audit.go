package domain

import "time"

// Audit actions recorded for authentication activity.
const (
	AuditSignIn       = "signin"
	AuditSignInFailed = "signin_failed"
	AuditSignUp       = "signup"
)

// AuthEvent is one entry in the authentication audit trail.
type AuthEvent struct {
	Subject   string
	Action    string
	Reason    string // failure detail, empty on success
	Timestamp time.Time
}
