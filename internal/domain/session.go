package domain

// SessionID identifies one open duplex connection for its lifetime.
type SessionID string
