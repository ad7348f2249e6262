package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (1 hour)
	AccessTokenTTL = 1 * time.Hour

	// AccessTokenTTLSeconds is the time-to-live for access tokens in seconds
	AccessTokenTTLSeconds = 3600

	// SessionTimeout is the default session timeout, aligned with the token TTL
	SessionTimeout = 1 * time.Hour

	// OTPExpiry is the time-to-live for password reset codes (10 minutes)
	OTPExpiry = 10 * time.Minute

	// OTPExpirySeconds is the time-to-live for password reset codes in seconds
	OTPExpirySeconds = 600

	// SessionCleanupInterval is how often expired sessions are purged
	SessionCleanupInterval = 15 * time.Minute
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Cache key constants
const (
	// AnnouncementListCacheKey stores the serialized announcement listing
	AnnouncementListCacheKey = "announcements:list"

	// ServiceListCacheKey stores the serialized temple service listing
	ServiceListCacheKey = "services:list"

	// EventListCacheKey stores the serialized temple event listing
	EventListCacheKey = "events:list"
)

// Identifier constants
const (
	// EmpIDLength is the number of digits in a generated employee ID
	EmpIDLength = 5

	// OTPLength is the number of digits in a password reset code
	OTPLength = 5
)
