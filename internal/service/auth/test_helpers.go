package auth

import "time"

// NewTestJWTService creates a JWT service with an injectable time function
// for predictable expiry testing. Production code must go through
// NewJWTService, which enforces secret length and wires the real clock.
func NewTestJWTService(
	secret string,
	tokenLifetime time.Duration,
	timeFunc func() time.Time,
) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: tokenLifetime,
		timeFunc:      timeFunc,
	}
}
