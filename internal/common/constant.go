// Package common contains constants and small helpers shared by the
// RootShare client packages.
package common

import "strings"

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"
	// RequestIDHeaderName tags each outbound request for server-side correlation.
	RequestIDHeaderName = "X-Request-ID"

	bearerPrefix = "Bearer "
)

// BearerValue formats token as an Authorization header value.
func BearerValue(token string) string {
	return bearerPrefix + token
}

// TokenFromBearer is the inverse of BearerValue. ok is false when the
// header is not a non-empty bearer credential.
func TokenFromBearer(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
