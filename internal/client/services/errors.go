package services

import "errors"

// Errors returned by the services. Messages are shown to the user, so they
// are complete phrases; the CLI capitalizes them.
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrNoRefreshToken     = errors.New("no refresh token")
	ErrTokenRefreshFailed = errors.New("token refresh failed")
	ErrSessionExpired     = errors.New("session expired, please login again")
	ErrGetUserFailed      = errors.New("failed to get user")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountExists      = errors.New("an account with this email or username already exists")
	ErrCheckInput         = errors.New("please check your input and try again")
	ErrMissingIDToken     = errors.New("google ID token is required")
	ErrGoogleRejected     = errors.New("google sign-in was rejected")
	ErrNetwork            = errors.New("network error")
)
