package models

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// GoogleTokenRequest passes a Google ID token obtained on the device through
// to the backend, which verifies it.
type GoogleTokenRequest struct {
	IDToken string `json:"idToken"`
}

// AuthTokens is the opaque bearer pair minted by the backend. The client
// never inspects either token.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is returned by register, login and google sign-in.
type AuthResponse struct {
	User   User       `json:"user"`
	Tokens AuthTokens `json:"tokens"`
}

// DeleteResponse is returned by resource DELETE endpoints.
type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}
