package fakeapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/rootshare/internal/client/models"
	"github.com/dmitrijs2005/rootshare/internal/common"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GoogleTokenPrefix marks ID tokens the fake accepts: "google:<email>".
const GoogleTokenPrefix = "google:"

var errAccountExists = errors.New("an account with this email or username already exists")

type userIDKey struct{}

func requestUserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey{}).(string)
	return id
}

// authed rejects requests without a current access token.
func (a *API) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := common.TokenFromBearer(r.Header.Get(common.AuthorizationHeaderName))
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		c, err := parseToken(a.secret, raw, kindAccess)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		a.mu.Lock()
		_, exists := a.accounts[c.UserID]
		stale := c.Gen != a.gen
		a.mu.Unlock()
		if !exists || stale {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		h(w, r.WithContext(context.WithValue(r.Context(), userIDKey{}, c.UserID)))
	}
}

// issueLocked mints a token pair for userID. Caller holds a.mu.
func (a *API) issueLocked(userID string) (models.AuthTokens, error) {
	access, _, err := signToken(a.secret, userID, kindAccess, a.gen, a.accessTTL)
	if err != nil {
		return models.AuthTokens{}, err
	}
	refresh, jti, err := signToken(a.secret, userID, kindRefresh, 0, a.refreshTTL)
	if err != nil {
		return models.AuthTokens{}, err
	}
	a.refresh[jti] = userID
	return models.AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// createLocked registers a new account. Caller holds a.mu.
func (a *API) createLocked(email, username string, hash []byte, provider models.AuthProvider) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	key := strings.ToLower(username)
	if _, ok := a.byEmail[email]; ok {
		return models.User{}, errAccountExists
	}
	if _, ok := a.byUsername[key]; ok {
		return models.User{}, errAccountExists
	}

	ts := now()
	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		Role:         models.RoleUser,
		AuthProvider: provider,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	a.accounts[u.ID] = &account{user: u, hash: hash}
	a.byEmail[email] = u.ID
	a.byUsername[key] = u.ID
	return u, nil
}

// AddUser seeds a local account.
func (a *API) AddUser(email, username, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return models.User{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.createLocked(email, username, hash, models.AuthProviderLocal)
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decode(r, &req) || req.Email == "" || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email, username and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a.mu.Lock()
	u, err := a.createLocked(req.Email, req.Username, hash, models.AuthProviderLocal)
	if err != nil {
		a.mu.Unlock()
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	tokens, err := a.issueLocked(u.ID)
	a.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, models.AuthResponse{User: u, Tokens: tokens})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(r, &req) || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	a.mu.Lock()
	var acc account
	id, ok := a.byEmail[strings.ToLower(strings.TrimSpace(req.Email))]
	if ok {
		acc = *a.accounts[id]
	}
	a.mu.Unlock()

	if !ok || acc.hash == nil || bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	a.mu.Lock()
	tokens, err := a.issueLocked(id)
	a.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResponse{User: acc.user, Tokens: tokens})
}

// handleGoogle accepts "google:<email>" ID tokens, signing in the account
// with that email or creating a google one.
func (a *API) handleGoogle(w http.ResponseWriter, r *http.Request) {
	var req models.GoogleTokenRequest
	if !decode(r, &req) || req.IDToken == "" {
		writeError(w, http.StatusBadRequest, "idToken is required")
		return
	}
	email, ok := strings.CutPrefix(req.IDToken, GoogleTokenPrefix)
	if !ok || !strings.Contains(email, "@") {
		writeError(w, http.StatusUnauthorized, "invalid google token")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var u models.User
	if id, exists := a.byEmail[strings.ToLower(email)]; exists {
		u = a.accounts[id].user
	} else {
		local, _, _ := strings.Cut(email, "@")
		var err error
		u, err = a.createLocked(email, local+"_"+uuid.NewString()[:8], nil, models.AuthProviderGoogle)
		if err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
	}

	tokens, err := a.issueLocked(u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResponse{User: u, Tokens: tokens})
}

// handleRefresh rotates the refresh token: the presented one is spent.
func (a *API) handleRefresh(w http.ResponseWriter, r *http.Request) {
	raw, ok := common.TokenFromBearer(r.Header.Get(common.AuthorizationHeaderName))
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing refresh token")
		return
	}
	c, err := parseToken(a.secret, raw, kindRefresh)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if owner, live := a.refresh[c.ID]; !live || owner != c.UserID {
		writeError(w, http.StatusUnauthorized, "refresh token revoked")
		return
	}
	delete(a.refresh, c.ID)

	tokens, err := a.issueLocked(c.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

// handleLogout revokes every refresh token of the caller.
func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	uid := requestUserID(r)

	a.mu.Lock()
	for jti, owner := range a.refresh {
		if owner == uid {
			delete(a.refresh, jti)
		}
	}
	a.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	u := a.accounts[requestUserID(r)].user
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, u)
}
