// Package services contains the application services of the RootShare
// client. This file defines the session manager: login, registration,
// google sign-in, logout, token refresh and the current-user lookup with a
// single refresh-and-retry on 401.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rootshare/internal/client/client"
	"github.com/dmitrijs2005/rootshare/internal/client/metrics"
	"github.com/dmitrijs2005/rootshare/internal/client/models"
	"github.com/dmitrijs2005/rootshare/internal/client/store"
	"github.com/dmitrijs2005/rootshare/internal/client/validation"
	"github.com/dmitrijs2005/rootshare/internal/logging"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// AuthService owns the session. It is the only writer of the credential
// store.
//
// Contract:
//   - Register/Login/GoogleLogin: on success the tokens and the user are
//     stored together; on failure the store is untouched.
//   - RefreshSession: swaps the token pair; any failure other than an
//     abandoned request clears the store.
//   - Logout: always clears the store and never fails.
//   - CurrentUser: fetches and caches the user, refreshing once on 401.
//
// Invalid form input is reported as *validation.FieldErrors without any
// network call.
type AuthService interface {
	Register(ctx context.Context, email, username, password, confirmPassword string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	GoogleLogin(ctx context.Context, idToken string) (*models.AuthResponse, error)
	RefreshSession(ctx context.Context) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	AccessToken(ctx context.Context) (string, bool)
	SubscribeLoggedIn(fn func(bool)) (cancel func())
	SubscribeUser(fn func(*models.User)) (cancel func())

	// Token exposes the stored access token to oauth2.Transport.
	oauth2.TokenSource
}

type authService struct {
	client  client.Client
	store   *store.Store
	log     logging.Logger
	metrics *metrics.Metrics

	refreshes singleflight.Group
}

// NewAuthService binds the session manager to the API client and the
// credential store. log and m may be nil.
func NewAuthService(c client.Client, s *store.Store, log logging.Logger, m *metrics.Metrics) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{client: c, store: s, log: log.With("component", "auth"), metrics: m}
}

func (a *authService) Register(ctx context.Context, email, username, password, confirmPassword string) (*models.AuthResponse, error) {
	if errs := validation.ValidateRegister(username, email, password, confirmPassword); errs.HasErrors() {
		return nil, &errs
	}

	resp, err := a.client.Register(ctx, models.RegisterRequest{
		Email:    strings.TrimSpace(email),
		Username: strings.TrimSpace(username),
		Password: password,
	})
	if err != nil {
		switch {
		case errors.Is(err, client.ErrConflict):
			return nil, ErrAccountExists
		default:
			return nil, requestFailure("registration failed", err)
		}
	}

	if err := a.store.SaveAuth(ctx, resp.User, resp.Tokens); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "registered", "user_id", resp.User.ID)
	return resp, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if errs := validation.ValidateLogin(email, password); errs.HasErrors() {
		return nil, &errs
	}

	resp, err := a.client.Login(ctx, models.LoginRequest{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		switch {
		case errors.Is(err, client.ErrUnauthorized):
			return nil, ErrInvalidCredentials
		default:
			return nil, requestFailure("login failed", err)
		}
	}

	if err := a.store.SaveAuth(ctx, resp.User, resp.Tokens); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "logged in", "user_id", resp.User.ID)
	return resp, nil
}

// GoogleLogin exchanges an ID token obtained by the platform sign-in for a
// session. The token is passed through untouched; the backend verifies it.
func (a *authService) GoogleLogin(ctx context.Context, idToken string) (*models.AuthResponse, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return nil, ErrMissingIDToken
	}

	resp, err := a.client.GoogleAuth(ctx, models.GoogleTokenRequest{IDToken: idToken})
	if err != nil {
		switch {
		case errors.Is(err, client.ErrUnauthorized):
			return nil, ErrGoogleRejected
		default:
			return nil, requestFailure("google sign-in failed", err)
		}
	}

	if err := a.store.SaveAuth(ctx, resp.User, resp.Tokens); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "logged in with google", "user_id", resp.User.ID)
	return resp, nil
}

// requestFailure maps what is left after the operation-specific statuses.
func requestFailure(op string, err error) error {
	switch {
	case errors.Is(err, client.ErrBadRequest):
		return ErrCheckInput
	case client.StatusCode(err) != 0, errors.Is(err, client.ErrEmptyResponse):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
}

// RefreshSession trades the stored refresh token for a new pair. Concurrent
// calls share one request, which runs detached from any single caller and
// is bounded by the transport timeout. A caller whose ctx ends stops
// waiting; the shared refresh still completes and stores its result. On
// any other failure the whole session is cleared.
func (a *authService) RefreshSession(ctx context.Context) error {
	detached := context.WithoutCancel(ctx)
	ch := a.refreshes.DoChan("refresh", func() (any, error) {
		return nil, a.refresh(detached)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrTokenRefreshFailed, ctx.Err())
	}
}

func (a *authService) refresh(ctx context.Context) error {
	rec := a.snapshot(ctx)
	if rec.RefreshToken == "" {
		a.metrics.ObserveRefresh(metrics.RefreshSkipped)
		return ErrNoRefreshToken
	}

	tokens, err := a.client.RefreshToken(ctx, rec.RefreshToken)
	if err == nil {
		err = a.store.UpdateTokens(ctx, *tokens)
	}
	if err == nil {
		a.metrics.ObserveRefresh(metrics.RefreshSucceeded)
		a.log.Debug(ctx, "session refreshed")
		return nil
	}

	a.metrics.ObserveRefresh(metrics.RefreshFailed)
	// an abandoned request says nothing about the refresh token
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		a.log.Info(ctx, "token refresh abandoned", "error", err)
		return fmt.Errorf("%w: %w", ErrTokenRefreshFailed, err)
	}

	a.log.Warn(ctx, "token refresh failed, clearing session", "error", err)
	if cerr := a.store.Clear(context.WithoutCancel(ctx)); cerr != nil {
		a.log.Error(ctx, "failed to clear session", "error", cerr)
	}
	return fmt.Errorf("%w: %w", ErrTokenRefreshFailed, err)
}

// Logout revokes the session on the server if possible and always clears
// the local credentials.
func (a *authService) Logout(ctx context.Context) error {
	if rec := a.snapshot(ctx); rec.AccessToken != "" {
		if err := a.client.Logout(ctx, rec.AccessToken); err != nil {
			a.log.Info(ctx, "server logout failed, clearing locally", "error", err)
		}
	}

	if err := a.store.Clear(context.WithoutCancel(ctx)); err != nil {
		a.log.Error(ctx, "failed to clear session", "error", err)
	}
	return nil
}

// CurrentUser fetches the profile and caches it. A 401 triggers one
// refresh; if that works the call is retried once with the new token.
func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	rec := a.snapshot(ctx)
	if rec.AccessToken == "" {
		return nil, ErrNotAuthenticated
	}

	user, err := a.client.CurrentUser(ctx, rec.AccessToken)
	if err == nil {
		return a.cacheUser(ctx, user), nil
	}
	if !errors.Is(err, client.ErrUnauthorized) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := a.RefreshSession(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("failed to get user: %w", ctx.Err())
		}
		a.log.Info(ctx, "session expired", "error", err)
		return nil, ErrSessionExpired
	}

	user, err = a.client.CurrentUser(ctx, a.snapshot(ctx).AccessToken)
	if err != nil {
		a.log.Warn(ctx, "user lookup failed after refresh", "error", err)
		return nil, ErrGetUserFailed
	}
	return a.cacheUser(ctx, user), nil
}

// cacheUser stores u; a failed write is logged because the caller already
// has a valid profile.
func (a *authService) cacheUser(ctx context.Context, u *models.User) *models.User {
	if err := a.store.SaveUser(ctx, *u); err != nil {
		a.log.Error(ctx, "failed to cache user", "error", err)
	}
	return u
}

func (a *authService) AccessToken(ctx context.Context) (string, bool) {
	tok := a.snapshot(ctx).AccessToken
	return tok, tok != ""
}

// snapshot reads the persisted record, falling back to the last published
// one if the database cannot be read.
func (a *authService) snapshot(ctx context.Context) store.Record {
	rec, err := a.store.Read(ctx)
	if err != nil {
		a.log.Warn(ctx, "credential read failed, using cached record", "error", err)
		return a.store.Current()
	}
	return rec
}

func (a *authService) SubscribeLoggedIn(fn func(bool)) (cancel func()) {
	return a.store.SubscribeLoggedIn(fn)
}

func (a *authService) SubscribeUser(fn func(*models.User)) (cancel func()) {
	return a.store.SubscribeUser(fn)
}

// Token implements oauth2.TokenSource. It never refreshes on its own; an
// expired token surfaces as a 401 from the resource call.
func (a *authService) Token() (*oauth2.Token, error) {
	tok := a.store.Current().AccessToken
	if tok == "" {
		return nil, client.ErrNoAccessToken
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}
