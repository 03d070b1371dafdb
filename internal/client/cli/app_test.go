package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/rootshare/internal/client/config"
	"github.com/dmitrijs2005/rootshare/internal/client/services"
	"github.com/dmitrijs2005/rootshare/internal/client/uistate"
	"github.com/dmitrijs2005/rootshare/internal/logging"
	"github.com/dmitrijs2005/rootshare/internal/testutil/fakeapi"
	"github.com/stretchr/testify/require"
)

func TestNewApp_RejectsBadURL(t *testing.T) {
	cfg := &config.Config{APIBaseURL: "ftp://example.com/", DBPath: t.TempDir() + "/rs.db"}
	_, err := NewApp(cfg, logging.Discard())
	require.Error(t, err)
}

func TestApp_RegisterGoesHome(t *testing.T) {
	ctx := context.Background()
	app, api := newTestApp(t)
	out := captureOutput(t)

	stop := app.watchRoute()
	defer stop()
	require.Equal(t, RouteLogin, app.currentRoute())
	require.Equal(t, "(login)", app.getStatus())

	stubInputs(t, []string{"ann", "a@b.com"}, []string{"Abcdef12", "Abcdef12"})
	require.NoError(t, app.Register(ctx))

	require.True(t, app.isLoggedIn())
	require.Equal(t, RouteHome, app.currentRoute())
	require.Equal(t, "(ann home)", app.getStatus())
	require.Contains(t, out.text(), "Signed in.")
	require.Contains(t, out.text(), "Account created!")
	require.Equal(t, 1, api.Calls("auth/register"))
}

func TestApp_Register_FieldErrors(t *testing.T) {
	ctx := context.Background()
	app, api := newTestApp(t)
	out := captureOutput(t)

	stubInputs(t, []string{"a b", "bad"}, []string{"short", "other"})
	err := app.Register(ctx)
	require.Error(t, err)

	require.Equal(t, " - Username can only contain letters, numbers, underscore, and hyphen\n"+
		" - Please enter a valid email address\n"+
		" - Password must be at least 8 characters\n"+
		" - Passwords do not match", out.text())
	require.Zero(t, api.TotalCalls())
	require.IsType(t, uistate.Idle{}, app.form.State())
}

func TestApp_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	app, api := newTestApp(t)
	out := captureOutput(t)

	_, err := api.AddUser("a@b.com", "ann", "Abcdef12")
	require.NoError(t, err)

	stubInputs(t, []string{"a@b.com"}, []string{"Wrongpass1"})
	require.Error(t, app.Login(ctx))

	require.Equal(t, "Error: Invalid email or password", out.text())
	require.False(t, app.isLoggedIn())
	require.IsType(t, uistate.Idle{}, app.form.State())
}

func TestApp_LoginThenLogout(t *testing.T) {
	ctx := context.Background()
	app, api := newTestApp(t)
	out := captureOutput(t)

	_, err := api.AddUser("a@b.com", "ann", "Abcdef12")
	require.NoError(t, err)

	stop := app.watchRoute()
	defer stop()

	stubInputs(t, []string{"a@b.com"}, []string{"Abcdef12"})
	require.NoError(t, app.Login(ctx))
	require.Contains(t, out.text(), "Login successful")
	require.Equal(t, RouteHome, app.currentRoute())

	out.reset()
	require.NoError(t, app.Logout(ctx))
	require.False(t, app.isLoggedIn())
	require.Equal(t, RouteLogin, app.currentRoute())
	require.Equal(t, "You have been signed out. Type 'login' to continue.", out.text())
	require.Equal(t, 1, api.Calls("auth/logout"))
}

func TestApp_GoogleLogin(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)
	out := captureOutput(t)

	stubInputs(t, []string{"not-a-google-token", fakeapi.GoogleTokenPrefix + "g@b.com"}, nil)

	require.ErrorIs(t, app.GoogleLogin(ctx), services.ErrGoogleRejected)
	require.Contains(t, out.text(), "Error: Google sign-in was rejected")

	require.NoError(t, app.GoogleLogin(ctx))
	require.True(t, app.isLoggedIn())
	require.Equal(t, "g@b.com", app.store.Current().User.Email)
}

func TestApp_Me_RefreshesExpiredToken(t *testing.T) {
	ctx := context.Background()
	app, api := newTestApp(t)
	out := captureOutput(t)

	stubInputs(t, []string{"ann", "a@b.com"}, []string{"Abcdef12", "Abcdef12"})
	require.NoError(t, app.Register(ctx))

	api.ExpireAccessTokens()
	require.NoError(t, app.Me(ctx))
	require.Contains(t, out.text(), "Username: ann")
	require.Equal(t, 1, api.Calls("auth/refresh"))
	require.True(t, app.isLoggedIn())
}

func TestApp_ExpiredSessionSignsOut(t *testing.T) {
	ctx := context.Background()
	app, api := newTestApp(t)
	out := captureOutput(t)

	stop := app.watchRoute()
	defer stop()

	stubInputs(t, []string{"ann", "a@b.com"}, []string{"Abcdef12", "Abcdef12"})
	require.NoError(t, app.Register(ctx))

	api.ExpireAccessTokens()
	api.RevokeRefreshTokens()

	out.reset()
	require.ErrorIs(t, app.Me(ctx), services.ErrSessionExpired)
	require.Equal(t, "You have been signed out. Type 'login' to continue.\n"+
		"Error: Session expired, please login again", out.text())
	require.Equal(t, RouteLogin, app.currentRoute())
	require.Equal(t, "(login)", app.getStatus())
}

func TestApp_Refresh(t *testing.T) {
	ctx := context.Background()
	app, api := newTestApp(t)
	out := captureOutput(t)

	require.ErrorIs(t, app.Refresh(ctx), services.ErrNoRefreshToken)
	require.Contains(t, out.text(), "Error: No refresh token")

	stubInputs(t, []string{"ann", "a@b.com"}, []string{"Abcdef12", "Abcdef12"})
	require.NoError(t, app.Register(ctx))
	require.NoError(t, app.Refresh(ctx))
	require.Contains(t, out.text(), "Session refreshed.")
	require.Equal(t, 1, api.Calls("auth/refresh"))
}
