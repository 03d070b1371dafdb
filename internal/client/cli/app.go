package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/rootshare/internal/client/client"
	"github.com/dmitrijs2005/rootshare/internal/client/config"
	"github.com/dmitrijs2005/rootshare/internal/client/metrics"
	"github.com/dmitrijs2005/rootshare/internal/client/services"
	"github.com/dmitrijs2005/rootshare/internal/client/store"
	"github.com/dmitrijs2005/rootshare/internal/client/uistate"
	"github.com/dmitrijs2005/rootshare/internal/logging"
)

// Route is the screen the client is on.
type Route string

const (
	RouteLogin Route = "login"
	RouteHome  Route = "home"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	store   *store.Store
	metrics *metrics.Metrics
	auth    services.AuthService
	plants  services.PlantService
	posts   services.PostService
	form    *uistate.AuthForm
	reader  *bufio.Reader
	out     io.Writer

	mu    sync.Mutex
	route Route
}

// NewApp opens the credential database and wires the API clients and
// services. Resource requests take their bearer token from the auth
// service, so the two HTTP clients are built separately.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	s, err := store.New(ctx, db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	m := metrics.New()
	options := func(extra ...client.Option) []client.Option {
		return append([]client.Option{
			client.WithTimeout(c.Timeout),
			client.WithMetrics(m),
			client.WithLogger(log),
		}, extra...)
	}

	authClient, err := client.NewHTTPClient(c.APIBaseURL, options()...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	as := services.NewAuthService(authClient, s, log, m)

	resourceClient, err := client.NewHTTPClient(c.APIBaseURL, options(client.WithTokenSource(as))...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:  c,
		log:     log,
		db:      db,
		store:   s,
		metrics: m,
		auth:    as,
		plants:  services.NewPlantService(resourceClient),
		posts:   services.NewPostService(resourceClient),
		form:    uistate.NewAuthForm(as, nil),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.log.Error(context.Background(), "error closing database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Current().LoggedIn()
}

// watchRoute moves between the login and home screens whenever the
// logged-in flag changes, including sign-outs caused by a failed refresh.
func (a *App) watchRoute() (cancel func()) {
	return a.auth.SubscribeLoggedIn(func(loggedIn bool) {
		if loggedIn {
			a.navigate(RouteHome)
		} else {
			a.navigate(RouteLogin)
		}
	})
}

func (a *App) navigate(r Route) {
	a.mu.Lock()
	prev := a.route
	a.route = r
	a.mu.Unlock()

	switch {
	case prev == r:
	case prev == RouteHome && r == RouteLogin:
		printlnFn("You have been signed out. Type 'login' to continue.")
	case r == RouteHome:
		printlnFn("Signed in. Type 'home' to see the feed.")
	default:
		printlnFn("Please 'login' or 'register' to continue.")
	}
}

func (a *App) currentRoute() Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}
