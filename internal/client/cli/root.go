package cli

import (
	"context"
	"fmt"
)

// getStatus renders the prompt suffix, e.g. "(ann home)".
func (a *App) getStatus() string {
	s := ""
	if u := a.store.Current().User; u != nil && a.isLoggedIn() {
		s = u.Username + " "
	}
	if r := a.currentRoute(); r != "" {
		s += string(r)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the interactive session until the user exits. A stored session
// is checked against the server first so an expired one lands on the
// login screen.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to RootShare CLI (type 'help' for commands)")

	stop := a.watchRoute()
	defer stop()

	if a.isLoggedIn() {
		_ = a.Me(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
