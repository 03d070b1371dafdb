package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	GoogleLogin(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Refresh(ctx context.Context) error
	Home(ctx context.Context) error
	Plants(ctx context.Context, args []string) error
	AddPlant(ctx context.Context) error
	Posts(ctx context.Context) error
	AddPost(ctx context.Context) error
	Stats(ctx context.Context) error
}

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a. Handlers report their own errors, so return values
// are ignored here.
//
//	Not logged in:
//	  register, login, google, stats, help, exit | quit
//
//	Logged in:
//	  home, plants [status], addplant, posts, addpost,
//	  me, refresh, logout, stats, help, exit | quit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("rs %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if requiresLogin(cmd) && !a.isLoggedIn() {
			printlnFn("Please login first.")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: home, plants [active|dead|gifted], addplant, posts, addpost, me, refresh, logout, stats, exit")
			} else {
				printlnFn("Available commands: register, login, google, stats, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "google":
			_ = a.GoogleLogin(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "me":
			_ = a.Me(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "home":
			_ = a.Home(ctx)

		case "plants":
			_ = a.Plants(ctx, args)

		case "addplant":
			_ = a.AddPlant(ctx)

		case "posts":
			_ = a.Posts(ctx)

		case "addpost":
			_ = a.AddPost(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requiresLogin(cmd string) bool {
	switch cmd {
	case "home", "plants", "addplant", "posts", "addpost", "me", "refresh", "logout":
		return true
	}
	return false
}
