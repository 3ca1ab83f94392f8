package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/petzy/internal/prefs"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Act(ctx context.Context, kind prefs.ActionKind, args []string) error
	Teleport(ctx context.Context, args []string) error
	Select(ctx context.Context, args []string) error
	Pets(ctx context.Context) error
	Stats(ctx context.Context) error
	History(ctx context.Context, args []string) error
	Status(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: feed, play, groom, rest, interact [detail], teleport <scene>, " +
		"select <pet>, pets, stats, history [days], status, logout, exit"
)

// runREPL starts a read-eval-print loop for the Petzy CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF
// or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account and name the pet
//	  - login          authenticate and start syncing
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - feed|play|groom|rest|interact [detail]   care for the pet
//	  - teleport <scene>                          move to another scene
//	  - select <pet>                              choose a companion model
//	  - pets                                      list companions
//	  - stats                                     show derived stats
//	  - history [days]                            show daily counts
//	  - status                                    show session and sync state
//	  - logout                                    log out
//	  - exit | quit                               leave the program
//
// Errors returned by command handlers are not fatal; handlers report them
// to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("petzy %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if kind, ok := prefs.ParseActionKind(cmd); ok {
			if requireLogin(a) {
				_ = a.Act(ctx, kind, args)
			}
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			if err := a.Register(ctx); err != nil {
				printlnFn("Registration failed:", describeError(err))
			}

		case "login":
			if err := a.Login(ctx); err != nil {
				printlnFn("Login failed:", describeError(err))
			}

		case "teleport":
			if requireLogin(a) {
				_ = a.Teleport(ctx, args)
			}

		case "select":
			if requireLogin(a) {
				_ = a.Select(ctx, args)
			}

		case "pets":
			if requireLogin(a) {
				_ = a.Pets(ctx)
			}

		case "stats":
			if requireLogin(a) {
				_ = a.Stats(ctx)
			}

		case "history":
			if requireLogin(a) {
				_ = a.History(ctx, args)
			}

		case "status":
			_ = a.Status(ctx)

		case "logout":
			if requireLogin(a) {
				if err := a.Logout(ctx); err != nil {
					printlnFn("Logout failed:", describeError(err))
				}
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requireLogin(a execIface) bool {
	if a.isLoggedIn() {
		return true
	}
	printlnFn("Please login first.")
	return false
}
