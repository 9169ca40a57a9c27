package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	LoginWithGoogle(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Expenses(ctx context.Context) error
	AddExpense(ctx context.Context) error
	EditExpense(ctx context.Context) error
	DeleteExpense(ctx context.Context) error

	Revenues(ctx context.Context) error
	AddRevenue(ctx context.Context) error
	EditRevenue(ctx context.Context) error
	DeleteRevenue(ctx context.Context) error

	Dashboard(ctx context.Context) error
	Me(ctx context.Context) error
	UploadAvatar(ctx context.Context) error
	DeleteAvatar(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the fintrack CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands that operate on account data require an active session. The
// guard in front of them redirects a logged-out user to the login prompt
// instead of issuing a request that can only fail.
//
// Any errors returned by command handlers are ignored here; handlers render
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ft> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: expenses, addexpense, editexpense, delexpense,")
				printlnFn("  revenues, addrevenue, editrevenue, delrevenue, dashboard,")
				printlnFn("  me, avatar, delavatar, delaccount, whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, google, register, forgot, reset, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "google":
			_ = a.LoginWithGoogle(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "expenses":
			if requireLogin(a) {
				_ = a.Expenses(ctx)
			}

		case "addexpense":
			if requireLogin(a) {
				_ = a.AddExpense(ctx)
			}

		case "editexpense":
			if requireLogin(a) {
				_ = a.EditExpense(ctx)
			}

		case "delexpense":
			if requireLogin(a) {
				_ = a.DeleteExpense(ctx)
			}

		case "revenues":
			if requireLogin(a) {
				_ = a.Revenues(ctx)
			}

		case "addrevenue":
			if requireLogin(a) {
				_ = a.AddRevenue(ctx)
			}

		case "editrevenue":
			if requireLogin(a) {
				_ = a.EditRevenue(ctx)
			}

		case "delrevenue":
			if requireLogin(a) {
				_ = a.DeleteRevenue(ctx)
			}

		case "dashboard":
			if requireLogin(a) {
				_ = a.Dashboard(ctx)
			}

		case "me":
			if requireLogin(a) {
				_ = a.Me(ctx)
			}

		case "avatar":
			if requireLogin(a) {
				_ = a.UploadAvatar(ctx)
			}

		case "delavatar":
			if requireLogin(a) {
				_ = a.DeleteAvatar(ctx)
			}

		case "delaccount":
			if requireLogin(a) {
				_ = a.DeleteAccount(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
