package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vibejournal/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	report(ctx context.Context, err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Onboard(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Talk(ctx context.Context, path string) error
	Say(ctx context.Context, text string) error
	Morning(ctx context.Context) error
	StopPlayback(ctx context.Context) error
	Archive(ctx context.Context) error
	Vault(ctx context.Context) error
	Insights(ctx context.Context) error

	Network(ctx context.Context) error
	React(ctx context.Context, vibrationID, reaction string) error
	Offer(ctx context.Context, vibrationID string) error

	Subscribe(ctx context.Context) error
	Billing(ctx context.Context) error
}

// publicCommands run without a stored token.
var publicCommands = map[string]bool{
	"help": true, "register": true, "login": true, "exit": true, "quit": true,
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: talk <file>, say <text>, morning, stop, archive, vault, insights, " +
		"network, react <id> <reaction>, offer <id>, onboard, subscribe, billing, whoami, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the vibejournal CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Every command error goes through a.report,
// so failures (including an expired session) are handled the same way for
// all commands. The loop exits on EOF, on "exit" / "quit", or when ctx is
// cancelled.
//
// Commands other than help, register, login and exit require a stored
// token; they are refused locally otherwise.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("vibe %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if !publicCommands[cmd] && !a.isLoggedIn() {
			a.report(ctx, common.ErrNotLoggedIn)
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
			a.report(ctx, a.Register(ctx))

		case "login":
			a.report(ctx, a.Login(ctx))

		case "logout":
			a.report(ctx, a.Logout(ctx))

		case "onboard":
			a.report(ctx, a.Onboard(ctx))

		case "whoami":
			a.report(ctx, a.WhoAmI(ctx))

		case "talk":
			a.report(ctx, a.Talk(ctx, strings.Join(args, " ")))

		case "say":
			a.report(ctx, a.Say(ctx, strings.Join(args, " ")))

		case "morning":
			a.report(ctx, a.Morning(ctx))

		case "stop":
			a.report(ctx, a.StopPlayback(ctx))

		case "archive":
			a.report(ctx, a.Archive(ctx))

		case "vault":
			a.report(ctx, a.Vault(ctx))

		case "insights":
			a.report(ctx, a.Insights(ctx))

		case "network", "feed":
			a.report(ctx, a.Network(ctx))

		case "react":
			if len(args) < 2 {
				printlnFn("Usage: react <id> <heart|hug|spark|support>")
				continue
			}
			a.report(ctx, a.React(ctx, args[0], args[1]))

		case "offer":
			if len(args) == 0 {
				printlnFn("Usage: offer <id>")
				continue
			}
			a.report(ctx, a.Offer(ctx, args[0]))

		case "subscribe":
			a.report(ctx, a.Subscribe(ctx))

		case "billing":
			a.report(ctx, a.Billing(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
