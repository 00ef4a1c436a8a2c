package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/heavyhire/internal/client/session"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	state() session.State
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error
	Wallet(ctx context.Context) error
	Review(ctx context.Context, args []string) error
	BookingLog(ctx context.Context, args []string) error
	SetStatus(ctx context.Context, args []string) error
}

type access int

const (
	anyone access = iota
	guestOnly
	signedIn
	reviewers
	statusEditors
)

func (r access) allowed(st session.State) bool {
	switch r {
	case guestOnly:
		return !st.Authenticated()
	case signedIn:
		return st.Authenticated()
	case reviewers:
		return st.Authenticated() && st.Role.CanReview()
	case statusEditors:
		return st.Authenticated() && st.Role.CanUpdateBookingStatus()
	}
	return true
}

func (r access) denial() string {
	switch r {
	case guestOnly:
		return "Already logged in; use logout first"
	case signedIn:
		return "Please log in first"
	default:
		return "This command is not available for your role"
	}
}

type command struct {
	name   string
	access access
	run    func(ctx context.Context, a execIface, args []string) error
}

var commands = []command{
	{"register", guestOnly, func(ctx context.Context, a execIface, _ []string) error { return a.Register(ctx) }},
	{"login", guestOnly, func(ctx context.Context, a execIface, _ []string) error { return a.Login(ctx) }},
	{"whoami", signedIn, func(ctx context.Context, a execIface, _ []string) error { return a.WhoAmI(ctx) }},
	{"dashboard", signedIn, func(ctx context.Context, a execIface, _ []string) error { return a.Dashboard(ctx) }},
	{"profile", signedIn, func(ctx context.Context, a execIface, _ []string) error { return a.Profile(ctx) }},
	{"editprofile", signedIn, func(ctx context.Context, a execIface, _ []string) error { return a.EditProfile(ctx) }},
	{"avatar", signedIn, func(ctx context.Context, a execIface, args []string) error { return a.Avatar(ctx, args) }},
	{"wallet", signedIn, func(ctx context.Context, a execIface, _ []string) error { return a.Wallet(ctx) }},
	{"review", reviewers, func(ctx context.Context, a execIface, args []string) error { return a.Review(ctx, args) }},
	{"bookinglog", signedIn, func(ctx context.Context, a execIface, args []string) error { return a.BookingLog(ctx, args) }},
	{"setstatus", statusEditors, func(ctx context.Context, a execIface, args []string) error { return a.SetStatus(ctx, args) }},
	{"logout", signedIn, func(ctx context.Context, a execIface, _ []string) error { return a.Logout(ctx) }},
}

// available lists the commands st may run, in display order.
func available(st session.State) []string {
	names := []string{"help"}
	for _, c := range commands {
		if c.access.allowed(st) {
			names = append(names, c.name)
		}
	}
	return append(names, "exit")
}

type lineResult struct {
	line string
	err  error
}

// readLineAsync reads one line on its own goroutine so the caller can stop
// waiting when ctx is done. A read abandoned that way ends with the process.
func readLineAsync(reader *bufio.Reader) <-chan lineResult {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := reader.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()
	return ch
}

// runREPL starts a simple read–eval–print loop for the HeavyHire CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Commands the current session may not run are
// refused with a short message; "help" lists the ones it may. The loop exits
// on EOF, when ctx is done (even mid-read) or when the user types "exit"
// or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	byName := make(map[string]command, len(commands))
	for _, c := range commands {
		byName[c.name] = c
	}

	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "hh %s> ", statusFn())
		var (
			line string
			err  error
		)
		select {
		case r := <-readLineAsync(reader):
			line, err = r.line, r.err
		case <-ctx.Done():
			fmt.Fprintln(w)
			return
		}
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			fmt.Fprintln(w, "Available commands:", strings.Join(available(a.state()), ", "))
			continue
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		}

		c, ok := byName[name]
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name)
			continue
		}
		if !c.access.allowed(a.state()) {
			fmt.Fprintln(w, c.access.denial())
			continue
		}
		_ = c.run(ctx, a, args)
	}
}
