package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	u := a.session.User()
	if u == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", u.Email, strings.ToLower(string(u.Role)))
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the ApexFit client (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "apexfit %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if !a.Dispatch(ctx, cmd, args) {
			return
		}
	}
}

// Dispatch executes one command. It returns false when the shell should
// exit.
func (a *App) Dispatch(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(a.out, "Available commands: whoami, switch-role, change-password, logout, exit")
		} else {
			fmt.Fprintln(a.out, "Available commands: register, login, verify, exit")
		}

	case "register":
		a.Register(ctx)

	case "login":
		a.Login(ctx)

	case "verify":
		a.Verify(ctx)

	case "logout":
		a.Logout(ctx)

	case "whoami":
		a.Whoami(ctx, args)

	case "switch-role":
		a.SwitchRole(ctx, args)

	case "change-password":
		a.ChangePassword(ctx)

	case "exit":
		return false

	default:
		fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
	}
	return true
}
