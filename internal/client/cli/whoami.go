package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/apexfit/apexfit-go/internal/client/api"
	"github.com/apexfit/apexfit-go/internal/client/models"
)

// Whoami prints the current session user. With the "refresh" argument the
// authoritative record is re-fetched from the backend first.
func (a *App) Whoami(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}

	u := a.session.User()
	if len(args) > 0 && args[0] == "refresh" {
		refreshed, err := a.session.Me(ctx)
		if err != nil {
			fmt.Fprintf(a.out, "Refresh failed: %s\n", err.Error())
			return
		}
		u = refreshed
	}

	fmt.Fprintf(a.out, "%s <%s>\nrole: %s\n", u.Name, u.Email, u.Role)
	if u.ApprovalStatus != "" {
		fmt.Fprintf(a.out, "approval: %s\n", u.ApprovalStatus)
	}

	if creds := a.store.Get(ctx); creds != nil {
		if info, err := api.ParseTokenInfo(creds.AccessToken); err == nil && !info.ExpiresAt.IsZero() {
			fmt.Fprintf(a.out, "access token expires in %s\n", time.Until(info.ExpiresAt).Round(time.Second))
		}
	}
}

// SwitchRole changes the dashboard role preview. The backend still decides
// what the account is actually allowed to do.
func (a *App) SwitchRole(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: switch-role <GYM_OWNER|MEMBER|EMPLOYEE|ADMIN>")
		return
	}
	if err := a.session.SwitchRole(ctx, models.UserType(args[0])); err != nil {
		fmt.Fprintf(a.out, "Switch failed: %s\n", err.Error())
		return
	}
	fmt.Fprintf(a.out, "Previewing as %s\n", args[0])
}
