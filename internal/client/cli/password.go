package cli

import (
	"context"
	"fmt"

	"github.com/apexfit/apexfit-go/internal/common"
)

func (a *App) ChangePassword(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}

	current, err := GetPassword(a.out, "Current password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(current)

	updated, err := GetPassword(a.out, "New password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(updated)

	if err := a.session.ChangePassword(ctx, string(current), string(updated)); err != nil {
		fmt.Fprintf(a.out, "Change failed: %s\n", err.Error())
		return
	}
	fmt.Fprintln(a.out, "Password changed")
}
