package cli

import (
	"context"
	"fmt"

	"github.com/apexfit/apexfit-go/internal/client/models"
	"github.com/apexfit/apexfit-go/internal/client/registration"
	"github.com/apexfit/apexfit-go/internal/common"
)

var roleByAnswer = map[string]models.UserType{
	"owner":  models.UserTypeGymOwner,
	"member": models.UserTypeMember,
	"vendor": models.UserTypeEmployee,
}

func (a *App) Register(ctx context.Context) {
	answer, err := GetSimpleText(a.reader, "Account type (owner/member/vendor)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	role, ok := roleByAnswer[answer]
	if !ok {
		fmt.Fprintf(a.out, "Unknown account type: %s\n", answer)
		return
	}

	fields := registration.Fields{}
	if fields.FullName, err = GetSimpleText(a.reader, "Full name", a.out); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if fields.Email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if fields.Phone, err = GetSimpleText(a.reader, "Phone (optional)", a.out); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	switch role {
	case models.UserTypeGymOwner:
		if fields.GymName, err = GetSimpleText(a.reader, "Gym name", a.out); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
	case models.UserTypeEmployee:
		if fields.BusinessName, err = GetSimpleText(a.reader, "Business name", a.out); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
	}

	password, err := GetPassword(a.out, "Choose a password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(password)
	fields.Password = string(password)

	pending, err := a.session.Signup(ctx, role, fields)
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %s\n", err.Error())
		return
	}
	if pending {
		fmt.Fprintln(a.out, "Almost there: check your inbox for a verification code, then run 'verify'")
		return
	}

	u := a.session.User()
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
}

func (a *App) Verify(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	resend, err := GetSimpleText(a.reader, "Send a new code? (y/n)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if resend == "y" {
		if err := a.session.SendOTP(ctx, email); err != nil {
			fmt.Fprintf(a.out, "Sending failed: %s\n", err.Error())
			return
		}
		fmt.Fprintln(a.out, "Code sent")
	}

	code, err := GetSimpleText(a.reader, "Verification code", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if err := a.session.VerifyOTP(ctx, email, code); err != nil {
		fmt.Fprintf(a.out, "Verification failed: %s\n", err.Error())
		return
	}
	fmt.Fprintln(a.out, "Email verified, you can now log in")
}
