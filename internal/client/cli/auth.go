package cli

import (
	"context"

	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/dmitrijs2005/heavyhire/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getMultiline    = GetMultiline
	getOptionalText = GetOptionalText
)

// Register prompts for the sign-up form and creates the account. When the
// backend requires e-mail confirmation the user stays signed out.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	roleText, err := getSimpleText(a.reader, "Register as (contractor/owner)", a.out)
	if err != nil {
		return err
	}
	role, err := models.ParseRole(roleText)
	if err != nil {
		return a.fail(ctx, "Registration", err)
	}

	err = a.session.SignUp(ctx, models.SignUpRequest{
		Email:    email,
		Password: string(password),
		FullName: fullName,
		Role:     role,
	})
	if err != nil {
		return a.fail(ctx, "Registration", err)
	}

	if a.isLoggedIn() {
		a.println("Success! You are signed in.")
	} else {
		a.println("Success! Check your e-mail to confirm the account, then log in.")
	}
	return nil
}

// Login prompts for credentials and signs in. The password is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.SignIn(ctx, email, string(password)); err != nil {
		return a.fail(ctx, "Login", err)
	}

	st := a.state()
	a.printf("Login successful. Welcome, %s\n", displayName(st.Profile, st.User))
	return nil
}

// Logout signs out. Local state is cleared even if the backend call fails.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		a.log.Warn(ctx, "sign out failed", "error", err)
	}
	a.println("Logged out")
	return nil
}

func displayName(p *models.Profile, u *models.User) string {
	switch {
	case p != nil && p.FullName != "":
		return p.FullName
	case u != nil && u.Metadata.FullName != "":
		return u.Metadata.FullName
	case u != nil:
		return u.Email
	}
	return "guest"
}
