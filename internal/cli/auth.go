package cli

import (
	"context"
	"fmt"

	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and delegates to the session store. A failed
// attempt surfaces the store's LastError inline; the user can simply retry.
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

	if !a.session.Login(ctx, email, string(password)) {
		fmt.Fprintf(a.out, "Login failed: %s\n", a.session.Snapshot().LastError)
		return nil
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", a.session.Snapshot().User.Email)
	return nil
}

// Register prompts for account details; a successful registration also
// yields an authenticated session.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.session.Register(ctx, name, email, string(password)) {
		fmt.Fprintf(a.out, "Registration failed: %s\n", a.session.Snapshot().LastError)
		return nil
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", a.session.Snapshot().User.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the cached profile of the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	snap := a.session.Snapshot()
	if !snap.LoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> [%s]\n", snap.User.Name, snap.User.Email, snap.User.SubscriptionTier)
	return nil
}
