package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/rootshare/internal/client/uistate"
	"github.com/dmitrijs2005/rootshare/internal/client/validation"
	"github.com/dmitrijs2005/rootshare/internal/common"
)

// Input indirections swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

var formFields = []string{
	validation.FieldUsername,
	validation.FieldEmail,
	validation.FieldPassword,
	validation.FieldConfirmPassword,
}

// Register collects the registration form and submits it.
func (a *App) Register(ctx context.Context) error {
	a.form.Reset()

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	return a.report(a.form.Register(ctx, username, email, string(password), string(confirm)), "Account created!")
}

// Login collects email and password and submits the login form.
func (a *App) Login(ctx context.Context) error {
	a.form.Reset()

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.report(a.form.Login(ctx, email, string(password)), "Login successful")
}

// GoogleLogin takes an ID token obtained from Google sign-in elsewhere and
// exchanges it for a session.
func (a *App) GoogleLogin(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Paste Google ID token", a.out)
	if err != nil {
		return err
	}
	if _, err := a.auth.GoogleLogin(ctx, token); err != nil {
		return a.fail(ctx, "google sign-in", err)
	}
	printlnFn("Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.form.Logout(ctx)
	return nil
}

// Me shows the current profile. An expired session that cannot be
// refreshed signs the user out.
func (a *App) Me(ctx context.Context) error {
	u, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return a.fail(ctx, "current user", err)
	}
	printlnFn("Username:", u.Username)
	printlnFn("Email:   ", u.Email)
	printlnFn("Role:    ", string(u.Role))
	printlnFn("Provider:", string(u.AuthProvider))
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.auth.RefreshSession(ctx); err != nil {
		return a.fail(ctx, "refresh", err)
	}
	printlnFn("Session refreshed.")
	return nil
}

// report prints the outcome of a form submission. Field errors are listed
// one per line in form order.
func (a *App) report(st uistate.State, success string) error {
	switch s := st.(type) {
	case uistate.Success:
		printlnFn(success)
		return nil
	case uistate.Error:
		printlnFn("Error:", s.Message)
		a.form.ClearError()
		return errors.New(s.Message)
	}

	fe := a.form.FieldErrors()
	if !fe.HasErrors() {
		return nil
	}
	for _, f := range formFields {
		if msg := fe.Get(f); msg != "" {
			printlnFn(" -", msg)
		}
	}
	return fe
}

func (a *App) fail(ctx context.Context, op string, err error) error {
	a.log.Debug(ctx, op+" failed", "error", err)
	printlnFn("Error:", common.Sentence(err.Error()))
	return err
}
