package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// getSimpleText and getPassword can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

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

	if err := a.auth.Register(ctx, name, email, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered. You can now login.")
	return nil
}

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

	if err := a.auth.Login(ctx, email, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.lastList = nil
	a.mu.Unlock()

	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
