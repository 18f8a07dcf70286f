// Package console is the interactive text client. It holds exactly one
// authsdk.Session for the life of the process and only offers the actions
// the session's role is permitted to perform.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authsdk"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
)

// action is one menu entry. Entries with a permission are hidden unless the
// session grants it.
type action struct {
	key   string
	label string
	perm  *authz.Permission
	run   func(ctx context.Context) error
}

// Console reads commands from in and writes to out.
type Console struct {
	client  *authsdk.SDKClient
	session *authsdk.Session

	in  *bufio.Scanner
	out io.Writer

	actions []action
}

func New(client *authsdk.SDKClient, in io.Reader, out io.Writer) *Console {
	c := &Console{
		client:  client,
		session: authsdk.NewSession(client),
		in:      bufio.NewScanner(in),
		out:     out,
	}
	c.actions = []action{
		{key: "1", label: "My profile", perm: perm(authz.ViewProfile), run: c.showProfile},
		{key: "2", label: "Change my password", perm: perm(authz.EditProfile), run: c.changePassword},
		{key: "3", label: "List users", perm: perm(authz.ViewUsers), run: c.listUsers},
		{key: "4", label: "Create user", perm: perm(authz.CreateUser), run: c.createUser},
		{key: "5", label: "Change user role", perm: perm(authz.EditUser), run: c.changeRole},
		{key: "6", label: "Enable or disable user", perm: perm(authz.EditUser), run: c.setActive},
		{key: "7", label: "Delete user", perm: perm(authz.DeleteUser), run: c.deleteUser},
		{key: "8", label: "Reset database", perm: perm(authz.DeleteUser), run: c.resetDatabase},
		{key: "l", label: "Log out", run: c.logout},
	}
	return c
}

func perm(p authz.Permission) *authz.Permission { return &p }

// Session is the session the console holds.
func (c *Console) Session() *authsdk.Session { return c.session }

// Run loops until the user quits, input ends or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	c.printf("AppSimple console (%s)\n", c.client.BaseURL)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !c.session.IsLoggedIn() {
			c.printf("\n  1) Log in\n  q) Quit\n")
		} else {
			c.printMenu()
		}

		choice, ok := c.prompt("> ")
		if !ok || choice == "q" {
			c.printf("bye\n")
			return nil
		}

		if !c.session.IsLoggedIn() {
			if choice == "1" {
				c.report(c.login(ctx))
			} else {
				c.printf("unknown option %q\n", choice)
			}
			continue
		}

		a, found := c.lookup(choice)
		if !found {
			c.printf("unknown option %q\n", choice)
			continue
		}
		c.report(a.run(ctx))
	}
}

func (c *Console) printMenu() {
	user, _ := c.session.CurrentUser()
	c.printf("\nLogged in as %s (%s)\n", user.Username, user.Role)
	for _, a := range c.actions {
		if a.perm != nil && !c.session.HasPermission(*a.perm) {
			continue
		}
		c.printf("  %s) %s\n", a.key, a.label)
	}
	c.printf("  q) Quit\n")
}

// lookup finds an action by key, visible or not. Hidden actions still run so
// the session's own permission check answers.
func (c *Console) lookup(key string) (action, bool) {
	for _, a := range c.actions {
		if a.key == key {
			return a, true
		}
	}
	return action{}, false
}

// report prints err the way a user should see it.
func (c *Console) report(err error) {
	if err == nil {
		return
	}

	var apiErr *authsdk.APIError
	switch {
	case errors.Is(err, errAborted):
		c.printf("cancelled\n")
	case errors.Is(err, authsdk.ErrTokenInvalid):
		c.printf("your session has expired, please log in again\n")
	case errors.Is(err, authsdk.ErrNotLoggedIn):
		c.printf("please log in first\n")
	case errors.Is(err, authsdk.ErrPermissionDenied):
		c.printf("permission denied\n")
	case errors.As(err, &apiErr):
		c.printf("error: %s\n", apiErr.Description)
		for field, msg := range apiErr.Details {
			c.printf("  %s %s\n", field, msg)
		}
	default:
		c.printf("error: %v\n", err)
	}
}

var errAborted = errors.New("aborted")

// prompt reads one trimmed line. ok is false at end of input.
func (c *Console) prompt(label string) (string, bool) {
	c.printf("%s", label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// ask is prompt for a required value inside an action.
func (c *Console) ask(label string) (string, error) {
	v, ok := c.prompt(label)
	if !ok || v == "" {
		return "", errAborted
	}
	return v, nil
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
