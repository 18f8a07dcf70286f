package console

import (
	"context"
	"strings"
	"text/tabwriter"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authsdk"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
)

func (c *Console) login(ctx context.Context) error {
	username, err := c.ask("Username: ")
	if err != nil {
		return err
	}
	password, err := c.ask("Password: ")
	if err != nil {
		return err
	}

	if err := c.client.Authenticate(ctx, c.session, username, password); err != nil {
		return err
	}

	user, _ := c.session.CurrentUser()
	c.printf("welcome, %s\n", user.Username)
	return nil
}

func (c *Console) logout(context.Context) error {
	c.session.Logout()
	c.printf("logged out\n")
	return nil
}

func (c *Console) showProfile(ctx context.Context) error {
	me, err := c.session.Me(ctx)
	if err != nil {
		return err
	}

	c.printf("uid:      %s\nusername: %s\nemail:    %s\nrole:     %s\ncreated:  %s\n",
		me.UID, me.Username, me.Email, me.Role, me.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func (c *Console) changePassword(ctx context.Context) error {
	current, err := c.ask("Current password: ")
	if err != nil {
		return err
	}
	next, err := c.ask("New password: ")
	if err != nil {
		return err
	}

	if err := c.session.ChangePassword(ctx, current, next); err != nil {
		return err
	}
	c.printf("password changed\n")
	return nil
}

func (c *Console) listUsers(ctx context.Context) error {
	list, err := c.session.ListUsers(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	_, _ = tw.Write([]byte("UID\tUSERNAME\tEMAIL\tROLE\tACTIVE\n"))
	for _, u := range list.Users {
		name := u.Username
		if u.IsSystem {
			name += " *"
		}
		active := "yes"
		if !u.IsActive {
			active = "no"
		}
		_, _ = tw.Write([]byte(strings.Join([]string{u.UID, name, u.Email, u.Role, active}, "\t") + "\n"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	c.printf("%d user(s)\n", list.Total)
	return nil
}

func (c *Console) createUser(ctx context.Context) error {
	var req authsdk.CreateUserRequest
	var err error
	if req.Username, err = c.ask("Username: "); err != nil {
		return err
	}
	if req.Email, err = c.ask("Email: "); err != nil {
		return err
	}
	if req.Password, err = c.ask("Password: "); err != nil {
		return err
	}
	// Empty keeps the server default.
	req.Role, _ = c.prompt("Role [User]: ")

	u, err := c.session.CreateUser(ctx, req)
	if err != nil {
		return err
	}
	c.printf("created %s (%s)\n", u.Username, u.UID)
	return nil
}

func (c *Console) changeRole(ctx context.Context) error {
	uid, err := c.ask("User uid: ")
	if err != nil {
		return err
	}
	name, err := c.ask("New role (Admin/User): ")
	if err != nil {
		return err
	}
	role, err := authz.ParseRole(name)
	if err != nil {
		return err
	}

	u, err := c.session.ChangeRole(ctx, uid, role)
	if err != nil {
		return err
	}
	c.printf("%s is now %s\n", u.Username, u.Role)
	return nil
}

func (c *Console) setActive(ctx context.Context) error {
	uid, err := c.ask("User uid: ")
	if err != nil {
		return err
	}
	answer, err := c.ask("Active? (y/n): ")
	if err != nil {
		return err
	}
	active := strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")

	u, err := c.session.SetActive(ctx, uid, active)
	if err != nil {
		return err
	}
	state := "enabled"
	if !u.IsActive {
		state = "disabled"
	}
	c.printf("%s %s\n", u.Username, state)
	return nil
}

func (c *Console) deleteUser(ctx context.Context) error {
	uid, err := c.ask("User uid: ")
	if err != nil {
		return err
	}
	if err := c.confirm("Delete " + uid + "?"); err != nil {
		return err
	}

	if err := c.session.DeleteUser(ctx, uid); err != nil {
		return err
	}
	c.printf("deleted %s\n", uid)
	return nil
}

func (c *Console) resetDatabase(ctx context.Context) error {
	c.printf("This deletes every account and restores the administrator and the sample users.\n")
	if err := c.confirm("Proceed?"); err != nil {
		return err
	}

	res, err := c.session.ResetDatabase(ctx)
	if err != nil {
		return err
	}
	c.printf("database reset, %d user(s)\n%s\n", res.Users, res.Warning)
	return nil
}

// confirm requires the user to type "yes".
func (c *Console) confirm(question string) error {
	answer, ok := c.prompt(question + " (type 'yes'): ")
	if !ok || !strings.EqualFold(answer, "yes") {
		return errAborted
	}
	return nil
}
