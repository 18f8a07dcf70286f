/*
Package authsdk provides a client SDK for the AppSimple API.

# SDKClient vs Session

  - SDKClient: unauthenticated operations (login, health) and session creation
  - Session: the principal and bearer token of the current login, plus the
    authenticated operations

A front-end creates one Session when it starts and owns it for the lifetime of
the process:

	client := authsdk.NewSDKClient("http://localhost:8080")
	sess := authsdk.NewSession(client)

	if err := client.Authenticate(ctx, sess, "admin", password); err != nil {
		if errors.Is(err, authsdk.ErrInvalidCredentials) {
			// unknown user and wrong password look the same
		}
		return err
	}

	if sess.HasPermission(authz.ViewUsers) {
		users, err := sess.ListUsers(ctx)
		...
	}

	sess.Logout()

# Permissions

Every Session operation declares the authz.Permission it needs and checks it
locally before sending anything, using the same table the server enforces.
A denied check returns ErrPermissionDenied without a round trip.

# Tokens

Tokens are not refreshed. When the server rejects the token (expired or
signed under a rotated secret) the operation returns ErrTokenInvalid and the
session is logged out.

# Error Handling

Server errors are returned as *APIError. Compare them with errors.Is against
the predefined values:

	_, err := sess.CreateUser(ctx, req)
	switch {
	case errors.Is(err, authsdk.ErrDuplicate):
	case errors.Is(err, authsdk.ErrPermissionDenied):
	}
*/
package authsdk
