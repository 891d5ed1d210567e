/*
Package surveysdk is a Go client for the QA market survey API.

# Client vs Session

  - Client: unauthenticated operations (health, registration, login)
  - Session: operations that need a bearer token

Log in with a Client and use the returned Session:

	client := surveysdk.NewClient("http://localhost:8080")

	session, err := client.Login(ctx, "ana@example.com", "Senha123")
	if err != nil {
		var apiErr *surveysdk.APIError
		if errors.As(err, &apiErr) && apiErr.Code == surveysdk.ErrorCodeAccountLocked {
			fmt.Println("locked for", apiErr.MinutesRemaining, "minutes")
		}
		return err
	}

	rec, err := session.CreateRecord(ctx, surveysdk.RecordInput{...})

# Sessions

Session tokens last 24 hours and cannot be refreshed. Once the token is about
to lapse every Session method returns ErrSessionExpired without calling the
server, and the caller logs in again.

Sessions are safe for concurrent use.
*/
package surveysdk
