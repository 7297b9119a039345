// Package email sends transactional emails through a provider-agnostic interface
// and dispatches test sends to a running preview server.
//
// # Senders
//
// EmailSender is implemented by:
//   - the Postmark client, for real delivery
//   - DevSender, which writes each email as an HTML file plus JSON metadata
//
// NewSender picks Postmark when both tokens are configured and falls back to
// DevSender otherwise:
//
//	sender, err := email.NewSender(cfg)
//	if err != nil {
//	    return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "user@example.com",
//	    Subject:  "Welcome!",
//	    BodyHTML: html,
//	})
//
// All senders validate params first; failures wrap ErrInvalidParams.
//
// # Test sends
//
// TestClient posts {to, subject, html} to a server's /api/send/test endpoint and
// returns the HTTP status together with the server's error message:
//
//	client := email.NewTestClient("http://localhost:8080")
//	res, err := client.SendTest(ctx, email.TestRequest{To: to, Subject: subj, HTML: html})
//	if err == nil && res.StatusCode == http.StatusTooManyRequests {
//	    // back off
//	}
//
// # Errors
//
//   - ErrInvalidConfig: configuration validation failed
//   - ErrInvalidParams: email parameters validation failed
//   - ErrFailedToSendEmail: delivery or transport failed
package email
