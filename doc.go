// Package maileroo provides a Go client SDK for the Maileroo transactional
// email API.
//
// The SDK validates every request before it leaves the process: addresses,
// subjects, tags, headers, attachments and reference ids are checked, and
// any violation is reported as an error matching [ErrInvalidArgument]
// without a network call being made.
//
// Basic usage:
//
//	client, err := maileroo.New("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	from, _ := maileroo.NewEmailAddressWithName("hello@example.com", "Example")
//	to, _ := maileroo.NewEmailAddress("jane@example.org")
//
//	id, err := client.SendBasicEmail(ctx, maileroo.BasicEmail{
//	    From:    from,
//	    To:      maileroo.One(to),
//	    Subject: "Welcome",
//	    Plain:   "Thanks for signing up.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Reference ID:", id)
//
// # Recipients
//
// Fields that accept one or more addresses take a [Recipients] value. [One]
// is sent as a single JSON object and [Many] as an array, so the request
// keeps the shape the caller chose.
//
// # Reference IDs
//
// Every message carries a 24-character hex reference id, generated when the
// caller leaves it empty. Keep it to cancel a scheduled message later with
// [Client.DeleteScheduledEmail].
//
// # Errors
//
// A response with "success": false is returned as an [*APIError] carrying
// the server's message. A response that cannot be interpreted matches
// [ErrInvalidState]. Expiry of the per-call timeout returns a
// [*TimeoutError]; cancellation of the caller's context returns an error
// wrapping [context.Canceled]. Requests are never retried.
package maileroo
