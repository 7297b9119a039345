// Package notifications reports outcomes to the user as short toasts.
//
// A Notification carries a severity, a title and a message. Deliverers route it:
// LogDeliverer writes it to a structured logger, BroadcastDeliverer fans it out to
// live subscribers of the same session (the HTTP event stream), and MultiDeliverer
// combines several channels on a best-effort basis.
//
//	d := notifications.NewMultiDeliverer([]notifications.Deliverer{
//	    notifications.NewLogDeliverer(log),
//	    stream,
//	})
//	_ = d.Deliver(ctx, notifications.New(sessionID, notifications.TypeSuccess, "Success", "Email sent successfully."))
package notifications
