// Package catalog lists email templates together with their editable props.
//
// ListAll reads every key from a file.Storage and, concurrently for all keys, loads the
// source and metadata, runs the type-analysis collaborator and turns the raw parameters
// into prop descriptors with props.Builder. One failing template fails the whole listing
// and cancels the remaining work.
//
//	cat := catalog.New(store, analyzer.New(), catalog.WithLogger(log))
//	entries, err := cat.ListAll(ctx)
//	switch {
//	case errors.Is(err, catalog.ErrNotFound):
//	    // no templates in storage
//	case errors.Is(err, catalog.ErrInternal):
//	    // storage, analysis or malformed default
//	}
//
// Labels are derived from file names: "auth:ResetPassword.tmpl" becomes
// "Auth Reset Password".
package catalog
