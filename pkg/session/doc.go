// Package session implements the preview session: the state a user builds up while
// browsing templates, editing props and sending test emails.
//
// A Session moves through four states:
//
//	empty ──load──► listed ──select──► selected ──render──► rendered
//	                   ▲                  ▲   │                │
//	                   └─load─┘           └───┴──select────────┘
//
// LoadCatalog replaces the catalog. Select picks an entry, clears the previous output
// and starts a render with the entry's default props without waiting for it. Render
// re-renders the active entry with edited props. Every select and render takes a new
// generation number; a result whose generation is no longer the newest is discarded
// with ErrSuperseded, so a slow render can never overwrite a newer one.
//
// SendTest posts the rendered markup to the send collaborator. At most one send runs
// at a time, Busy reports it, and the flag is cleared on every exit path including
// panics. Outcomes are reported through a notifications.Deliverer:
//
//	s := session.New(catalog, engine, email.NewTestClient(url),
//	    session.WithNotifier(deliverer),
//	    session.WithLogger(log),
//	)
//	if err := s.LoadCatalog(ctx); err != nil {
//	    return err
//	}
//	f, err := s.Select(ctx, "welcome.tmpl")
//	if err != nil {
//	    return err
//	}
//	out, err := f.Await()
package session
