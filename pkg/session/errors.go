package session

import "errors"

var (
	// ErrEntryNotFound indicates the filename is not in the loaded catalog
	ErrEntryNotFound = errors.New("session.entry_not_found")

	// ErrNoSelection indicates an operation needs an active entry
	ErrNoSelection = errors.New("session.no_selection")

	// ErrRenderFailed indicates the render collaborator produced no usable output
	ErrRenderFailed = errors.New("session.render_failed")

	// ErrSuperseded indicates a newer select or render made this result stale
	ErrSuperseded = errors.New("session.superseded")

	// ErrSendInProgress indicates another test send is still running
	ErrSendInProgress = errors.New("session.send_in_progress")

	// ErrSendFailed indicates a test send did not reach a successful response
	ErrSendFailed = errors.New("session.send_failed")

	// ErrLoadCatalog indicates the catalog could not be fetched
	ErrLoadCatalog = errors.New("session.load_catalog_failed")
)
