package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailpreview/pkg/async"
	"github.com/dmitrymomot/mailpreview/pkg/catalog"
	"github.com/dmitrymomot/mailpreview/pkg/email"
	"github.com/dmitrymomot/mailpreview/pkg/logger"
	"github.com/dmitrymomot/mailpreview/pkg/notifications"
	"github.com/dmitrymomot/mailpreview/pkg/props"
	"github.com/dmitrymomot/mailpreview/pkg/render"
	"github.com/dmitrymomot/mailpreview/pkg/statemachine"
)

// Lister loads the template catalog.
type Lister interface {
	ListAll(ctx context.Context) ([]catalog.Entry, error)
}

// Renderer renders a template with the given props.
type Renderer interface {
	Render(ctx context.Context, key string, props map[string]any) (*render.Result, error)
}

// Sender dispatches a test email.
type Sender interface {
	SendTest(ctx context.Context, req email.TestRequest) (*email.TestResult, error)
}

// Output is one successful render. It is never mutated after creation.
type Output struct {
	Source     string    `json:"source"`
	HTML       string    `json:"html"`
	Text       string    `json:"text"`
	RenderedAt time.Time `json:"rendered_at"`
}

// Session holds one user's preview state: the catalog, the selected entry, the last
// render and whether a test send is running. It is safe for concurrent use; the lock
// is never held across collaborator calls.
type Session struct {
	id       string
	lister   Lister
	renderer Renderer
	sender   Sender
	notifier notifications.Deliverer
	logger   *slog.Logger
	pretty   func(string) string
	now      func() time.Time

	mu         sync.Mutex
	machine    *statemachine.Machine[State, event]
	catalog    []catalog.Entry
	active     *catalog.Entry
	output     *Output
	busy       bool
	generation uint64
}

// New creates a Session in the empty state.
func New(lister Lister, renderer Renderer, sender Sender, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		lister:   lister,
		renderer: renderer,
		sender:   sender,
		notifier: notifications.NoOpDeliverer{},
		logger:   logger.Discard(),
		pretty:   render.Pretty,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("session"), logger.SessionID(s.id))
	s.machine = newMachine(func(ctx context.Context, from, to State, e event) {
		s.logger.DebugContext(ctx, "session transition",
			slog.String("from", string(from)),
			logger.State(string(to)),
			logger.Event(string(e)),
		)
	})
	return s
}

// ID returns the session identifier used to route notifications.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.machine.Current() }

// Catalog returns a copy of the loaded catalog.
func (s *Session) Catalog() []catalog.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.catalog)
}

// Active returns the selected entry, or nil.
func (s *Session) Active() *catalog.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	e := *s.active
	return &e
}

// Output returns the last render for the active entry, or nil when it is stale or missing.
func (s *Session) Output() *Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output
}

// Busy reports whether a test send is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// LoadCatalog fetches the catalog and replaces the current one wholesale.
// A current selection is refreshed from the new catalog. When its template is gone
// the selection and output are cleared, in-flight renders are superseded and the
// session returns to the listed state.
func (s *Session) LoadCatalog(ctx context.Context) error {
	entries, err := s.lister.ListAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load catalog", logger.Error(err))
		s.report(ctx, notifications.TypeError, titleError, messageCatalogFailed)
		return errors.Join(ErrLoadCatalog, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = entries
	if s.active != nil {
		i := indexOf(entries, s.active.Filename)
		if i < 0 {
			s.logger.InfoContext(ctx, "selected template removed", logger.Template(s.active.Filename))
			s.active = nil
			s.output = nil
			s.generation++
			s.fire(ctx, eventDrop)
			s.logger.DebugContext(ctx, "catalog loaded", logger.Count(len(entries)))
			return nil
		}
		e := entries[i]
		s.active = &e
	}
	s.fire(ctx, eventLoad)
	s.logger.DebugContext(ctx, "catalog loaded", logger.Count(len(entries)))
	return nil
}

// Select makes filename the active entry, drops the previous output and starts a
// render with the entry's default props. It returns without waiting for the render.
func (s *Session) Select(ctx context.Context, filename string) (*async.Future[*Output], error) {
	s.mu.Lock()
	i := indexOf(s.catalog, filename)
	if i < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, filename)
	}

	entry := s.catalog[i]
	s.active = &entry
	s.output = nil
	s.generation++
	gen := s.generation
	s.fire(ctx, eventSelect)
	s.mu.Unlock()

	return async.Async(context.WithoutCancel(ctx), entry, func(ctx context.Context, e catalog.Entry) (*Output, error) {
		return s.render(ctx, gen, e, nil)
	}), nil
}

// Render renders the active entry with values, or with its defaults when values is nil.
// On failure the previous output is kept.
func (s *Session) Render(ctx context.Context, values map[string]any) (*Output, error) {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return nil, ErrNoSelection
	}
	entry := *s.active
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	return s.render(ctx, gen, entry, values)
}

func (s *Session) render(ctx context.Context, gen uint64, entry catalog.Entry, values map[string]any) (*Output, error) {
	if values == nil {
		values = props.Defaults(entry.Props)
	}

	res, err := s.callRenderer(ctx, entry.Filename, values)

	var out *Output
	if err == nil && !res.Empty() {
		out = &Output{
			Source:     entry.Content,
			HTML:       s.pretty(res.HTML),
			Text:       res.Text,
			RenderedAt: s.now(),
		}
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "discarding stale render", logger.Template(entry.Filename))
		return nil, ErrSuperseded
	}
	if out == nil {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "render failed", logger.Template(entry.Filename), logger.Error(err))
		s.report(ctx, notifications.TypeError, titleError, messageRenderFailed)
		if err == nil {
			err = errors.New("empty result")
		}
		return nil, errors.Join(ErrRenderFailed, err)
	}
	s.output = out
	s.fire(ctx, eventRender)
	s.mu.Unlock()

	return out, nil
}

// callRenderer turns a renderer panic into an error.
func (s *Session) callRenderer(ctx context.Context, key string, values map[string]any) (res *render.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("renderer panic: %v", r)
		}
	}()
	return s.renderer.Render(ctx, key, values)
}

// SendTest dispatches markup verbatim to the send collaborator and reports the outcome.
// Only one send runs at a time; a concurrent call fails with ErrSendInProgress.
func (s *Session) SendTest(ctx context.Context, to, subject, markup string) (outcome SendOutcome, err error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return OutcomeFailure, ErrSendInProgress
	}
	s.busy = true
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "test send panicked", slog.Any("panic", r))
			s.report(ctx, notifications.TypeError, titleError, messageGenericError)
			outcome, err = OutcomeFailure, fmt.Errorf("%w: panic: %v", ErrSendFailed, r)
		}
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	if strings.TrimSpace(to) == "" || strings.TrimSpace(subject) == "" {
		s.report(ctx, notifications.TypeError, titleError, messageGenericError)
		return OutcomeFailure, fmt.Errorf("%w: recipient and subject are required", ErrSendFailed)
	}

	res, err := s.sender.SendTest(ctx, email.TestRequest{To: to, Subject: subject, HTML: markup})
	if err != nil {
		s.logger.ErrorContext(ctx, "test send failed", logger.Error(err))
		s.report(ctx, notifications.TypeError, titleError, messageGenericError)
		return OutcomeFailure, errors.Join(ErrSendFailed, err)
	}

	switch res.StatusCode {
	case http.StatusOK:
		s.report(ctx, notifications.TypeSuccess, titleSuccess, messageSent)
		return OutcomeSuccess, nil
	case http.StatusTooManyRequests:
		msg := res.Error
		if msg == "" {
			msg = messageRateLimited
		}
		s.report(ctx, notifications.TypeWarning, titleRateLimited, msg)
		return OutcomeRateLimited, nil
	default:
		s.logger.WarnContext(ctx, "test send rejected", logger.Status(res.StatusCode), slog.String("error", res.Error))
		s.report(ctx, notifications.TypeError, titleError, messageGenericError)
		return OutcomeFailure, fmt.Errorf("%w: unexpected status %d", ErrSendFailed, res.StatusCode)
	}
}

func (s *Session) report(ctx context.Context, typ notifications.Type, title, message string) {
	if err := s.notifier.Deliver(ctx, notifications.New(s.id, typ, title, message)); err != nil {
		s.logger.ErrorContext(ctx, "failed to deliver notification", logger.Error(err))
	}
}

func indexOf(entries []catalog.Entry, filename string) int {
	return slices.IndexFunc(entries, func(e catalog.Entry) bool { return e.Filename == filename })
}
