package session

import (
	"context"

	"github.com/dmitrymomot/mailpreview/pkg/logger"
	"github.com/dmitrymomot/mailpreview/pkg/statemachine"
)

// State is the lifecycle stage of a Session.
type State string

const (
	StateEmpty    State = "empty"
	StateListed   State = "listed"
	StateSelected State = "selected"
	StateRendered State = "rendered"
)

type event string

const (
	eventLoad   event = "load"
	eventSelect event = "select"
	eventRender event = "render"
	eventDrop   event = "drop"
)

func newMachine(observer statemachine.Observer[State, event]) *statemachine.Machine[State, event] {
	return statemachine.MustNew(StateEmpty,
		statemachine.WithTransitionFrom([]State{StateEmpty, StateListed}, StateListed, eventLoad),
		// a refresh keeps the current selection
		statemachine.WithTransition(StateSelected, StateSelected, eventLoad),
		statemachine.WithTransition(StateRendered, StateRendered, eventLoad),
		statemachine.WithTransitionFrom([]State{StateListed, StateSelected, StateRendered}, StateSelected, eventSelect),
		statemachine.WithTransitionFrom([]State{StateSelected, StateRendered}, StateRendered, eventRender),
		// the selected template disappeared from a refreshed catalog
		statemachine.WithTransitionFrom([]State{StateSelected, StateRendered}, StateListed, eventDrop),
		statemachine.WithObserver(observer),
	)
}

// fire must be called with the session lock held, after the event's preconditions were checked.
func (s *Session) fire(ctx context.Context, e event) {
	if err := s.machine.Fire(ctx, e, nil); err != nil {
		s.logger.ErrorContext(ctx, "unexpected session transition", logger.Event(string(e)), logger.Error(err))
	}
}
