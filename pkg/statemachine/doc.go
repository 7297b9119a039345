// Package statemachine is a small generic finite state machine.
//
// States and events are any comparable types, usually string-based enums:
//
//	type State string
//	type Event string
//
//	m := statemachine.MustNew[State, Event]("idle",
//	    statemachine.WithTransition[State, Event]("idle", "running", "start"),
//	    statemachine.WithTransitionFrom[State, Event]([]State{"idle", "running"}, "stopped", "stop"),
//	)
//	err := m.Fire(ctx, "start", nil)
//
// Guards veto a transition, actions run before the state changes and may abort it,
// observers run after it. Fire returns *NoTransitionError when nothing is defined
// for the current state and event, and *RejectedError when every guard rejected it.
//
// Machine is safe for concurrent use.
package statemachine
