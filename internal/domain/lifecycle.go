package domain

// Transition is an operation that moves an appointment between states
type Transition string

const (
	TransitionConfirm      Transition = "confirm"
	TransitionComplete     Transition = "complete"
	TransitionCancel       Transition = "cancel"
	TransitionResetToDraft Transition = "reset_to_draft"
)

// Timeline notes posted with each state change
const (
	NoteCreated   = "Appointment created for %s"
	NoteConfirmed = "Appointment confirmed"
	NoteCompleted = "Appointment completed"
	NoteCancelled = "Appointment cancelled"
	NoteReset     = "Appointment reset to draft"

	NoteCancelledByCustomer = "Cancelled by customer via portal."
)

// NextState returns the target state of transition t from cur.
// ok is false when the transition is not legal from cur; callers treat that as a no-op.
//
//	draft     --confirm-->  confirmed
//	confirmed --complete--> done
//	draft, confirmed --cancel--> cancel
//	any       --reset-->    draft
func NextState(cur AppointmentState, t Transition) (next AppointmentState, ok bool) {
	switch t {
	case TransitionConfirm:
		if cur == StateDraft {
			return StateConfirmed, true
		}
	case TransitionComplete:
		if cur == StateConfirmed {
			return StateDone, true
		}
	case TransitionCancel:
		if cur == StateDraft || cur == StateConfirmed {
			return StateCancel, true
		}
	case TransitionResetToDraft:
		if cur.IsValid() {
			return StateDraft, true
		}
	}
	return cur, false
}

// TransitionNote returns the timeline note for a transition
func TransitionNote(t Transition) string {
	switch t {
	case TransitionConfirm:
		return NoteConfirmed
	case TransitionComplete:
		return NoteCompleted
	case TransitionCancel:
		return NoteCancelled
	case TransitionResetToDraft:
		return NoteReset
	}
	return ""
}
