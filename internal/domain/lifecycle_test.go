package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextState(t *testing.T) {
	tests := []struct {
		from   AppointmentState
		op     Transition
		want   AppointmentState
		wantOK bool
	}{
		{StateDraft, TransitionConfirm, StateConfirmed, true},
		{StateConfirmed, TransitionConfirm, StateConfirmed, false},
		{StateDone, TransitionConfirm, StateDone, false},

		{StateConfirmed, TransitionComplete, StateDone, true},
		{StateDraft, TransitionComplete, StateDraft, false},
		{StateCancel, TransitionComplete, StateCancel, false},

		{StateDraft, TransitionCancel, StateCancel, true},
		{StateConfirmed, TransitionCancel, StateCancel, true},
		{StateDone, TransitionCancel, StateDone, false},
		{StateCancel, TransitionCancel, StateCancel, false},

		{StateDraft, TransitionResetToDraft, StateDraft, true},
		{StateConfirmed, TransitionResetToDraft, StateDraft, true},
		{StateDone, TransitionResetToDraft, StateDraft, true},
		{StateCancel, TransitionResetToDraft, StateDraft, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.op), func(t *testing.T) {
			got, ok := NextState(tt.from, tt.op)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransitionNote(t *testing.T) {
	assert.Equal(t, "Appointment confirmed", TransitionNote(TransitionConfirm))
	assert.Equal(t, "Appointment reset to draft", TransitionNote(TransitionResetToDraft))
	assert.Empty(t, TransitionNote(Transition("unknown")))
}

func TestAppointmentState(t *testing.T) {
	assert.True(t, StateDone.IsTerminal())
	assert.True(t, StateCancel.IsTerminal())
	assert.False(t, StateConfirmed.IsTerminal())
	assert.False(t, AppointmentState("pending").IsValid())
}
