package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBookingDraft_ClearAfter(t *testing.T) {
	specialty := uuid.New()
	professional := uuid.New()
	at := time.Now().Add(48 * time.Hour)

	draft := &BookingDraft{
		SpecialtyID:     &specialty,
		ProfessionalID:  &professional,
		ScheduledAt:     &at,
		DurationMinutes: 30,
		Type:            AppointmentTypeOnline,
		Reason:          "checkup",
	}

	draft.ClearAfter(BookingStepProfessional)

	assert.True(t, draft.StepFilled(BookingStepSpecialty))
	assert.True(t, draft.StepFilled(BookingStepProfessional))
	assert.False(t, draft.StepFilled(BookingStepSchedule))
	assert.False(t, draft.StepFilled(BookingStepDetails))
	assert.Empty(t, draft.Reason)
}

func TestStepIndex(t *testing.T) {
	assert.Equal(t, 0, StepIndex(BookingStepSpecialty))
	assert.Equal(t, 4, StepIndex(BookingStepConfirm))
	assert.Equal(t, -1, StepIndex("payment"))
}

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusConfirmed, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusPending, AppointmentStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.want, a.CanTransitionTo(tt.to))
		})
	}
}
