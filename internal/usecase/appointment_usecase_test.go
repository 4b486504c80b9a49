package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type appointmentFixture struct {
	usecase       AppointmentUsecase
	mock          sqlmock.Sqlmock
	appointments  *mockAppointmentRepo
	professionals *mockProfessionalProfileRepo
	notifications *mockNotificationRepo
	reminders     *mockReminderRepo
	audit         *mockAuditService
	stats         *mockStatsCache
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	db, mock := newMockDB(t)
	f := &appointmentFixture{
		mock:          mock,
		appointments:  &mockAppointmentRepo{},
		professionals: &mockProfessionalProfileRepo{},
		notifications: &mockNotificationRepo{},
		reminders:     &mockReminderRepo{},
		audit:         &mockAuditService{},
		stats:         &mockStatsCache{},
	}
	f.usecase = NewAppointmentUsecase(db, quietLogger(), f.appointments, f.professionals,
		f.notifications, f.reminders, f.audit, f.stats, nil)
	return f
}

func activeProfessional(id uuid.UUID) *entity.ProfessionalProfile {
	specialtyID := uuid.New()
	return &entity.ProfessionalProfile{
		UserID:      id,
		SpecialtyID: &specialtyID,
		User:        entity.User{ID: id, FullName: "Dr. Lima", IsActive: true},
	}
}

func TestAppointmentCreate(t *testing.T) {
	f := newAppointmentFixture(t)
	patientID, professionalID := uuid.New(), uuid.New()
	profile := activeProfessional(professionalID)
	f.professionals.FindByUserIDFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.ProfessionalProfile, error) {
		return profile, nil
	}

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	scheduledAt := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Minute)
	resp, err := f.usecase.Create(ctxAs(patientID, entity.RoleIDPatient), &dto.CreateAppointmentRequest{
		ProfessionalID: professionalID.String(),
		ScheduledAt:    scheduledAt,
		Type:           string(entity.AppointmentTypeInPerson),
		Reason:         "check-up",
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.AppointmentStatusPending), resp.Status)
	assert.Equal(t, entity.DefaultAppointmentDuration, resp.DurationMinutes)

	require.Len(t, f.notifications.Created, 1)
	assert.Equal(t, professionalID, f.notifications.Created[0].UserID)

	require.Len(t, f.reminders.Created, 1)
	assert.Equal(t, patientID, f.reminders.Created[0].UserID)
	assert.Equal(t, scheduledAt.Add(-reminderLeadTime), f.reminders.Created[0].RemindAt)

	assert.Equal(t, []string{entity.AuditActionAppointmentCreate}, f.audit.Actions)
	assert.ElementsMatch(t, []uuid.UUID{patientID, professionalID}, f.stats.Invalidated)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAppointmentCreate_SoonSkipsReminder(t *testing.T) {
	f := newAppointmentFixture(t)
	professionalID := uuid.New()
	f.professionals.FindByUserIDFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.ProfessionalProfile, error) {
		return activeProfessional(professionalID), nil
	}

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	_, err := f.usecase.Create(ctxAs(uuid.New(), entity.RoleIDPatient), &dto.CreateAppointmentRequest{
		ProfessionalID: professionalID.String(),
		ScheduledAt:    time.Now().Add(2 * time.Hour),
		Type:           string(entity.AppointmentTypeOnline),
	})
	require.NoError(t, err)
	assert.Empty(t, f.reminders.Created)
}

func TestAppointmentCreate_Rejections(t *testing.T) {
	professionalID := uuid.New()

	tests := []struct {
		name    string
		profile *entity.ProfessionalProfile
		at      time.Time
		wantErr error
	}{
		{name: "in the past", profile: activeProfessional(professionalID), at: time.Now().Add(-time.Hour), wantErr: ErrAppointmentInPast},
		{name: "unknown professional", profile: nil, at: time.Now().Add(time.Hour), wantErr: ErrProfessionalNotFound},
		{
			name: "inactive professional",
			profile: &entity.ProfessionalProfile{
				UserID: professionalID,
				User:   entity.User{ID: professionalID, IsActive: false},
			},
			at:      time.Now().Add(time.Hour),
			wantErr: ErrProfessionalInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture(t)
			f.professionals.FindByUserIDFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.ProfessionalProfile, error) {
				return tt.profile, nil
			}

			_, err := f.usecase.Create(ctxAs(uuid.New(), entity.RoleIDPatient), &dto.CreateAppointmentRequest{
				ProfessionalID: professionalID.String(),
				ScheduledAt:    tt.at,
				Type:           string(entity.AppointmentTypeOnline),
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.notifications.Created)
		})
	}
}

func TestAppointmentGet_NonParticipantForbidden(t *testing.T) {
	f := newAppointmentFixture(t)
	appointment := &entity.Appointment{ID: uuid.New(), PatientID: uuid.New(), ProfessionalID: uuid.New()}
	f.appointments.FindByIDFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
		return appointment, nil
	}

	_, err := f.usecase.Get(ctxAs(uuid.New(), entity.RoleIDPatient), appointment.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	resp, err := f.usecase.Get(ctxAs(uuid.New(), entity.RoleIDAdmin), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, appointment.ID, resp.ID)
}

func TestAppointmentUpdateStatus(t *testing.T) {
	patientID, professionalID := uuid.New(), uuid.New()
	newAppointment := func(status entity.AppointmentStatus) *entity.Appointment {
		return &entity.Appointment{
			ID:             uuid.New(),
			PatientID:      patientID,
			ProfessionalID: professionalID,
			ScheduledAt:    time.Now().Add(48 * time.Hour),
			Status:         status,
		}
	}

	t.Run("professional confirms and patient is notified", func(t *testing.T) {
		f := newAppointmentFixture(t)
		appointment := newAppointment(entity.AppointmentStatusPending)
		f.appointments.FindByIDFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
			return appointment, nil
		}
		var from, to entity.AppointmentStatus
		f.appointments.UpdateStatusFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID, prev, next entity.AppointmentStatus, reason string) (int64, error) {
			from, to = prev, next
			return 1, nil
		}

		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.usecase.UpdateStatus(ctxAs(professionalID, entity.RoleIDProfessional), appointment.ID,
			&dto.UpdateAppointmentStatusRequest{Status: string(entity.AppointmentStatusConfirmed)})
		require.NoError(t, err)
		assert.Equal(t, string(entity.AppointmentStatusConfirmed), resp.Status)
		assert.Equal(t, entity.AppointmentStatusPending, from)
		assert.Equal(t, entity.AppointmentStatusConfirmed, to)

		require.Len(t, f.notifications.Created, 1)
		assert.Equal(t, patientID, f.notifications.Created[0].UserID)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("patient cannot confirm", func(t *testing.T) {
		f := newAppointmentFixture(t)
		appointment := newAppointment(entity.AppointmentStatusPending)
		f.appointments.FindByIDFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
			return appointment, nil
		}
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()

		_, err := f.usecase.UpdateStatus(ctxAs(patientID, entity.RoleIDPatient), appointment.ID,
			&dto.UpdateAppointmentStatusRequest{Status: string(entity.AppointmentStatusConfirmed)})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		f := newAppointmentFixture(t)
		appointment := newAppointment(entity.AppointmentStatusCompleted)
		f.appointments.FindByIDFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
			return appointment, nil
		}
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()

		_, err := f.usecase.UpdateStatus(ctxAs(patientID, entity.RoleIDPatient), appointment.ID,
			&dto.UpdateAppointmentStatusRequest{Status: string(entity.AppointmentStatusCancelled)})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("lost race", func(t *testing.T) {
		f := newAppointmentFixture(t)
		appointment := newAppointment(entity.AppointmentStatusConfirmed)
		f.appointments.FindByIDFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
			return appointment, nil
		}
		f.appointments.UpdateStatusFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus, reason string) (int64, error) {
			return 0, nil
		}
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()

		_, err := f.usecase.UpdateStatus(ctxAs(professionalID, entity.RoleIDProfessional), appointment.ID,
			&dto.UpdateAppointmentStatusRequest{Status: string(entity.AppointmentStatusCompleted)})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, f.notifications.Created)
	})
}

func TestAppointmentList_ScopesToActor(t *testing.T) {
	f := newAppointmentFixture(t)
	professionalID := uuid.New()

	var got *entity.AppointmentFilter
	f.appointments.FindAllFn = func(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
		got = filter
		return nil, 0, nil
	}

	_, _, err := f.usecase.List(ctxAs(professionalID, entity.RoleIDProfessional), &dto.AppointmentListQuery{
		Statuses: []string{"pending"},
		Limit:    500,
	})
	require.NoError(t, err)
	require.NotNil(t, got.ProfessionalID)
	assert.Equal(t, professionalID, *got.ProfessionalID)
	assert.Nil(t, got.PatientID)
	assert.Equal(t, maxPageLimit, got.Limit)

	_, _, err = f.usecase.List(ctxAs(professionalID, entity.RoleIDProfessional), &dto.AppointmentListQuery{
		Statuses: []string{"archived"},
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAppointmentUpdate(t *testing.T) {
	patientID, professionalID := uuid.New(), uuid.New()
	newAppointment := func(status entity.AppointmentStatus) *entity.Appointment {
		return &entity.Appointment{
			ID:             uuid.New(),
			PatientID:      patientID,
			ProfessionalID: professionalID,
			ScheduledAt:    time.Now().Add(48 * time.Hour).UTC().Truncate(time.Minute),
			Status:         status,
		}
	}
	past := time.Now().Add(-time.Hour)
	later := time.Now().Add(96 * time.Hour)

	tests := []struct {
		name    string
		status  entity.AppointmentStatus
		caller  uuid.UUID
		req     *dto.UpdateAppointmentRequest
		wantErr error
	}{
		{name: "completed is frozen", status: entity.AppointmentStatusCompleted, caller: patientID,
			req: &dto.UpdateAppointmentRequest{ScheduledAt: &later}, wantErr: ErrAppointmentNotEditable},
		{name: "cancelled is frozen", status: entity.AppointmentStatusCancelled, caller: professionalID,
			req: &dto.UpdateAppointmentRequest{Notes: strPtr("bring exams")}, wantErr: ErrAppointmentNotEditable},
		{name: "reschedule into the past", status: entity.AppointmentStatusConfirmed, caller: patientID,
			req: &dto.UpdateAppointmentRequest{ScheduledAt: &past}, wantErr: ErrAppointmentInPast},
		{name: "outsider", status: entity.AppointmentStatusPending, caller: uuid.New(),
			req: &dto.UpdateAppointmentRequest{Notes: strPtr("x")}, wantErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture(t)
			appointment := newAppointment(tt.status)
			f.appointments.FindByIDFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
				return appointment, nil
			}
			f.mock.ExpectBegin()
			f.mock.ExpectRollback()

			_, err := f.usecase.Update(ctxAs(tt.caller, entity.RoleIDPatient), appointment.ID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.audit.Actions)
			assert.Empty(t, f.reminders.Updated)
			assert.NoError(t, f.mock.ExpectationsWereMet())
		})
	}
}

func TestAppointmentUpdate_RescheduleMovesReminders(t *testing.T) {
	f := newAppointmentFixture(t)
	patientID := uuid.New()
	oldAt := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Minute)
	newAt := oldAt.Add(72 * time.Hour)
	appointment := &entity.Appointment{
		ID:             uuid.New(),
		PatientID:      patientID,
		ProfessionalID: uuid.New(),
		ScheduledAt:    oldAt,
		Status:         entity.AppointmentStatusConfirmed,
	}
	f.appointments.FindByIDFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
		return appointment, nil
	}
	f.reminders.FindUnsentByAppointmentIDFn = func(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) ([]entity.Reminder, error) {
		assert.Equal(t, appointment.ID, appointmentID)
		return []entity.Reminder{
			{ID: uuid.New(), UserID: patientID, Title: appointmentReminderTitle,
				Description: appointmentReminderText(oldAt), RemindAt: oldAt.Add(-reminderLeadTime)},
			{ID: uuid.New(), UserID: patientID, Title: "Fast from midnight",
				Description: "No food after 00:00", RemindAt: oldAt.Add(-10 * time.Hour)},
		}, nil
	}

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	_, err := f.usecase.Update(ctxAs(patientID, entity.RoleIDPatient), appointment.ID,
		&dto.UpdateAppointmentRequest{ScheduledAt: &newAt})
	require.NoError(t, err)

	require.Len(t, f.reminders.Updated, 2)
	assert.Equal(t, newAt.Add(-reminderLeadTime), f.reminders.Updated[0].RemindAt)
	assert.Equal(t, appointmentReminderText(newAt), f.reminders.Updated[0].Description)
	assert.Equal(t, newAt.Add(-10*time.Hour), f.reminders.Updated[1].RemindAt)
	assert.Equal(t, "No food after 00:00", f.reminders.Updated[1].Description)
	assert.Equal(t, []string{entity.AuditActionAppointmentUpdate}, f.audit.Actions)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAppointmentUpdate_SameTimeKeepsReminders(t *testing.T) {
	f := newAppointmentFixture(t)
	patientID := uuid.New()
	appointment := &entity.Appointment{
		ID:          uuid.New(),
		PatientID:   patientID,
		ScheduledAt: time.Now().Add(48 * time.Hour),
		Status:      entity.AppointmentStatusPending,
	}
	f.appointments.FindByIDFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
		return appointment, nil
	}
	f.reminders.FindUnsentByAppointmentIDFn = func(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) ([]entity.Reminder, error) {
		t.Fatal("reminders looked up without a reschedule")
		return nil, nil
	}

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	_, err := f.usecase.Update(ctxAs(patientID, entity.RoleIDPatient), appointment.ID,
		&dto.UpdateAppointmentRequest{Reason: strPtr("follow-up")})
	require.NoError(t, err)
	assert.Equal(t, "follow-up", appointment.Reason)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAppointmentUpdateStatus_CancelDropsReminders(t *testing.T) {
	f := newAppointmentFixture(t)
	patientID := uuid.New()
	appointment := &entity.Appointment{
		ID:             uuid.New(),
		PatientID:      patientID,
		ProfessionalID: uuid.New(),
		ScheduledAt:    time.Now().Add(48 * time.Hour),
		Status:         entity.AppointmentStatusConfirmed,
	}
	f.appointments.FindByIDFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
		return appointment, nil
	}

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.usecase.UpdateStatus(ctxAs(patientID, entity.RoleIDPatient), appointment.ID,
		&dto.UpdateAppointmentStatusRequest{Status: string(entity.AppointmentStatusCancelled), CancelReason: "travel"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCancelled), resp.Status)
	assert.Equal(t, []uuid.UUID{appointment.ID}, f.reminders.DeletedForAppts)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAppointmentDelete(t *testing.T) {
	t.Run("admin delete is audited", func(t *testing.T) {
		f := newAppointmentFixture(t)
		appointment := &entity.Appointment{ID: uuid.New(), PatientID: uuid.New(), ProfessionalID: uuid.New()}
		f.appointments.FindByIDFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
			return appointment, nil
		}
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		require.NoError(t, f.usecase.Delete(ctxAs(uuid.New(), entity.RoleIDAdmin), appointment.ID))
		assert.Equal(t, []string{entity.AuditActionAppointmentDelete}, f.audit.Actions)
		assert.ElementsMatch(t, []uuid.UUID{appointment.PatientID, appointment.ProfessionalID}, f.stats.Invalidated)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("audit failure does not abort", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.audit.Err = errors.New("audit table locked")
		appointment := &entity.Appointment{ID: uuid.New(), PatientID: uuid.New(), ProfessionalID: uuid.New()}
		f.appointments.FindByIDFn = func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
			return appointment, nil
		}
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		require.NoError(t, f.usecase.Delete(ctxAs(uuid.New(), entity.RoleIDAdmin), appointment.ID))
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()

		err := f.usecase.Delete(ctxAs(uuid.New(), entity.RoleIDAdmin), uuid.New())
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
		assert.Empty(t, f.audit.Actions)
	})
}

func TestAppointmentUpcoming_IncludesCompleted(t *testing.T) {
	f := newAppointmentFixture(t)
	patientID := uuid.New()

	var got *entity.AppointmentFilter
	f.appointments.FindAllFn = func(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
		got = filter
		return nil, 0, nil
	}

	_, err := f.usecase.Upcoming(ctxAs(patientID, entity.RoleIDPatient), 5)
	require.NoError(t, err)
	require.NotNil(t, got.From)
	assert.ElementsMatch(t, []entity.AppointmentStatus{
		entity.AppointmentStatusPending,
		entity.AppointmentStatusConfirmed,
		entity.AppointmentStatusCompleted,
	}, got.Statuses)
	assert.NotContains(t, got.Statuses, entity.AppointmentStatusCancelled)
	assert.Equal(t, 5, got.Limit)
}
