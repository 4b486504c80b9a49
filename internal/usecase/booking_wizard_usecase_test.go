package usecase

import (
	"context"
	"testing"
	"time"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var _ AppointmentUsecase = (*fakeAppointmentUsecase)(nil)

// fakeAppointmentUsecase only implements Create; the wizard needs nothing else.
type fakeAppointmentUsecase struct {
	AppointmentUsecase
	created []*dto.CreateAppointmentRequest
}

func (f *fakeAppointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	f.created = append(f.created, req)
	return &dto.AppointmentResponse{ID: uuid.New(), Status: string(entity.AppointmentStatusPending)}, nil
}

type wizardFixture struct {
	usecase      BookingWizardUsecase
	drafts       service.BookingDraftStore
	appointments *fakeAppointmentUsecase
	specialtyID  uuid.UUID
	professional *entity.ProfessionalProfile
}

func newWizardFixture(t *testing.T) *wizardFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	db, _ := newMockDB(t)
	f := &wizardFixture{
		drafts:       service.NewBookingDraftStore(client, time.Hour),
		appointments: &fakeAppointmentUsecase{},
		specialtyID:  uuid.New(),
	}
	f.professional = activeProfessional(uuid.New())
	f.professional.SpecialtyID = &f.specialtyID

	specialties := &mockSpecialtyRepo{
		FindByIDFn: func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Specialty, error) {
			return &entity.Specialty{ID: id, Name: "Cardiology"}, nil
		},
	}
	professionals := &mockProfessionalProfileRepo{
		FindByUserIDFn: func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.ProfessionalProfile, error) {
			if id == f.professional.UserID {
				return f.professional, nil
			}
			return nil, nil
		},
	}
	f.usecase = NewBookingWizardUsecase(db, quietLogger(), f.drafts, specialties, professionals, f.appointments)
	return f
}

func TestBookingWizard_FullFlow(t *testing.T) {
	f := newWizardFixture(t)
	patientID := uuid.New()
	ctx := ctxAs(patientID, entity.RoleIDPatient)
	scheduledAt := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Minute)

	draft, err := f.usecase.SaveStep(ctx, "specialty", &dto.BookingStepRequest{SpecialtyID: f.specialtyID.String()})
	require.NoError(t, err)
	assert.Equal(t, "specialty", draft.CurrentStep)

	_, err = f.usecase.SaveStep(ctx, "professional", &dto.BookingStepRequest{ProfessionalID: f.professional.UserID.String()})
	require.NoError(t, err)
	_, err = f.usecase.SaveStep(ctx, "schedule", &dto.BookingStepRequest{ScheduledAt: &scheduledAt, DurationMinutes: 45})
	require.NoError(t, err)
	draft, err = f.usecase.SaveStep(ctx, "details", &dto.BookingStepRequest{Type: "online", Reason: "follow-up"})
	require.NoError(t, err)
	assert.Equal(t, "details", draft.CurrentStep)
	assert.Equal(t, "confirm", draft.NextStep)

	appointment, err := f.usecase.Confirm(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, appointment.ID)

	require.Len(t, f.appointments.created, 1)
	req := f.appointments.created[0]
	assert.Equal(t, f.professional.UserID.String(), req.ProfessionalID)
	assert.Equal(t, f.specialtyID.String(), req.SpecialtyID)
	assert.Equal(t, 45, req.DurationMinutes)
	assert.Equal(t, "online", req.Type)
	assert.True(t, scheduledAt.Equal(req.ScheduledAt))

	_, err = f.usecase.GetDraft(ctx)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestBookingWizard_StepOrder(t *testing.T) {
	f := newWizardFixture(t)
	ctx := ctxAs(uuid.New(), entity.RoleIDPatient)
	at := time.Now().Add(time.Hour)

	_, err := f.usecase.SaveStep(ctx, "schedule", &dto.BookingStepRequest{ScheduledAt: &at})
	assert.ErrorIs(t, err, ErrStepOutOfOrder)

	_, err = f.usecase.SaveStep(ctx, "confirm", &dto.BookingStepRequest{})
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = f.usecase.SaveStep(ctx, "payment", &dto.BookingStepRequest{})
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = f.usecase.SaveStep(ctx, "specialty", &dto.BookingStepRequest{})
	assert.ErrorIs(t, err, ErrStepIncomplete)

	_, err = f.usecase.Confirm(ctx)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestBookingWizard_ChangingEarlierStepClearsLaterOnes(t *testing.T) {
	f := newWizardFixture(t)
	ctx := ctxAs(uuid.New(), entity.RoleIDPatient)

	_, err := f.usecase.SaveStep(ctx, "specialty", &dto.BookingStepRequest{SpecialtyID: f.specialtyID.String()})
	require.NoError(t, err)
	_, err = f.usecase.SaveStep(ctx, "professional", &dto.BookingStepRequest{ProfessionalID: f.professional.UserID.String()})
	require.NoError(t, err)

	// same value again keeps the progress
	draft, err := f.usecase.SaveStep(ctx, "specialty", &dto.BookingStepRequest{SpecialtyID: f.specialtyID.String()})
	require.NoError(t, err)
	assert.NotNil(t, draft.ProfessionalID)
	assert.Equal(t, "professional", draft.CurrentStep)

	draft, err = f.usecase.SaveStep(ctx, "specialty", &dto.BookingStepRequest{SpecialtyID: uuid.New().String()})
	require.NoError(t, err)
	assert.Nil(t, draft.ProfessionalID)
	assert.Equal(t, "specialty", draft.CurrentStep)

	_, err = f.usecase.Confirm(ctx)
	assert.ErrorIs(t, err, ErrStepOutOfOrder)
}

func TestBookingWizard_ProfessionalMustMatchSpecialty(t *testing.T) {
	f := newWizardFixture(t)
	ctx := ctxAs(uuid.New(), entity.RoleIDPatient)

	_, err := f.usecase.SaveStep(ctx, "specialty", &dto.BookingStepRequest{SpecialtyID: uuid.New().String()})
	require.NoError(t, err)

	_, err = f.usecase.SaveStep(ctx, "professional", &dto.BookingStepRequest{ProfessionalID: f.professional.UserID.String()})
	assert.ErrorIs(t, err, ErrProfessionalSpecialty)

	_, err = f.usecase.SaveStep(ctx, "professional", &dto.BookingStepRequest{ProfessionalID: uuid.New().String()})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}
