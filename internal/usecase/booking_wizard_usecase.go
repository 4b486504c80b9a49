package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medconnect/internal/converter"
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"
	"medconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDraftNotFound         = errors.New("booking draft not found")
	ErrInvalidStep           = errors.New("unknown booking step")
	ErrStepOutOfOrder        = errors.New("complete the previous booking steps first")
	ErrStepIncomplete        = errors.New("required fields for this booking step are missing")
	ErrProfessionalSpecialty = errors.New("professional does not practise the selected specialty")
)

// BookingWizardUsecase keeps the multi-step booking form server-side and turns
// a completed draft into an appointment.
type BookingWizardUsecase interface {
	GetDraft(ctx context.Context) (*dto.BookingDraftResponse, error)
	SaveStep(ctx context.Context, step string, req *dto.BookingStepRequest) (*dto.BookingDraftResponse, error)
	Confirm(ctx context.Context) (*dto.AppointmentResponse, error)
	Discard(ctx context.Context) error
}

type bookingWizardUsecase struct {
	db                      *gorm.DB
	log                     *logrus.Logger
	draftStore              service.BookingDraftStore
	specialtyRepo           repository.SpecialtyRepository
	professionalProfileRepo repository.ProfessionalProfileRepository
	appointmentUsecase      AppointmentUsecase
}

func NewBookingWizardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	draftStore service.BookingDraftStore,
	specialtyRepo repository.SpecialtyRepository,
	professionalProfileRepo repository.ProfessionalProfileRepository,
	appointmentUsecase AppointmentUsecase,
) BookingWizardUsecase {
	return &bookingWizardUsecase{
		db:                      db,
		log:                     log,
		draftStore:              draftStore,
		specialtyRepo:           specialtyRepo,
		professionalProfileRepo: professionalProfileRepo,
		appointmentUsecase:      appointmentUsecase,
	}
}

func (u *bookingWizardUsecase) GetDraft(ctx context.Context) (*dto.BookingDraftResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	draft, err := u.draftStore.Get(ctx, a.ID)
	if err != nil {
		u.log.Warnf("Failed to load booking draft: %+v", err)
		return nil, err
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}
	return converter.BookingDraftToResponse(draft), nil
}

// SaveStep stores the fields of one step. Every earlier step must already be
// filled; changing a step that was filled before clears the steps after it.
func (u *bookingWizardUsecase) SaveStep(ctx context.Context, step string, req *dto.BookingStepRequest) (*dto.BookingDraftResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	bookingStep := entity.BookingStep(step)
	idx := entity.StepIndex(bookingStep)
	if idx < 0 || bookingStep == entity.BookingStepConfirm {
		return nil, ErrInvalidStep
	}

	draft, err := u.draftStore.Get(ctx, a.ID)
	if err != nil {
		u.log.Warnf("Failed to load booking draft: %+v", err)
		return nil, err
	}
	if draft == nil {
		draft = &entity.BookingDraft{PatientID: a.ID, CurrentStep: entity.BookingStepSpecialty}
	}

	for _, earlier := range entity.BookingSteps[:idx] {
		if !draft.StepFilled(earlier) {
			return nil, ErrStepOutOfOrder
		}
	}

	wasFilled := draft.StepFilled(bookingStep)
	before := stepSignature(draft, bookingStep)

	if err := u.applyStep(ctx, draft, bookingStep, req); err != nil {
		return nil, err
	}

	if wasFilled && before != stepSignature(draft, bookingStep) {
		draft.ClearAfter(bookingStep)
		draft.CurrentStep = bookingStep
	} else if idx >= entity.StepIndex(draft.CurrentStep) {
		draft.CurrentStep = bookingStep
	}

	if err := u.draftStore.Save(ctx, draft); err != nil {
		u.log.Warnf("Failed to save booking draft: %+v", err)
		return nil, err
	}
	return converter.BookingDraftToResponse(draft), nil
}

func (u *bookingWizardUsecase) applyStep(ctx context.Context, draft *entity.BookingDraft, step entity.BookingStep, req *dto.BookingStepRequest) error {
	switch step {
	case entity.BookingStepSpecialty:
		specialtyID, err := parseOptionalUUID(req.SpecialtyID)
		if err != nil {
			return err
		}
		if specialtyID == nil {
			return ErrStepIncomplete
		}
		specialty, err := u.specialtyRepo.FindByID(ctx, u.db, *specialtyID)
		if err != nil {
			u.log.Warnf("Failed to find specialty %s: %+v", *specialtyID, err)
			return err
		}
		if specialty == nil {
			return ErrSpecialtyNotFound
		}
		draft.SpecialtyID = specialtyID

	case entity.BookingStepProfessional:
		professionalID, err := parseOptionalUUID(req.ProfessionalID)
		if err != nil {
			return err
		}
		if professionalID == nil {
			return ErrStepIncomplete
		}
		hospitalID, err := parseOptionalUUID(req.HospitalID)
		if err != nil {
			return err
		}
		profile, err := u.professionalProfileRepo.FindByUserID(ctx, u.db, *professionalID)
		if err != nil {
			u.log.Warnf("Failed to find professional %s: %+v", *professionalID, err)
			return err
		}
		if profile == nil {
			return ErrProfessionalNotFound
		}
		if !profile.User.IsActive {
			return ErrProfessionalInactive
		}
		if profile.SpecialtyID != nil && draft.SpecialtyID != nil && *profile.SpecialtyID != *draft.SpecialtyID {
			return ErrProfessionalSpecialty
		}
		if hospitalID == nil {
			hospitalID = profile.HospitalID
		}
		draft.ProfessionalID = professionalID
		draft.HospitalID = hospitalID

	case entity.BookingStepSchedule:
		if req.ScheduledAt == nil {
			return ErrStepIncomplete
		}
		scheduledAt := req.ScheduledAt.UTC()
		if !scheduledAt.After(time.Now().UTC()) {
			return ErrAppointmentInPast
		}
		duration := req.DurationMinutes
		if duration == 0 {
			duration = entity.DefaultAppointmentDuration
		}
		draft.ScheduledAt = &scheduledAt
		draft.DurationMinutes = duration

	case entity.BookingStepDetails:
		if req.Type == "" {
			return ErrStepIncomplete
		}
		draft.Type = entity.AppointmentType(req.Type)
		draft.Reason = req.Reason
		draft.Notes = req.Notes
	}
	return nil
}

// stepSignature renders the fields of step so a change can be detected.
func stepSignature(d *entity.BookingDraft, step entity.BookingStep) string {
	switch step {
	case entity.BookingStepSpecialty:
		return uuidString(d.SpecialtyID)
	case entity.BookingStepProfessional:
		return uuidString(d.ProfessionalID) + "|" + uuidString(d.HospitalID)
	case entity.BookingStepSchedule:
		if d.ScheduledAt == nil {
			return ""
		}
		return fmt.Sprintf("%s|%d", d.ScheduledAt.Format(time.RFC3339), d.DurationMinutes)
	case entity.BookingStepDetails:
		return string(d.Type) + "|" + d.Reason + "|" + d.Notes
	}
	return ""
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

// Confirm books the drafted appointment and removes the draft.
func (u *bookingWizardUsecase) Confirm(ctx context.Context) (*dto.AppointmentResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	draft, err := u.draftStore.Get(ctx, a.ID)
	if err != nil {
		u.log.Warnf("Failed to load booking draft: %+v", err)
		return nil, err
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}
	for _, step := range entity.BookingSteps[:entity.StepIndex(entity.BookingStepConfirm)] {
		if !draft.StepFilled(step) {
			return nil, ErrStepOutOfOrder
		}
	}

	appointment, err := u.appointmentUsecase.Create(ctx, &dto.CreateAppointmentRequest{
		ProfessionalID:  draft.ProfessionalID.String(),
		HospitalID:      uuidString(draft.HospitalID),
		SpecialtyID:     uuidString(draft.SpecialtyID),
		ScheduledAt:     *draft.ScheduledAt,
		DurationMinutes: draft.DurationMinutes,
		Type:            string(draft.Type),
		Reason:          draft.Reason,
		Notes:           draft.Notes,
	})
	if err != nil {
		return nil, err
	}

	if err := u.draftStore.Delete(ctx, a.ID); err != nil {
		u.log.Warnf("Failed to delete confirmed booking draft: %+v", err)
	}
	return appointment, nil
}

func (u *bookingWizardUsecase) Discard(ctx context.Context) error {
	a, err := actorFromContext(ctx)
	if err != nil {
		return err
	}
	return u.draftStore.Delete(ctx, a.ID)
}
