package usecase

import (
	"context"
	"errors"

	"medconnect/internal/converter"
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"
	"medconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientUsecase interface {
	GetMe(ctx context.Context) (*dto.PatientResponse, error)
	UpdateMe(ctx context.Context, req *dto.UpdatePatientProfileRequest) (*dto.PatientResponse, error)
	List(ctx context.Context, page, limit int) ([]dto.PatientResponse, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:                 db,
		log:                log,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

func (u *patientUsecase) GetMe(ctx context.Context) (*dto.PatientResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return u.Get(ctx, a.ID)
}

func (u *patientUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	profile, err := u.findProfile(ctx, u.db, id)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(profile), nil
}

func (u *patientUsecase) findProfile(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.PatientProfile, error) {
	profile, err := u.patientProfileRepo.FindByUserID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}
	return profile, nil
}

func (u *patientUsecase) List(ctx context.Context, page, limit int) ([]dto.PatientResponse, int64, error) {
	page, limit = NormalizePage(page, limit)

	profiles, total, err := u.patientProfileRepo.FindAll(ctx, u.db, limit, (page-1)*limit)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, 0, err
	}
	return converter.PatientsToResponses(profiles), total, nil
}

func (u *patientUsecase) UpdateMe(ctx context.Context, req *dto.UpdatePatientProfileRequest) (*dto.PatientResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.findProfile(ctx, tx, a.ID)
	if err != nil {
		return nil, err
	}
	old := *converter.PatientProfileToResponse(profile)

	if req.DateOfBirth != nil {
		dob, err := parseOptionalDate(*req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		profile.DateOfBirth = dob
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.BloodType != nil {
		profile.BloodType = *req.BloodType
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.EmergencyContact != nil {
		profile.EmergencyContact = *req.EmergencyContact
	}
	if req.Allergies != nil {
		profile.Allergies = *req.Allergies
	}

	if err := u.patientProfileRepo.Update(ctx, tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &a.ID, entity.AuditActionUserUpdate, "patient_profile", a.ID.String(),
		old, converter.PatientProfileToResponse(profile)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(profile), nil
}
