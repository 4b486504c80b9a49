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

var ErrProfessionalNotFound = errors.New("professional not found")

type ProfessionalUsecase interface {
	List(ctx context.Context, query *dto.ProfessionalListQuery) ([]dto.ProfessionalResponse, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProfessionalResponse, error)
	UpdateMe(ctx context.Context, req *dto.UpdateProfessionalProfileRequest) (*dto.ProfessionalResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateProfessionalStatusRequest) (*dto.ProfessionalResponse, error)
}

type professionalUsecase struct {
	db                      *gorm.DB
	log                     *logrus.Logger
	userRepo                repository.UserRepository
	professionalProfileRepo repository.ProfessionalProfileRepository
	specialtyRepo           repository.SpecialtyRepository
	hospitalRepo            repository.HospitalRepository
	reviewRepo              repository.ReviewRepository
	tokenStore              service.TokenStore
	auditService            service.AuditService
}

func NewProfessionalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	professionalProfileRepo repository.ProfessionalProfileRepository,
	specialtyRepo repository.SpecialtyRepository,
	hospitalRepo repository.HospitalRepository,
	reviewRepo repository.ReviewRepository,
	tokenStore service.TokenStore,
	auditService service.AuditService,
) ProfessionalUsecase {
	return &professionalUsecase{
		db:                      db,
		log:                     log,
		userRepo:                userRepo,
		professionalProfileRepo: professionalProfileRepo,
		specialtyRepo:           specialtyRepo,
		hospitalRepo:            hospitalRepo,
		reviewRepo:              reviewRepo,
		tokenStore:              tokenStore,
		auditService:            auditService,
	}
}

// List returns active professionals with their rating summaries attached.
func (u *professionalUsecase) List(ctx context.Context, query *dto.ProfessionalListQuery) ([]dto.ProfessionalResponse, int64, error) {
	page, limit := NormalizePage(query.Page, query.Limit)

	profiles, total, err := u.professionalProfileRepo.FindAll(ctx, u.db, &entity.ProfessionalFilter{
		SpecialtyID: query.SpecialtyID,
		HospitalID:  query.HospitalID,
		Name:        query.Name,
		OnlyActive:  true,
		Limit:       limit,
		Offset:      (page - 1) * limit,
	})
	if err != nil {
		u.log.Warnf("Failed to list professionals: %+v", err)
		return nil, 0, err
	}

	ids := make([]uuid.UUID, len(profiles))
	for i := range profiles {
		ids[i] = profiles[i].UserID
	}
	ratings, err := u.reviewRepo.RatingSummaries(ctx, u.db, ids)
	if err != nil {
		u.log.Warnf("Failed to load rating summaries: %+v", err)
		return nil, 0, err
	}

	return converter.ProfessionalsToResponses(profiles, ratings), total, nil
}

func (u *professionalUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.ProfessionalResponse, error) {
	profile, err := u.findProfile(ctx, u.db, id)
	if err != nil {
		return nil, err
	}
	return u.withRating(ctx, profile)
}

func (u *professionalUsecase) findProfile(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.ProfessionalProfile, error) {
	profile, err := u.professionalProfileRepo.FindByUserID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", id, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfessionalNotFound
	}
	return profile, nil
}

func (u *professionalUsecase) withRating(ctx context.Context, profile *entity.ProfessionalProfile) (*dto.ProfessionalResponse, error) {
	ratings, err := u.reviewRepo.RatingSummaries(ctx, u.db, []uuid.UUID{profile.UserID})
	if err != nil {
		u.log.Warnf("Failed to load rating summary: %+v", err)
		return nil, err
	}
	var rating *entity.RatingSummary
	if r, ok := ratings[profile.UserID]; ok {
		rating = &r
	}
	return converter.ProfessionalToResponse(profile, rating), nil
}

func (u *professionalUsecase) UpdateMe(ctx context.Context, req *dto.UpdateProfessionalProfileRequest) (*dto.ProfessionalResponse, error) {
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
	old := *converter.ProfessionalProfileToResponse(profile)

	if req.SpecialtyID != nil {
		specialtyID, err := parseOptionalUUID(*req.SpecialtyID)
		if err != nil {
			return nil, err
		}
		if specialtyID != nil {
			specialty, err := u.specialtyRepo.FindByID(ctx, tx, *specialtyID)
			if err != nil {
				u.log.Warnf("Failed to find specialty %s: %+v", *specialtyID, err)
				return nil, err
			}
			if specialty == nil {
				return nil, ErrSpecialtyNotFound
			}
			profile.Specialty = specialty
		} else {
			profile.Specialty = nil
		}
		profile.SpecialtyID = specialtyID
	}
	if req.HospitalID != nil {
		hospitalID, err := parseOptionalUUID(*req.HospitalID)
		if err != nil {
			return nil, err
		}
		if hospitalID != nil {
			hospital, err := u.hospitalRepo.FindByID(ctx, tx, *hospitalID)
			if err != nil {
				u.log.Warnf("Failed to find hospital %s: %+v", *hospitalID, err)
				return nil, err
			}
			if hospital == nil {
				return nil, ErrHospitalNotFound
			}
			profile.Hospital = hospital
		} else {
			profile.Hospital = nil
		}
		profile.HospitalID = hospitalID
	}
	if req.Biography != nil {
		profile.Biography = *req.Biography
	}
	if req.ConsultationFee != nil {
		if req.ConsultationFee.IsNegative() {
			return nil, ErrInvalidAmount
		}
		profile.ConsultationFee = *req.ConsultationFee
	}
	if req.YearsExperience != nil {
		profile.YearsExperience = *req.YearsExperience
	}

	if err := u.professionalProfileRepo.Update(ctx, tx, profile); err != nil {
		u.log.Warnf("Failed to update professional profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &a.ID, entity.AuditActionProfessionalUpdate, "professional_profile", a.ID.String(),
		old, converter.ProfessionalProfileToResponse(profile)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.withRating(ctx, profile)
}

// UpdateStatus activates or deactivates a professional account. Deactivation
// also ends the professional's sessions.
func (u *professionalUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateProfessionalStatusRequest) (*dto.ProfessionalResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.findProfile(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	user := profile.User
	user.ID = profile.UserID
	wasActive := user.IsActive
	user.IsActive = *req.IsActive

	if err := u.userRepo.Update(ctx, tx, &user); err != nil {
		u.log.Warnf("Failed to update professional status: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &a.ID, entity.AuditActionProfessionalStatus, "user", id.String(),
		map[string]interface{}{"is_active": wasActive},
		map[string]interface{}{"is_active": user.IsActive}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if wasActive && !user.IsActive {
		if err := u.tokenStore.RevokeAll(ctx, id); err != nil {
			u.log.Warnf("Failed to revoke tokens of deactivated professional %s: %+v", id, err)
		}
	}

	u.log.Infof("Professional status changed: id=%s, active=%t, by=%s", id, user.IsActive, a.ID)
	profile.User = user
	return u.withRating(ctx, profile)
}
