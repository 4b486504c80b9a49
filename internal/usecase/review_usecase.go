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

var (
	ErrReviewNotFound          = errors.New("review not found")
	ErrInvalidRating           = errors.New("rating must be between 1 and 5")
	ErrAppointmentNotCompleted = errors.New("only completed appointments can be reviewed")
	ErrAlreadyReviewed         = errors.New("this appointment has already been reviewed")
)

type ReviewUsecase interface {
	Create(ctx context.Context, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListForProfessional(ctx context.Context, professionalID uuid.UUID) (*dto.ProfessionalReviewsResponse, error)
	ListMine(ctx context.Context) ([]dto.ReviewResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewUsecase struct {
	db                      *gorm.DB
	log                     *logrus.Logger
	reviewRepo              repository.ReviewRepository
	appointmentRepo         repository.AppointmentRepository
	professionalProfileRepo repository.ProfessionalProfileRepository
	statsCache              service.StatsCache
}

func NewReviewUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	reviewRepo repository.ReviewRepository,
	appointmentRepo repository.AppointmentRepository,
	professionalProfileRepo repository.ProfessionalProfileRepository,
	statsCache service.StatsCache,
) ReviewUsecase {
	return &reviewUsecase{
		db:                      db,
		log:                     log,
		reviewRepo:              reviewRepo,
		appointmentRepo:         appointmentRepo,
		professionalProfileRepo: professionalProfileRepo,
		statsCache:              statsCache,
	}
}

// Create records the calling patient's review. A review tied to an
// appointment needs that appointment to be the patient's own, with the same
// professional, and completed. Each appointment can be reviewed once.
func (u *reviewUsecase) Create(ctx context.Context, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req.Rating < entity.MinRating || req.Rating > entity.MaxRating {
		return nil, ErrInvalidRating
	}

	professionalID, err := uuid.Parse(req.ProfessionalID)
	if err != nil {
		return nil, ErrInvalidID
	}
	appointmentID, err := parseOptionalUUID(req.AppointmentID)
	if err != nil {
		return nil, err
	}

	profile, err := u.professionalProfileRepo.FindByUserID(ctx, u.db, professionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", professionalID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfessionalNotFound
	}

	if appointmentID != nil {
		appointment, err := u.appointmentRepo.FindByID(ctx, u.db, *appointmentID)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", *appointmentID, err)
			return nil, err
		}
		if appointment == nil {
			return nil, ErrAppointmentNotFound
		}
		if appointment.PatientID != a.ID || appointment.ProfessionalID != professionalID {
			return nil, ErrForbidden
		}
		if appointment.Status != entity.AppointmentStatusCompleted {
			return nil, ErrAppointmentNotCompleted
		}

		existing, err := u.reviewRepo.FindByAppointmentID(ctx, u.db, *appointmentID)
		if err != nil {
			u.log.Warnf("Failed to find review by appointment: %+v", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrAlreadyReviewed
		}
	}

	review := &entity.Review{
		PatientID:      a.ID,
		ProfessionalID: professionalID,
		AppointmentID:  appointmentID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	}
	if err := u.reviewRepo.Create(ctx, u.db.WithContext(ctx), review); err != nil {
		u.log.Warnf("Failed to create review: %+v", err)
		return nil, err
	}

	if err := u.statsCache.Invalidate(ctx, professionalID); err != nil {
		u.log.Warnf("Failed to invalidate dashboard stats: %+v", err)
	}
	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) ListForProfessional(ctx context.Context, professionalID uuid.UUID) (*dto.ProfessionalReviewsResponse, error) {
	profile, err := u.professionalProfileRepo.FindByUserID(ctx, u.db, professionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", professionalID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfessionalNotFound
	}

	reviews, err := u.reviewRepo.FindByProfessionalID(ctx, u.db, professionalID)
	if err != nil {
		u.log.Warnf("Failed to list reviews: %+v", err)
		return nil, err
	}

	summaries, err := u.reviewRepo.RatingSummaries(ctx, u.db, []uuid.UUID{professionalID})
	if err != nil {
		u.log.Warnf("Failed to summarize ratings: %+v", err)
		return nil, err
	}
	summary := summaries[professionalID]

	return &dto.ProfessionalReviewsResponse{
		Reviews:       converter.ReviewsToResponses(reviews),
		AverageRating: summary.Average,
		ReviewCount:   summary.Count,
	}, nil
}

func (u *reviewUsecase) ListMine(ctx context.Context) ([]dto.ReviewResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	reviews, err := u.reviewRepo.FindByPatientID(ctx, u.db, a.ID)
	if err != nil {
		u.log.Warnf("Failed to list reviews for %s: %+v", a.ID, err)
		return nil, err
	}
	return converter.ReviewsToResponses(reviews), nil
}

func (u *reviewUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	review, err := u.reviewRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find review %s: %+v", id, err)
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if !a.IsAdmin() && review.PatientID != a.ID {
		return ErrForbidden
	}

	if _, err := u.reviewRepo.Delete(ctx, u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete review %s: %+v", id, err)
		return err
	}

	if err := u.statsCache.Invalidate(ctx, review.ProfessionalID); err != nil {
		u.log.Warnf("Failed to invalidate dashboard stats: %+v", err)
	}
	return nil
}
