package usecase

import (
	"context"
	"errors"

	"medconnect/internal/converter"
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrExamResultNotFound = errors.New("exam result not found")

type ExamResultUsecase interface {
	Create(ctx context.Context, req *dto.CreateExamResultRequest) (*dto.ExamResultResponse, error)
	List(ctx context.Context, patientID *uuid.UUID) ([]dto.ExamResultResponse, error)
	Get(ctx context.Context, id string) (*dto.ExamResultResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateExamResultRequest) (*dto.ExamResultResponse, error)
	Delete(ctx context.Context, id string) error
}

type examResultUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	examResultRepo     repository.ExamResultRepository
	patientProfileRepo repository.PatientProfileRepository
}

func NewExamResultUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	examResultRepo repository.ExamResultRepository,
	patientProfileRepo repository.PatientProfileRepository,
) ExamResultUsecase {
	return &examResultUsecase{
		db:                 db,
		log:                log,
		examResultRepo:     examResultRepo,
		patientProfileRepo: patientProfileRepo,
	}
}

func (u *examResultUsecase) Create(ctx context.Context, req *dto.CreateExamResultRequest) (*dto.ExamResultResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, ErrInvalidID
	}
	examDate, err := parseDate(req.ExamDate)
	if err != nil {
		return nil, err
	}

	patient, err := u.patientProfileRepo.FindByUserID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	status := entity.ExamStatus(req.Status)
	if status == "" {
		status = entity.ExamStatusPending
	}

	result := &entity.ExamResult{
		PatientID:      patientID.String(),
		ProfessionalID: a.ID.String(),
		ExamType:       req.ExamType,
		ExamDate:       examDate,
		Result:         req.Result,
		ReferenceRange: req.ReferenceRange,
		Status:         status,
		Notes:          req.Notes,
		FileURL:        req.FileURL,
	}
	if err := u.examResultRepo.Create(ctx, result); err != nil {
		u.log.Warnf("Failed to create exam result: %+v", err)
		return nil, err
	}

	u.log.Infof("Exam result created: id=%s, patient=%s, by=%s", result.ID, patientID, a.ID)
	return converter.ExamResultToResponse(result), nil
}

func (u *examResultUsecase) List(ctx context.Context, patientID *uuid.UUID) ([]dto.ExamResultResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter := &entity.ExamResultFilter{}
	if a.IsPatient() {
		filter.PatientID = a.ID.String()
	} else if patientID != nil {
		filter.PatientID = patientID.String()
	}

	results, err := u.examResultRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list exam results: %+v", err)
		return nil, err
	}
	return converter.ExamResultsToResponses(results), nil
}

func (u *examResultUsecase) Get(ctx context.Context, id string) (*dto.ExamResultResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.IsPatient() && result.PatientID != a.ID.String() {
		return nil, ErrForbidden
	}
	return converter.ExamResultToResponse(result), nil
}

// Update is open to the professional who recorded the result and to admins.
func (u *examResultUsecase) Update(ctx context.Context, id string, req *dto.UpdateExamResultRequest) (*dto.ExamResultResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsAdmin() && result.ProfessionalID != a.ID.String() {
		return nil, ErrForbidden
	}

	if req.ExamType != nil {
		result.ExamType = *req.ExamType
	}
	if req.ExamDate != nil {
		examDate, err := parseDate(*req.ExamDate)
		if err != nil {
			return nil, err
		}
		result.ExamDate = examDate
	}
	if req.Result != nil {
		result.Result = *req.Result
	}
	if req.ReferenceRange != nil {
		result.ReferenceRange = *req.ReferenceRange
	}
	if req.Status != nil {
		result.Status = entity.ExamStatus(*req.Status)
	}
	if req.Notes != nil {
		result.Notes = *req.Notes
	}
	if req.FileURL != nil {
		result.FileURL = *req.FileURL
	}

	if err := u.examResultRepo.Update(ctx, result); err != nil {
		u.log.Warnf("Failed to update exam result %s: %+v", id, err)
		return nil, err
	}
	return converter.ExamResultToResponse(result), nil
}

func (u *examResultUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.find(ctx, id); err != nil {
		return err
	}
	if err := u.examResultRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete exam result %s: %+v", id, err)
		return err
	}
	return nil
}

func (u *examResultUsecase) find(ctx context.Context, id string) (*entity.ExamResult, error) {
	result, err := u.examResultRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find exam result %s: %+v", id, err)
		return nil, err
	}
	if result == nil {
		return nil, ErrExamResultNotFound
	}
	return result, nil
}
