package usecase

import (
	"context"
	"errors"

	"medconnect/internal/converter"
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"
	"medconnect/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrHospitalNotFound       = errors.New("hospital not found")
	ErrSpecialtyNotFound      = errors.New("specialty not found")
	ErrSpecialtyAlreadyExists = errors.New("specialty name already exists")
)

// HospitalUsecase covers the hospital and specialty catalogs
type HospitalUsecase interface {
	ListHospitals(ctx context.Context, city string) ([]dto.HospitalResponse, error)
	GetHospital(ctx context.Context, id uuid.UUID) (*dto.HospitalResponse, error)
	CreateHospital(ctx context.Context, req *dto.HospitalRequest) (*dto.HospitalResponse, error)
	UpdateHospital(ctx context.Context, id uuid.UUID, req *dto.HospitalRequest) (*dto.HospitalResponse, error)
	DeleteHospital(ctx context.Context, id uuid.UUID) error

	ListSpecialties(ctx context.Context) ([]dto.SpecialtyResponse, error)
	GetSpecialty(ctx context.Context, id uuid.UUID) (*dto.SpecialtyResponse, error)
	CreateSpecialty(ctx context.Context, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error)
	UpdateSpecialty(ctx context.Context, id uuid.UUID, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error)
	DeleteSpecialty(ctx context.Context, id uuid.UUID) error
}

type hospitalUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	hospitalRepo  repository.HospitalRepository
	specialtyRepo repository.SpecialtyRepository
}

func NewHospitalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	hospitalRepo repository.HospitalRepository,
	specialtyRepo repository.SpecialtyRepository,
) HospitalUsecase {
	return &hospitalUsecase{
		db:            db,
		log:           log,
		hospitalRepo:  hospitalRepo,
		specialtyRepo: specialtyRepo,
	}
}

func (u *hospitalUsecase) ListHospitals(ctx context.Context, city string) ([]dto.HospitalResponse, error) {
	hospitals, err := u.hospitalRepo.FindAll(ctx, u.db, city)
	if err != nil {
		u.log.Warnf("Failed to list hospitals: %+v", err)
		return nil, err
	}
	return converter.HospitalsToResponses(hospitals), nil
}

func (u *hospitalUsecase) GetHospital(ctx context.Context, id uuid.UUID) (*dto.HospitalResponse, error) {
	hospital, err := u.findHospital(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) findHospital(ctx context.Context, id uuid.UUID) (*entity.Hospital, error) {
	hospital, err := u.hospitalRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find hospital %s: %+v", id, err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}
	return hospital, nil
}

func (u *hospitalUsecase) CreateHospital(ctx context.Context, req *dto.HospitalRequest) (*dto.HospitalResponse, error) {
	hospital := &entity.Hospital{}
	applyHospitalRequest(hospital, req)

	if err := u.hospitalRepo.Create(ctx, u.db, hospital); err != nil {
		u.log.Warnf("Failed to create hospital: %+v", err)
		return nil, err
	}
	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) UpdateHospital(ctx context.Context, id uuid.UUID, req *dto.HospitalRequest) (*dto.HospitalResponse, error) {
	hospital, err := u.findHospital(ctx, id)
	if err != nil {
		return nil, err
	}
	applyHospitalRequest(hospital, req)

	if err := u.hospitalRepo.Update(ctx, u.db, hospital); err != nil {
		u.log.Warnf("Failed to update hospital %s: %+v", id, err)
		return nil, err
	}
	return converter.HospitalToResponse(hospital), nil
}

func applyHospitalRequest(hospital *entity.Hospital, req *dto.HospitalRequest) {
	hospital.Name = req.Name
	hospital.Address = req.Address
	hospital.City = req.City
	hospital.Phone = req.Phone
	hospital.Email = req.Email
}

func (u *hospitalUsecase) DeleteHospital(ctx context.Context, id uuid.UUID) error {
	affected, err := u.hospitalRepo.Delete(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to delete hospital %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrHospitalNotFound
	}
	return nil
}

func (u *hospitalUsecase) ListSpecialties(ctx context.Context) ([]dto.SpecialtyResponse, error) {
	specialties, err := u.specialtyRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list specialties: %+v", err)
		return nil, err
	}
	return converter.SpecialtiesToResponses(specialties), nil
}

func (u *hospitalUsecase) GetSpecialty(ctx context.Context, id uuid.UUID) (*dto.SpecialtyResponse, error) {
	specialty, err := u.findSpecialty(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.SpecialtyToResponse(specialty), nil
}

func (u *hospitalUsecase) findSpecialty(ctx context.Context, id uuid.UUID) (*entity.Specialty, error) {
	specialty, err := u.specialtyRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find specialty %s: %+v", id, err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}
	return specialty, nil
}

func (u *hospitalUsecase) CreateSpecialty(ctx context.Context, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty := &entity.Specialty{Name: req.Name, Description: req.Description}

	if err := u.specialtyRepo.Create(ctx, u.db, specialty); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrSpecialtyAlreadyExists
		}
		u.log.Warnf("Failed to create specialty: %+v", err)
		return nil, err
	}
	return converter.SpecialtyToResponse(specialty), nil
}

func (u *hospitalUsecase) UpdateSpecialty(ctx context.Context, id uuid.UUID, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty, err := u.findSpecialty(ctx, id)
	if err != nil {
		return nil, err
	}
	specialty.Name = req.Name
	specialty.Description = req.Description

	if err := u.specialtyRepo.Update(ctx, u.db, specialty); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrSpecialtyAlreadyExists
		}
		u.log.Warnf("Failed to update specialty %s: %+v", id, err)
		return nil, err
	}
	return converter.SpecialtyToResponse(specialty), nil
}

func (u *hospitalUsecase) DeleteSpecialty(ctx context.Context, id uuid.UUID) error {
	affected, err := u.specialtyRepo.Delete(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to delete specialty %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrSpecialtyNotFound
	}
	return nil
}
