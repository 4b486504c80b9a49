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
	ErrMedicalRecordNotFound = errors.New("medical record not found")
	ErrPatientIDRequired     = errors.New("patient_id is required")
	ErrAppointmentMismatch   = errors.New("appointment does not belong to this patient and professional")
)

type MedicalRecordUsecase interface {
	Create(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	List(ctx context.Context, patientID *uuid.UUID) ([]dto.MedicalRecordResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MedicalRecordResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type medicalRecordUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	medicalRecordRepo  repository.MedicalRecordRepository
	patientProfileRepo repository.PatientProfileRepository
	appointmentRepo    repository.AppointmentRepository
	auditService       service.AuditService
	statsCache         service.StatsCache
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	medicalRecordRepo repository.MedicalRecordRepository,
	patientProfileRepo repository.PatientProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	statsCache service.StatsCache,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:                 db,
		log:                log,
		medicalRecordRepo:  medicalRecordRepo,
		patientProfileRepo: patientProfileRepo,
		appointmentRepo:    appointmentRepo,
		auditService:       auditService,
		statsCache:         statsCache,
	}
}

func (u *medicalRecordUsecase) Create(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, ErrInvalidID
	}
	appointmentID, err := parseOptionalUUID(req.AppointmentID)
	if err != nil {
		return nil, err
	}
	recordDate, err := parseDate(req.RecordDate)
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

	if appointmentID != nil {
		appointment, err := u.appointmentRepo.FindByID(ctx, u.db, *appointmentID)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", *appointmentID, err)
			return nil, err
		}
		if appointment == nil {
			return nil, ErrAppointmentNotFound
		}
		if appointment.PatientID != patientID || (!a.IsAdmin() && appointment.ProfessionalID != a.ID) {
			return nil, ErrAppointmentMismatch
		}
	}

	record := &entity.MedicalRecord{
		PatientID:      patientID,
		ProfessionalID: a.ID,
		AppointmentID:  appointmentID,
		RecordDate:     recordDate,
		Diagnosis:      req.Diagnosis,
		Symptoms:       req.Symptoms,
		Treatment:      req.Treatment,
		Prescription:   req.Prescription,
		Notes:          req.Notes,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.medicalRecordRepo.Create(ctx, tx, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &a.ID, entity.AuditActionMedicalRecordCreate, "medical_record", record.ID.String(), recordAuditValue(record)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if err := u.statsCache.Invalidate(ctx, patientID); err != nil {
		u.log.Warnf("Failed to invalidate dashboard stats: %+v", err)
	}

	record.Patient = patient.User
	return converter.MedicalRecordToResponse(record), nil
}

// List scopes records by role: patients see their own, professionals must
// pick a patient, admins may filter or list everything.
func (u *medicalRecordUsecase) List(ctx context.Context, patientID *uuid.UUID) ([]dto.MedicalRecordResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter := &entity.MedicalRecordFilter{PatientID: patientID}
	switch {
	case a.IsPatient():
		filter.PatientID = &a.ID
	case a.IsProfessional():
		if patientID == nil {
			return nil, ErrPatientIDRequired
		}
	}

	records, err := u.medicalRecordRepo.FindAll(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list medical records: %+v", err)
		return nil, err
	}
	return converter.MedicalRecordsToResponses(records), nil
}

func (u *medicalRecordUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.MedicalRecordResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	record, err := u.find(ctx, u.db, id)
	if err != nil {
		return nil, err
	}
	if a.IsPatient() && record.PatientID != a.ID {
		return nil, ErrForbidden
	}
	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsAdmin() && record.ProfessionalID != a.ID {
		return nil, ErrForbidden
	}
	old := recordAuditValue(record)

	if req.RecordDate != nil {
		recordDate, err := parseDate(*req.RecordDate)
		if err != nil {
			return nil, err
		}
		record.RecordDate = recordDate
	}
	if req.Diagnosis != nil {
		record.Diagnosis = *req.Diagnosis
	}
	if req.Symptoms != nil {
		record.Symptoms = *req.Symptoms
	}
	if req.Treatment != nil {
		record.Treatment = *req.Treatment
	}
	if req.Prescription != nil {
		record.Prescription = *req.Prescription
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	if err := u.medicalRecordRepo.Update(ctx, tx, record); err != nil {
		u.log.Warnf("Failed to update medical record %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &a.ID, entity.AuditActionMedicalRecordUpdate, "medical_record", id.String(), old, recordAuditValue(record)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.find(ctx, tx, id)
	if err != nil {
		return err
	}

	if _, err := u.medicalRecordRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete medical record %s: %+v", id, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &a.ID, entity.AuditActionMedicalRecordDelete, "medical_record", id.String(), recordAuditValue(record)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.statsCache.Invalidate(ctx, record.PatientID); err != nil {
		u.log.Warnf("Failed to invalidate dashboard stats: %+v", err)
	}
	return nil
}

func (u *medicalRecordUsecase) find(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error) {
	record, err := u.medicalRecordRepo.FindByID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find medical record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}
	return record, nil
}

func recordAuditValue(r *entity.MedicalRecord) map[string]interface{} {
	return map[string]interface{}{
		"patient_id":  r.PatientID,
		"record_date": r.RecordDate.Format(dto.DateLayout),
		"diagnosis":   r.Diagnosis,
		"treatment":   r.Treatment,
	}
}
