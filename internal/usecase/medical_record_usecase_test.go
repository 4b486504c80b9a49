package usecase

import (
	"context"
	"testing"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMedicalRecordList_Scoping(t *testing.T) {
	patientID, professionalID, adminID := uuid.New(), uuid.New(), uuid.New()
	otherPatient := uuid.New()

	var got *entity.MedicalRecordFilter
	records := &mockMedicalRecordRepo{
		FindAllFn: func(ctx context.Context, db *gorm.DB, filter *entity.MedicalRecordFilter) ([]entity.MedicalRecord, error) {
			got = filter
			return nil, nil
		},
	}
	db, _ := newMockDB(t)
	uc := NewMedicalRecordUsecase(db, quietLogger(), records, &mockPatientProfileRepo{}, &mockAppointmentRepo{}, &mockAuditService{}, &mockStatsCache{})

	t.Run("patient always sees own records", func(t *testing.T) {
		_, err := uc.List(ctxAs(patientID, entity.RoleIDPatient), &otherPatient)
		require.NoError(t, err)
		require.NotNil(t, got.PatientID)
		assert.Equal(t, patientID, *got.PatientID)
	})

	t.Run("professional must pick a patient", func(t *testing.T) {
		_, err := uc.List(ctxAs(professionalID, entity.RoleIDProfessional), nil)
		assert.ErrorIs(t, err, ErrPatientIDRequired)

		_, err = uc.List(ctxAs(professionalID, entity.RoleIDProfessional), &otherPatient)
		require.NoError(t, err)
		assert.Equal(t, otherPatient, *got.PatientID)
	})

	t.Run("admin may list everything", func(t *testing.T) {
		_, err := uc.List(ctxAs(adminID, entity.RoleIDAdmin), nil)
		require.NoError(t, err)
		assert.Nil(t, got.PatientID)
	})
}

func TestMedicalRecordGet_OtherPatientForbidden(t *testing.T) {
	db, _ := newMockDB(t)
	record := &entity.MedicalRecord{ID: uuid.New(), PatientID: uuid.New(), ProfessionalID: uuid.New(), Diagnosis: "Flu"}
	records := &mockMedicalRecordRepo{
		FindByIDFn: func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error) {
			return record, nil
		},
	}
	uc := NewMedicalRecordUsecase(db, quietLogger(), records, &mockPatientProfileRepo{}, &mockAppointmentRepo{}, &mockAuditService{}, &mockStatsCache{})

	_, err := uc.Get(ctxAs(uuid.New(), entity.RoleIDPatient), record.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	resp, err := uc.Get(ctxAs(record.PatientID, entity.RoleIDPatient), record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flu", resp.Diagnosis)
}

func TestMedicalRecordCreate(t *testing.T) {
	patientID, professionalID := uuid.New(), uuid.New()
	appointment := &entity.Appointment{ID: uuid.New(), PatientID: patientID, ProfessionalID: uuid.New()}

	patients := &mockPatientProfileRepo{
		FindByUserIDFn: func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.PatientProfile, error) {
			if id != patientID {
				return nil, nil
			}
			return &entity.PatientProfile{UserID: id, User: entity.User{ID: id, FullName: "Ana Souza"}}, nil
		},
	}
	appointments := &mockAppointmentRepo{
		FindByIDFn: func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
			return appointment, nil
		},
	}

	t.Run("records and audits", func(t *testing.T) {
		db, mock := newMockDB(t)
		audit, stats := &mockAuditService{}, &mockStatsCache{}
		uc := NewMedicalRecordUsecase(db, quietLogger(), &mockMedicalRecordRepo{}, patients, appointments, audit, stats)

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := uc.Create(ctxAs(professionalID, entity.RoleIDProfessional), &dto.CreateMedicalRecordRequest{
			PatientID:  patientID.String(),
			RecordDate: "2026-03-02",
			Diagnosis:  "Seasonal allergy",
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-03-02", resp.RecordDate)
		assert.Equal(t, "Ana Souza", resp.Patient.FullName)
		assert.Equal(t, []string{entity.AuditActionMedicalRecordCreate}, audit.Actions)
		assert.Equal(t, []uuid.UUID{patientID}, stats.Invalidated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("appointment of another professional", func(t *testing.T) {
		db, _ := newMockDB(t)
		uc := NewMedicalRecordUsecase(db, quietLogger(), &mockMedicalRecordRepo{}, patients, appointments, &mockAuditService{}, &mockStatsCache{})

		_, err := uc.Create(ctxAs(professionalID, entity.RoleIDProfessional), &dto.CreateMedicalRecordRequest{
			PatientID:     patientID.String(),
			AppointmentID: appointment.ID.String(),
			RecordDate:    "2026-03-02",
			Diagnosis:     "Seasonal allergy",
		})
		assert.ErrorIs(t, err, ErrAppointmentMismatch)
	})

	t.Run("unknown patient", func(t *testing.T) {
		db, _ := newMockDB(t)
		uc := NewMedicalRecordUsecase(db, quietLogger(), &mockMedicalRecordRepo{}, patients, appointments, &mockAuditService{}, &mockStatsCache{})

		_, err := uc.Create(ctxAs(professionalID, entity.RoleIDProfessional), &dto.CreateMedicalRecordRequest{
			PatientID:  uuid.New().String(),
			RecordDate: "2026-03-02",
			Diagnosis:  "Seasonal allergy",
		})
		assert.ErrorIs(t, err, ErrPatientNotFound)
	})

	t.Run("bad date", func(t *testing.T) {
		db, _ := newMockDB(t)
		uc := NewMedicalRecordUsecase(db, quietLogger(), &mockMedicalRecordRepo{}, patients, appointments, &mockAuditService{}, &mockStatsCache{})

		_, err := uc.Create(ctxAs(professionalID, entity.RoleIDProfessional), &dto.CreateMedicalRecordRequest{
			PatientID:  patientID.String(),
			RecordDate: "02/03/2026",
			Diagnosis:  "Seasonal allergy",
		})
		assert.ErrorIs(t, err, ErrInvalidDateFormat)
	})
}
