package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"medconnect/internal/delivery/http/middleware"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"
	"medconnect/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func ctxAs(userID uuid.UUID, roleID int) context.Context {
	return middleware.ContextWithUser(context.Background(), userID, roleID)
}

// mockUserRepo

var _ repository.UserRepository = (*mockUserRepo)(nil)

type mockUserRepo struct {
	CreateFn            func(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByEmailFn       func(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	FindByIDFn          func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByProviderUIDFn func(ctx context.Context, db *gorm.DB, providerUID string) (*entity.User, error)
	UpdateFn            func(ctx context.Context, db *gorm.DB, user *entity.User) error
	CountByRoleFn       func(ctx context.Context, db *gorm.DB) (map[int]int64, error)
}

func (m *mockUserRepo) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, db, user)
	}
	user.ID = uuid.New()
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, db, email)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, db, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByProviderUID(ctx context.Context, db *gorm.DB, providerUID string) (*entity.User, error) {
	if m.FindByProviderUIDFn != nil {
		return m.FindByProviderUIDFn(ctx, db, providerUID)
	}
	return nil, nil
}

func (m *mockUserRepo) FindAll(ctx context.Context, db *gorm.DB, filter *entity.UserFilter) ([]entity.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepo) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, db, user)
	}
	return nil
}

func (m *mockUserRepo) CountByRole(ctx context.Context, db *gorm.DB) (map[int]int64, error) {
	if m.CountByRoleFn != nil {
		return m.CountByRoleFn(ctx, db)
	}
	return map[int]int64{}, nil
}

// mockPatientProfileRepo

var _ repository.PatientProfileRepository = (*mockPatientProfileRepo)(nil)

type mockPatientProfileRepo struct {
	CreateFn       func(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
	FindByUserIDFn func(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
}

func (m *mockPatientProfileRepo) Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, db, profile)
	}
	return nil
}

func (m *mockPatientProfileRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	if m.FindByUserIDFn != nil {
		return m.FindByUserIDFn(ctx, db, userID)
	}
	return nil, nil
}

func (m *mockPatientProfileRepo) FindAll(ctx context.Context, db *gorm.DB, limit, offset int) ([]entity.PatientProfile, int64, error) {
	return nil, 0, nil
}

func (m *mockPatientProfileRepo) Update(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	return nil
}

// mockProfessionalProfileRepo

var _ repository.ProfessionalProfileRepository = (*mockProfessionalProfileRepo)(nil)

type mockProfessionalProfileRepo struct {
	FindByUserIDFn func(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error)
}

func (m *mockProfessionalProfileRepo) Create(ctx context.Context, db *gorm.DB, profile *entity.ProfessionalProfile) error {
	return nil
}

func (m *mockProfessionalProfileRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error) {
	if m.FindByUserIDFn != nil {
		return m.FindByUserIDFn(ctx, db, userID)
	}
	return nil, nil
}

func (m *mockProfessionalProfileRepo) FindAll(ctx context.Context, db *gorm.DB, filter *entity.ProfessionalFilter) ([]entity.ProfessionalProfile, int64, error) {
	return nil, 0, nil
}

func (m *mockProfessionalProfileRepo) Update(ctx context.Context, db *gorm.DB, profile *entity.ProfessionalProfile) error {
	return nil
}

// mockSpecialtyRepo

var _ repository.SpecialtyRepository = (*mockSpecialtyRepo)(nil)

type mockSpecialtyRepo struct {
	FindByIDFn func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Specialty, error)
}

func (m *mockSpecialtyRepo) Create(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error {
	return nil
}

func (m *mockSpecialtyRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Specialty, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, db, id)
	}
	return nil, nil
}

func (m *mockSpecialtyRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Specialty, error) {
	return nil, nil
}

func (m *mockSpecialtyRepo) Update(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error {
	return nil
}

func (m *mockSpecialtyRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

// mockAppointmentRepo

var _ repository.AppointmentRepository = (*mockAppointmentRepo)(nil)

type mockAppointmentRepo struct {
	CreateFn                func(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByIDFn              func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAllFn               func(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	UpdateStatusFn          func(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus, cancelReason string) (int64, error)
	CountByStatusFn         func(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.StatusCount, error)
	CountDistinctPatientsFn func(ctx context.Context, db *gorm.DB, professionalID uuid.UUID) (int64, error)
	CountBetweenFn          func(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter, from, to time.Time) (int64, error)
}

func (m *mockAppointmentRepo) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, db, appointment)
	}
	appointment.ID = uuid.New()
	return nil
}

func (m *mockAppointmentRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, db, id)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) FindAll(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx, db, filter)
	}
	return nil, 0, nil
}

func (m *mockAppointmentRepo) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return nil
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus, cancelReason string) (int64, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, db, id, from, to, cancelReason)
	}
	return 1, nil
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	return 1, nil
}

func (m *mockAppointmentRepo) CountByStatus(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.StatusCount, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, db, filter)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) CountDistinctPatients(ctx context.Context, db *gorm.DB, professionalID uuid.UUID) (int64, error) {
	if m.CountDistinctPatientsFn != nil {
		return m.CountDistinctPatientsFn(ctx, db, professionalID)
	}
	return 0, nil
}

func (m *mockAppointmentRepo) CountBetween(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter, from, to time.Time) (int64, error) {
	if m.CountBetweenFn != nil {
		return m.CountBetweenFn(ctx, db, filter, from, to)
	}
	return 0, nil
}

// mockMedicalRecordRepo

var _ repository.MedicalRecordRepository = (*mockMedicalRecordRepo)(nil)

type mockMedicalRecordRepo struct {
	FindByIDFn       func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error)
	FindAllFn        func(ctx context.Context, db *gorm.DB, filter *entity.MedicalRecordFilter) ([]entity.MedicalRecord, error)
	CountByPatientFn func(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (int64, error)
}

func (m *mockMedicalRecordRepo) Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	record.ID = uuid.New()
	return nil
}

func (m *mockMedicalRecordRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, db, id)
	}
	return nil, nil
}

func (m *mockMedicalRecordRepo) FindAll(ctx context.Context, db *gorm.DB, filter *entity.MedicalRecordFilter) ([]entity.MedicalRecord, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx, db, filter)
	}
	return nil, nil
}

func (m *mockMedicalRecordRepo) Update(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	return nil
}

func (m *mockMedicalRecordRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	return 1, nil
}

func (m *mockMedicalRecordRepo) CountByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (int64, error) {
	if m.CountByPatientFn != nil {
		return m.CountByPatientFn(ctx, db, patientID)
	}
	return 0, nil
}

// mockNotificationRepo records what was created.

var _ repository.NotificationRepository = (*mockNotificationRepo)(nil)

type mockNotificationRepo struct {
	Created []*entity.Notification

	CreateFn      func(ctx context.Context, db *gorm.DB, notification *entity.Notification) error
	FindByIDFn    func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Notification, error)
	CountUnreadFn func(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	DeleteFn      func(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}

func (m *mockNotificationRepo) Create(ctx context.Context, db *gorm.DB, notification *entity.Notification) error {
	if m.CreateFn != nil {
		if err := m.CreateFn(ctx, db, notification); err != nil {
			return err
		}
	}
	m.Created = append(m.Created, notification)
	return nil
}

func (m *mockNotificationRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Notification, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, db, id)
	}
	return nil, nil
}

func (m *mockNotificationRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error) {
	return nil, nil
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	if m.CountUnreadFn != nil {
		return m.CountUnreadFn(ctx, db, userID)
	}
	return 0, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (m *mockNotificationRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, db, id)
	}
	return 1, nil
}

// mockRoleRepo

var _ repository.RoleRepository = (*mockRoleRepo)(nil)

type mockRoleRepo struct {
	Roles []entity.Role
}

func (m *mockRoleRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Role, error) {
	return m.Roles, nil
}

// mockReminderRepo records what was created, updated and dropped.

var _ repository.ReminderRepository = (*mockReminderRepo)(nil)

type mockReminderRepo struct {
	Created         []*entity.Reminder
	Updated         []*entity.Reminder
	DeletedForAppts []uuid.UUID

	FindDueFn                   func(ctx context.Context, db *gorm.DB, now time.Time, limit int) ([]entity.Reminder, error)
	FindUnsentByAppointmentIDFn func(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) ([]entity.Reminder, error)
	MarkSentFn                  func(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}

func (m *mockReminderRepo) Create(ctx context.Context, db *gorm.DB, reminder *entity.Reminder) error {
	m.Created = append(m.Created, reminder)
	return nil
}

func (m *mockReminderRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Reminder, error) {
	return nil, nil
}

func (m *mockReminderRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]entity.Reminder, error) {
	return nil, nil
}

func (m *mockReminderRepo) FindDue(ctx context.Context, db *gorm.DB, now time.Time, limit int) ([]entity.Reminder, error) {
	if m.FindDueFn != nil {
		return m.FindDueFn(ctx, db, now, limit)
	}
	return nil, nil
}

func (m *mockReminderRepo) FindUnsentByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) ([]entity.Reminder, error) {
	if m.FindUnsentByAppointmentIDFn != nil {
		return m.FindUnsentByAppointmentIDFn(ctx, db, appointmentID)
	}
	return nil, nil
}

func (m *mockReminderRepo) Update(ctx context.Context, db *gorm.DB, reminder *entity.Reminder) error {
	m.Updated = append(m.Updated, reminder)
	return nil
}

func (m *mockReminderRepo) MarkSent(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	if m.MarkSentFn != nil {
		return m.MarkSentFn(ctx, db, id)
	}
	return 1, nil
}

func (m *mockReminderRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	return 1, nil
}

func (m *mockReminderRepo) DeleteUnsentByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (int64, error) {
	m.DeletedForAppts = append(m.DeletedForAppts, appointmentID)
	return 1, nil
}

// mockReviewRepo

var _ repository.ReviewRepository = (*mockReviewRepo)(nil)

type mockReviewRepo struct {
	Created []*entity.Review

	FindByAppointmentIDFn func(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (*entity.Review, error)
	RatingSummariesFn     func(ctx context.Context, db *gorm.DB, professionalIDs []uuid.UUID) (map[uuid.UUID]entity.RatingSummary, error)
}

func (m *mockReviewRepo) Create(ctx context.Context, db *gorm.DB, review *entity.Review) error {
	review.ID = uuid.New()
	m.Created = append(m.Created, review)
	return nil
}

func (m *mockReviewRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Review, error) {
	return nil, nil
}

func (m *mockReviewRepo) FindByProfessionalID(ctx context.Context, db *gorm.DB, professionalID uuid.UUID) ([]entity.Review, error) {
	return nil, nil
}

func (m *mockReviewRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Review, error) {
	return nil, nil
}

func (m *mockReviewRepo) FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (*entity.Review, error) {
	if m.FindByAppointmentIDFn != nil {
		return m.FindByAppointmentIDFn(ctx, db, appointmentID)
	}
	return nil, nil
}

func (m *mockReviewRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	return 1, nil
}

func (m *mockReviewRepo) RatingSummaries(ctx context.Context, db *gorm.DB, professionalIDs []uuid.UUID) (map[uuid.UUID]entity.RatingSummary, error) {
	if m.RatingSummariesFn != nil {
		return m.RatingSummariesFn(ctx, db, professionalIDs)
	}
	return map[uuid.UUID]entity.RatingSummary{}, nil
}

// mockSupplyRepo

var _ repository.SupplyRepository = (*mockSupplyRepo)(nil)

type mockSupplyRepo struct {
	FindAllFn        func(ctx context.Context, filter *entity.SupplyFilter) ([]entity.Supply, error)
	AdjustQuantityFn func(ctx context.Context, id string, delta int) (*entity.Supply, error)
}

func (m *mockSupplyRepo) Create(ctx context.Context, supply *entity.Supply) error {
	supply.ID = "supply-1"
	return nil
}

func (m *mockSupplyRepo) FindByID(ctx context.Context, id string) (*entity.Supply, error) {
	return nil, nil
}

func (m *mockSupplyRepo) FindAll(ctx context.Context, filter *entity.SupplyFilter) ([]entity.Supply, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockSupplyRepo) Update(ctx context.Context, supply *entity.Supply) error {
	return nil
}

func (m *mockSupplyRepo) AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Supply, error) {
	if m.AdjustQuantityFn != nil {
		return m.AdjustQuantityFn(ctx, id, delta)
	}
	return nil, nil
}

func (m *mockSupplyRepo) Delete(ctx context.Context, id string) error {
	return nil
}

// mockTransactionRepo

var _ repository.FinancialTransactionRepository = (*mockTransactionRepo)(nil)

type mockTransactionRepo struct {
	Created []*entity.FinancialTransaction

	FindAllFn func(ctx context.Context, filter *entity.TransactionFilter) ([]entity.FinancialTransaction, error)
}

func (m *mockTransactionRepo) Create(ctx context.Context, tx *entity.FinancialTransaction) error {
	tx.ID = "txn-1"
	m.Created = append(m.Created, tx)
	return nil
}

func (m *mockTransactionRepo) FindByID(ctx context.Context, id string) (*entity.FinancialTransaction, error) {
	return nil, nil
}

func (m *mockTransactionRepo) FindAll(ctx context.Context, filter *entity.TransactionFilter) ([]entity.FinancialTransaction, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockTransactionRepo) Update(ctx context.Context, tx *entity.FinancialTransaction) error {
	return nil
}

func (m *mockTransactionRepo) Delete(ctx context.Context, id string) error {
	return nil
}

// mockAuditService records the actions it was asked to log.

var _ service.AuditService = (*mockAuditService)(nil)

type mockAuditService struct {
	Actions []string
	Err     error
}

func (m *mockAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	m.Actions = append(m.Actions, action)
	return m.Err
}

func (m *mockAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	m.Actions = append(m.Actions, action)
	return m.Err
}

func (m *mockAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	m.Actions = append(m.Actions, action)
	return m.Err
}

// mockStatsCache misses on every read and records invalidations.

var _ service.StatsCache = (*mockStatsCache)(nil)

type mockStatsCache struct {
	Invalidated []uuid.UUID
	Stored      map[uuid.UUID]interface{}

	GetFn func(ctx context.Context, userID uuid.UUID, dest interface{}) (bool, error)
}

func (m *mockStatsCache) Get(ctx context.Context, userID uuid.UUID, dest interface{}) (bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, dest)
	}
	return false, nil
}

func (m *mockStatsCache) Set(ctx context.Context, userID uuid.UUID, value interface{}) error {
	if m.Stored == nil {
		m.Stored = map[uuid.UUID]interface{}{}
	}
	m.Stored[userID] = value
	return nil
}

func (m *mockStatsCache) Invalidate(ctx context.Context, userIDs ...uuid.UUID) error {
	m.Invalidated = append(m.Invalidated, userIDs...)
	return nil
}

// mockIdentityVerifier

var _ service.IdentityVerifier = (*mockIdentityVerifier)(nil)

type mockIdentityVerifier struct {
	VerifyFn func(ctx context.Context, idToken string) (*service.ProviderIdentity, error)
}

func (m *mockIdentityVerifier) Verify(ctx context.Context, idToken string) (*service.ProviderIdentity, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, idToken)
	}
	return nil, service.ErrProviderTokenInvalid
}
