package usecase

import (
	"context"
	"time"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"
	"medconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DashboardUsecase interface {
	Stats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}

type dashboardUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	roleRepo          repository.RoleRepository
	appointmentRepo   repository.AppointmentRepository
	medicalRecordRepo repository.MedicalRecordRepository
	notificationRepo  repository.NotificationRepository
	reviewRepo        repository.ReviewRepository
	ticketRepo        repository.SupportTicketRepository
	supplyRepo        repository.SupplyRepository
	transactionRepo   repository.FinancialTransactionRepository
	statsCache        service.StatsCache
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	appointmentRepo repository.AppointmentRepository,
	medicalRecordRepo repository.MedicalRecordRepository,
	notificationRepo repository.NotificationRepository,
	reviewRepo repository.ReviewRepository,
	ticketRepo repository.SupportTicketRepository,
	supplyRepo repository.SupplyRepository,
	transactionRepo repository.FinancialTransactionRepository,
	statsCache service.StatsCache,
) DashboardUsecase {
	return &dashboardUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		roleRepo:          roleRepo,
		appointmentRepo:   appointmentRepo,
		medicalRecordRepo: medicalRecordRepo,
		notificationRepo:  notificationRepo,
		reviewRepo:        reviewRepo,
		ticketRepo:        ticketRepo,
		supplyRepo:        supplyRepo,
		transactionRepo:   transactionRepo,
		statsCache:        statsCache,
	}
}

// Stats returns the caller's role-specific dashboard, served from the cache
// when a fresh copy exists.
func (u *dashboardUsecase) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var cached dto.DashboardStatsResponse
	found, err := u.statsCache.Get(ctx, a.ID, &cached)
	if err != nil {
		u.log.Warnf("Failed to read dashboard cache: %+v", err)
	}
	if found {
		return &cached, nil
	}

	stats := &dto.DashboardStatsResponse{Role: entity.RoleNameByID(a.RoleID)}
	switch {
	case a.IsPatient():
		stats.Patient, err = u.patientStats(ctx, a.ID)
	case a.IsProfessional():
		stats.Professional, err = u.professionalStats(ctx, a.ID)
	case a.IsAdmin():
		stats.Admin, err = u.adminStats(ctx)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		u.log.Warnf("Failed to compute dashboard stats for %s: %+v", a.ID, err)
		return nil, err
	}

	if err := u.statsCache.Set(ctx, a.ID, stats); err != nil {
		u.log.Warnf("Failed to cache dashboard stats: %+v", err)
	}
	return stats, nil
}

func (u *dashboardUsecase) patientStats(ctx context.Context, patientID uuid.UUID) (*dto.PatientStats, error) {
	stats := &dto.PatientStats{}

	all, err := u.appointmentRepo.CountByStatus(ctx, u.db, &entity.AppointmentFilter{PatientID: &patientID})
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		stats.TotalAppointments += c.Count
	}

	now := time.Now().UTC()
	upcoming, err := u.appointmentRepo.CountByStatus(ctx, u.db, &entity.AppointmentFilter{
		PatientID: &patientID,
		Statuses:  []entity.AppointmentStatus{entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed},
		From:      &now,
	})
	if err != nil {
		return nil, err
	}
	for _, c := range upcoming {
		stats.UpcomingAppointments += c.Count
	}

	if stats.MedicalRecords, err = u.medicalRecordRepo.CountByPatient(ctx, u.db, patientID); err != nil {
		return nil, err
	}
	if stats.UnreadNotifications, err = u.notificationRepo.CountUnread(ctx, u.db, patientID); err != nil {
		return nil, err
	}
	return stats, nil
}

func (u *dashboardUsecase) professionalStats(ctx context.Context, professionalID uuid.UUID) (*dto.ProfessionalStats, error) {
	stats := &dto.ProfessionalStats{}

	dayStart := startOfDay(time.Now().UTC())
	today, err := u.appointmentRepo.CountBetween(ctx, u.db, &entity.AppointmentFilter{
		ProfessionalID: &professionalID,
		Statuses: []entity.AppointmentStatus{
			entity.AppointmentStatusPending,
			entity.AppointmentStatusConfirmed,
			entity.AppointmentStatusCompleted,
		},
	}, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	stats.TodayAppointments = today

	pending, err := u.appointmentRepo.CountByStatus(ctx, u.db, &entity.AppointmentFilter{
		ProfessionalID: &professionalID,
		Statuses:       []entity.AppointmentStatus{entity.AppointmentStatusPending},
	})
	if err != nil {
		return nil, err
	}
	for _, c := range pending {
		stats.PendingAppointments += c.Count
	}

	if stats.TotalPatients, err = u.appointmentRepo.CountDistinctPatients(ctx, u.db, professionalID); err != nil {
		return nil, err
	}

	ratings, err := u.reviewRepo.RatingSummaries(ctx, u.db, []uuid.UUID{professionalID})
	if err != nil {
		return nil, err
	}
	if summary, ok := ratings[professionalID]; ok {
		stats.AverageRating = summary.Average
		stats.ReviewCount = summary.Count
	}
	return stats, nil
}

func (u *dashboardUsecase) adminStats(ctx context.Context) (*dto.AdminStats, error) {
	stats := &dto.AdminStats{
		UsersByRole:          map[string]int64{},
		AppointmentsByStatus: map[string]int64{},
	}

	roles, err := u.roleRepo.FindAll(ctx, u.db)
	if err != nil {
		return nil, err
	}
	byRole, err := u.userRepo.CountByRole(ctx, u.db)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		stats.UsersByRole[role.RoleName] = byRole[role.ID]
	}

	byStatus, err := u.appointmentRepo.CountByStatus(ctx, u.db, nil)
	if err != nil {
		return nil, err
	}
	for _, c := range byStatus {
		stats.AppointmentsByStatus[c.Status] = c.Count
	}

	if stats.OpenSupportTickets, err = u.ticketRepo.CountByStatus(ctx, u.db, entity.TicketStatusOpen, entity.TicketStatusInProgress); err != nil {
		return nil, err
	}

	lowStock, err := u.supplyRepo.FindAll(ctx, &entity.SupplyFilter{LowStock: true})
	if err != nil {
		return nil, err
	}
	stats.LowStockSupplies = len(lowStock)

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	transactions, err := u.transactionRepo.FindAll(ctx, &entity.TransactionFilter{
		Status: entity.TransactionStatusCompleted,
		From:   &monthStart,
		To:     &now,
	})
	if err != nil {
		return nil, err
	}
	month := summarizeTransactions(transactions)
	stats.MonthIncome = month.TotalIncome
	stats.MonthExpense = month.TotalExpense

	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
