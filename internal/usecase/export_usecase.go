package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"
	"medconnect/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrUnknownExportResource = errors.New("unknown export resource")

const (
	ExportAppointments = "appointments"
	ExportFinancial    = "financial"
	ExportSupplies     = "supplies"
)

// ExportFile is a report ready to be streamed back as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Format      service.ExportFormat
	Table       *service.Table
}

type ExportUsecase interface {
	Export(ctx context.Context, resource string, format service.ExportFormat) (*ExportFile, error)
}

type exportUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	transactionRepo repository.FinancialTransactionRepository
	supplyRepo      repository.SupplyRepository
}

func NewExportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	transactionRepo repository.FinancialTransactionRepository,
	supplyRepo repository.SupplyRepository,
) ExportUsecase {
	return &exportUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		transactionRepo: transactionRepo,
		supplyRepo:      supplyRepo,
	}
}

// Export applies the same role rules as the matching list endpoint:
// appointments are scoped to the caller, financial data is admin only and
// supplies are staff only.
func (u *exportUsecase) Export(ctx context.Context, resource string, format service.ExportFormat) (*ExportFile, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var table *service.Table
	switch resource {
	case ExportAppointments:
		table, err = u.appointmentsTable(ctx, a)
	case ExportFinancial:
		if !a.IsAdmin() {
			return nil, ErrForbidden
		}
		table, err = u.financialTable(ctx)
	case ExportSupplies:
		if !a.IsAdmin() && !a.IsProfessional() {
			return nil, ErrForbidden
		}
		table, err = u.suppliesTable(ctx)
	default:
		return nil, ErrUnknownExportResource
	}
	if err != nil {
		u.log.Warnf("Failed to build %s export: %+v", resource, err)
		return nil, err
	}

	return &ExportFile{
		Filename:    exportFilename(resource, format, time.Now().UTC()),
		ContentType: format.ContentType(),
		Format:      format,
		Table:       table,
	}, nil
}

func (u *exportUsecase) appointmentsTable(ctx context.Context, a actor) (*service.Table, error) {
	appointments, _, err := u.appointmentRepo.FindAll(ctx, u.db, scopeToActor(a))
	if err != nil {
		return nil, err
	}

	table := &service.Table{
		Sheet:   "Appointments",
		Headers: []string{"ID", "Patient", "Professional", "Scheduled At", "Duration (min)", "Type", "Status", "Reason"},
	}
	for _, ap := range appointments {
		table.Rows = append(table.Rows, []string{
			ap.ID.String(),
			ap.Patient.FullName,
			ap.Professional.FullName,
			ap.ScheduledAt.Format(time.RFC3339),
			strconv.Itoa(ap.DurationMinutes),
			string(ap.Type),
			string(ap.Status),
			ap.Reason,
		})
	}
	return table, nil
}

func (u *exportUsecase) financialTable(ctx context.Context) (*service.Table, error) {
	transactions, err := u.transactionRepo.FindAll(ctx, &entity.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	table := &service.Table{
		Sheet:   "Financial",
		Headers: []string{"ID", "Date", "Type", "Category", "Description", "Amount", "Payment Method", "Status"},
	}
	for _, t := range transactions {
		table.Rows = append(table.Rows, []string{
			t.ID,
			t.Date.Format(dto.DateLayout),
			string(t.Type),
			t.Category,
			t.Description,
			t.Amount.StringFixed(2),
			t.PaymentMethod,
			string(t.Status),
		})
	}
	return table, nil
}

func (u *exportUsecase) suppliesTable(ctx context.Context) (*service.Table, error) {
	supplies, err := u.supplyRepo.FindAll(ctx, &entity.SupplyFilter{})
	if err != nil {
		return nil, err
	}

	table := &service.Table{
		Sheet:   "Supplies",
		Headers: []string{"ID", "Name", "Category", "Quantity", "Min Quantity", "Unit", "Unit Cost", "Supplier", "Expiry Date", "Low Stock"},
	}
	for _, s := range supplies {
		expiry := ""
		if s.ExpiryDate != nil {
			expiry = s.ExpiryDate.Format(dto.DateLayout)
		}
		table.Rows = append(table.Rows, []string{
			s.ID,
			s.Name,
			s.Category,
			strconv.Itoa(s.Quantity),
			strconv.Itoa(s.MinQuantity),
			s.Unit,
			s.UnitCost.StringFixed(2),
			s.Supplier,
			expiry,
			strconv.FormatBool(s.IsLowStock()),
		})
	}
	return table, nil
}

func exportFilename(resource string, format service.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", resource, now.Format(dto.DateLayout), format)
}
