package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medconnect/internal/converter"
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"
	"medconnect/internal/infrastructure/metrics"
	"medconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrAppointmentInPast      = errors.New("scheduled time must be in the future")
	ErrAppointmentNotEditable = errors.New("only pending or confirmed appointments can be edited")
	ErrInvalidTransition      = errors.New("appointment status transition is not allowed")
	ErrProfessionalInactive   = errors.New("professional is not accepting appointments")
	ErrInvalidStatus          = errors.New("invalid appointment status")
)

// reminderLeadTime is how long before the visit the patient reminder fires
const reminderLeadTime = 24 * time.Hour

const appointmentReminderTitle = "Upcoming appointment"

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	List(ctx context.Context, query *dto.AppointmentListQuery) ([]dto.AppointmentResponse, int64, error)
	Upcoming(ctx context.Context, limit int) ([]dto.AppointmentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db                      *gorm.DB
	log                     *logrus.Logger
	appointmentRepo         repository.AppointmentRepository
	professionalProfileRepo repository.ProfessionalProfileRepository
	notificationRepo        repository.NotificationRepository
	reminderRepo            repository.ReminderRepository
	auditService            service.AuditService
	statsCache              service.StatsCache
	metrics                 *metrics.AppointmentMetrics
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	professionalProfileRepo repository.ProfessionalProfileRepository,
	notificationRepo repository.NotificationRepository,
	reminderRepo repository.ReminderRepository,
	auditService service.AuditService,
	statsCache service.StatsCache,
	appointmentMetrics *metrics.AppointmentMetrics,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                      db,
		log:                     log,
		appointmentRepo:         appointmentRepo,
		professionalProfileRepo: professionalProfileRepo,
		notificationRepo:        notificationRepo,
		reminderRepo:            reminderRepo,
		auditService:            auditService,
		statsCache:              statsCache,
		metrics:                 appointmentMetrics,
	}
}

// Create books an appointment for the calling patient.
//
// Flow:
// 1. Validate the professional exists and is active
// 2. Validate the time is in the future
// 3. Insert the appointment, the professional's notification and the patient reminder in one transaction
// 4. Invalidate both dashboards
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	professionalID, err := uuid.Parse(req.ProfessionalID)
	if err != nil {
		return nil, ErrInvalidID
	}
	hospitalID, err := parseOptionalUUID(req.HospitalID)
	if err != nil {
		return nil, err
	}
	specialtyID, err := parseOptionalUUID(req.SpecialtyID)
	if err != nil {
		return nil, err
	}

	scheduledAt := req.ScheduledAt.UTC()
	if !scheduledAt.After(time.Now().UTC()) {
		return nil, ErrAppointmentInPast
	}

	profile, err := u.professionalProfileRepo.FindByUserID(ctx, u.db, professionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", professionalID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfessionalNotFound
	}
	if !profile.User.IsActive {
		return nil, ErrProfessionalInactive
	}

	// Fall back to where and what the professional practises
	if hospitalID == nil {
		hospitalID = profile.HospitalID
	}
	if specialtyID == nil {
		specialtyID = profile.SpecialtyID
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = entity.DefaultAppointmentDuration
	}

	appointment := &entity.Appointment{
		PatientID:       a.ID,
		ProfessionalID:  professionalID,
		HospitalID:      hospitalID,
		SpecialtyID:     specialtyID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: duration,
		Type:            entity.AppointmentType(req.Type),
		Status:          entity.AppointmentStatusPending,
		Reason:          req.Reason,
		Notes:           req.Notes,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	notification := newNotification(professionalID, entity.NotificationTypeAppointment,
		"New appointment request",
		fmt.Sprintf("A new appointment was requested for %s.", scheduledAt.Format(time.RFC1123)),
		appointmentLink(appointment.ID))
	if err := u.notificationRepo.Create(ctx, tx, notification); err != nil {
		u.log.Warnf("Failed to create appointment notification: %+v", err)
		return nil, err
	}

	if remindAt := scheduledAt.Add(-reminderLeadTime); remindAt.After(time.Now().UTC()) {
		appointmentID := appointment.ID
		reminder := &entity.Reminder{
			UserID:        a.ID,
			AppointmentID: &appointmentID,
			Title:         appointmentReminderTitle,
			Description:   appointmentReminderText(scheduledAt),
			RemindAt:      remindAt,
		}
		if err := u.reminderRepo.Create(ctx, tx, reminder); err != nil {
			u.log.Warnf("Failed to create appointment reminder: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.LogCreate(ctx, tx, &a.ID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointmentAuditValue(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.metrics.ObserveEvent("created")
	u.invalidateStats(ctx, appointment)
	u.log.Infof("Appointment created: id=%s, patient=%s, professional=%s, at=%s", appointment.ID, a.ID, professionalID, scheduledAt.Format(time.RFC3339))

	return u.reload(ctx, appointment), nil
}

func (u *appointmentUsecase) List(ctx context.Context, query *dto.AppointmentListQuery) ([]dto.AppointmentResponse, int64, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	statuses, err := parseStatuses(query.Statuses)
	if err != nil {
		return nil, 0, err
	}
	page, limit := NormalizePage(query.Page, query.Limit)

	filter := scopeToActor(a)
	filter.Statuses = statuses
	filter.From = query.From
	filter.To = query.To
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	appointments, total, err := u.appointmentRepo.FindAll(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, 0, err
	}
	return converter.AppointmentsToResponses(appointments), total, nil
}

// Upcoming returns the caller's non-cancelled appointments from now on,
// including ones already marked completed.
func (u *appointmentUsecase) Upcoming(ctx context.Context, limit int) ([]dto.AppointmentResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	_, limit = NormalizePage(1, limit)

	now := time.Now().UTC()
	filter := scopeToActor(a)
	filter.Statuses = []entity.AppointmentStatus{
		entity.AppointmentStatusPending,
		entity.AppointmentStatusConfirmed,
		entity.AppointmentStatusCompleted,
	}
	filter.From = &now
	filter.Limit = limit

	appointments, _, err := u.appointmentRepo.FindAll(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list upcoming appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.findAccessible(ctx, u.db, a, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.findAccessible(ctx, tx, a, id)
	if err != nil {
		return nil, err
	}
	if !appointment.IsEditable() {
		return nil, ErrAppointmentNotEditable
	}
	old := appointmentAuditValue(appointment)
	previousAt := appointment.ScheduledAt

	if req.ScheduledAt != nil {
		scheduledAt := req.ScheduledAt.UTC()
		if !scheduledAt.After(time.Now().UTC()) {
			return nil, ErrAppointmentInPast
		}
		appointment.ScheduledAt = scheduledAt
	}
	if req.DurationMinutes != nil {
		appointment.DurationMinutes = *req.DurationMinutes
	}
	if req.Type != nil {
		appointment.Type = entity.AppointmentType(*req.Type)
	}
	if req.Reason != nil {
		appointment.Reason = *req.Reason
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if err := u.appointmentRepo.Update(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	if !appointment.ScheduledAt.Equal(previousAt) {
		if err := u.moveReminders(ctx, tx, appointment, appointment.ScheduledAt.Sub(previousAt)); err != nil {
			return nil, err
		}
	}

	if err := u.auditService.LogUpdate(ctx, tx, &a.ID, entity.AuditActionAppointmentUpdate, "appointment", id.String(), old, appointmentAuditValue(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.metrics.ObserveEvent("updated")
	u.invalidateStats(ctx, appointment)
	return u.reload(ctx, appointment), nil
}

// UpdateStatus moves an appointment along its lifecycle.
//
// pending -> confirmed: professional or admin
// pending|confirmed -> cancelled: either participant or admin
// confirmed -> completed: professional or admin
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	next := entity.AppointmentStatus(req.Status)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.findAccessible(ctx, tx, a, id)
	if err != nil {
		return nil, err
	}

	if next != entity.AppointmentStatusCancelled && !a.IsAdmin() && appointment.ProfessionalID != a.ID {
		return nil, ErrForbidden
	}
	if !appointment.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	previous := appointment.Status
	affected, err := u.appointmentRepo.UpdateStatus(ctx, tx, id, previous, next, req.CancelReason)
	if err != nil {
		u.log.Warnf("Failed to update appointment status %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		// another request moved it first
		return nil, ErrInvalidTransition
	}
	appointment.Status = next
	if appointment.IsCancelled() {
		appointment.CancelReason = req.CancelReason
		if _, err := u.reminderRepo.DeleteUnsentByAppointmentID(ctx, tx, id); err != nil {
			u.log.Warnf("Failed to drop reminders of appointment %s: %+v", id, err)
			return nil, err
		}
	}

	for _, recipient := range statusRecipients(a, appointment) {
		notification := newNotification(recipient, entity.NotificationTypeAppointment,
			fmt.Sprintf("Appointment %s", next),
			statusMessage(appointment, next),
			appointmentLink(appointment.ID))
		if err := u.notificationRepo.Create(ctx, tx, notification); err != nil {
			u.log.Warnf("Failed to create status notification: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.LogUpdate(ctx, tx, &a.ID, entity.AuditActionAppointmentStatus, "appointment", id.String(),
		map[string]interface{}{"status": previous},
		map[string]interface{}{"status": next, "cancel_reason": req.CancelReason}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.metrics.ObserveEvent(string(next))
	u.invalidateStats(ctx, appointment)
	u.log.Infof("Appointment status changed: id=%s, %s -> %s, by=%s", id, previous, next, a.ID)

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if _, err := u.appointmentRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &a.ID, entity.AuditActionAppointmentDelete, "appointment", id.String(), appointmentAuditValue(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.metrics.ObserveEvent("deleted")
	u.invalidateStats(ctx, appointment)
	return nil
}

// moveReminders shifts the appointment's pending reminders by delta and
// refreshes the text of the automatic one.
func (u *appointmentUsecase) moveReminders(ctx context.Context, tx *gorm.DB, appointment *entity.Appointment, delta time.Duration) error {
	reminders, err := u.reminderRepo.FindUnsentByAppointmentID(ctx, tx, appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to find reminders of appointment %s: %+v", appointment.ID, err)
		return err
	}

	for i := range reminders {
		reminder := &reminders[i]
		reminder.RemindAt = reminder.RemindAt.Add(delta)
		if reminder.Title == appointmentReminderTitle {
			reminder.Description = appointmentReminderText(appointment.ScheduledAt)
		}
		if err := u.reminderRepo.Update(ctx, tx, reminder); err != nil {
			u.log.Warnf("Failed to move reminder %s: %+v", reminder.ID, err)
			return err
		}
	}
	return nil
}

// findAccessible loads the appointment if the actor is a participant or an admin.
func (u *appointmentUsecase) findAccessible(ctx context.Context, db *gorm.DB, a actor, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !a.IsAdmin() && !appointment.HasParticipant(a.ID) {
		return nil, ErrForbidden
	}
	return appointment, nil
}

// reload re-reads the appointment with its relations; the bare entity is
// returned if that fails since the write already committed.
func (u *appointmentUsecase) reload(ctx context.Context, appointment *entity.Appointment) *dto.AppointmentResponse {
	full, err := u.appointmentRepo.FindByID(ctx, u.db, appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment)
	}
	return converter.AppointmentToResponse(full)
}

func (u *appointmentUsecase) invalidateStats(ctx context.Context, appointment *entity.Appointment) {
	if err := u.statsCache.Invalidate(ctx, appointment.PatientID, appointment.ProfessionalID); err != nil {
		u.log.Warnf("Failed to invalidate dashboard stats: %+v", err)
	}
}

func scopeToActor(a actor) *entity.AppointmentFilter {
	filter := &entity.AppointmentFilter{}
	switch {
	case a.IsPatient():
		filter.PatientID = &a.ID
	case a.IsProfessional():
		filter.ProfessionalID = &a.ID
	}
	return filter
}

func parseStatuses(raw []string) ([]entity.AppointmentStatus, error) {
	statuses := make([]entity.AppointmentStatus, 0, len(raw))
	for _, s := range raw {
		status := entity.AppointmentStatus(s)
		switch status {
		case entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed,
			entity.AppointmentStatusCompleted, entity.AppointmentStatusCancelled:
			statuses = append(statuses, status)
		default:
			return nil, ErrInvalidStatus
		}
	}
	return statuses, nil
}

// statusRecipients is everyone involved except the actor.
func statusRecipients(a actor, appointment *entity.Appointment) []uuid.UUID {
	var recipients []uuid.UUID
	if appointment.PatientID != a.ID {
		recipients = append(recipients, appointment.PatientID)
	}
	if appointment.ProfessionalID != a.ID {
		recipients = append(recipients, appointment.ProfessionalID)
	}
	return recipients
}

func statusMessage(appointment *entity.Appointment, next entity.AppointmentStatus) string {
	msg := fmt.Sprintf("The appointment on %s is now %s.", appointment.ScheduledAt.Format(time.RFC1123), next)
	if next == entity.AppointmentStatusCancelled && appointment.CancelReason != "" {
		msg += " Reason: " + appointment.CancelReason
	}
	return msg
}

func appointmentLink(id uuid.UUID) string {
	return "/appointments/" + id.String()
}

func appointmentAuditValue(a *entity.Appointment) map[string]interface{} {
	return map[string]interface{}{
		"patient_id":       a.PatientID,
		"professional_id":  a.ProfessionalID,
		"scheduled_at":     a.ScheduledAt,
		"duration_minutes": a.DurationMinutes,
		"type":             a.Type,
		"status":           a.Status,
		"reason":           a.Reason,
	}
}

func newNotification(userID uuid.UUID, kind entity.NotificationType, title, message, link string) *entity.Notification {
	return &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    kind,
		Link:    link,
	}
}

func appointmentReminderText(scheduledAt time.Time) string {
	return fmt.Sprintf("You have an appointment on %s.", scheduledAt.Format(time.RFC1123))
}
