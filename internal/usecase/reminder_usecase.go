package usecase

import (
	"context"
	"errors"
	"time"

	"medconnect/internal/converter"
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"
	"medconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrReminderNotFound = errors.New("reminder not found")

// dispatchBatchSize bounds how many due reminders one sweep handles
const dispatchBatchSize = 100

type ReminderUsecase interface {
	List(ctx context.Context) ([]dto.ReminderResponse, error)
	Create(ctx context.Context, req *dto.ReminderRequest) (*dto.ReminderResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.ReminderRequest) (*dto.ReminderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DispatchDue(ctx context.Context) (int, error)
}

type reminderUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	reminderRepo     repository.ReminderRepository
	notificationRepo repository.NotificationRepository
	appointmentRepo  repository.AppointmentRepository
	statsCache       service.StatsCache
}

func NewReminderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	reminderRepo repository.ReminderRepository,
	notificationRepo repository.NotificationRepository,
	appointmentRepo repository.AppointmentRepository,
	statsCache service.StatsCache,
) ReminderUsecase {
	return &reminderUsecase{
		db:               db,
		log:              log,
		reminderRepo:     reminderRepo,
		notificationRepo: notificationRepo,
		appointmentRepo:  appointmentRepo,
		statsCache:       statsCache,
	}
}

func (u *reminderUsecase) List(ctx context.Context) ([]dto.ReminderResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	reminders, err := u.reminderRepo.FindByUserID(ctx, u.db, a.ID)
	if err != nil {
		u.log.Warnf("Failed to list reminders: %+v", err)
		return nil, err
	}
	return converter.RemindersToResponses(reminders), nil
}

func (u *reminderUsecase) Create(ctx context.Context, req *dto.ReminderRequest) (*dto.ReminderResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointmentID, err := u.checkAppointment(ctx, a, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	reminder := &entity.Reminder{
		UserID:        a.ID,
		AppointmentID: appointmentID,
		Title:         req.Title,
		Description:   req.Description,
		RemindAt:      req.RemindAt.UTC(),
	}
	if err := u.reminderRepo.Create(ctx, u.db, reminder); err != nil {
		u.log.Warnf("Failed to create reminder: %+v", err)
		return nil, err
	}
	return converter.ReminderToResponse(reminder), nil
}

// Update replaces the reminder's fields. Moving it to a later time re-arms it.
func (u *reminderUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.ReminderRequest) (*dto.ReminderResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	reminder, err := u.findOwned(ctx, a, id)
	if err != nil {
		return nil, err
	}
	appointmentID, err := u.checkAppointment(ctx, a, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	remindAt := req.RemindAt.UTC()
	if reminder.IsSent && remindAt.After(time.Now().UTC()) {
		reminder.IsSent = false
	}
	reminder.AppointmentID = appointmentID
	reminder.Title = req.Title
	reminder.Description = req.Description
	reminder.RemindAt = remindAt

	if err := u.reminderRepo.Update(ctx, u.db, reminder); err != nil {
		u.log.Warnf("Failed to update reminder %s: %+v", id, err)
		return nil, err
	}
	return converter.ReminderToResponse(reminder), nil
}

func (u *reminderUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := actorFromContext(ctx)
	if err != nil {
		return err
	}
	if _, err := u.findOwned(ctx, a, id); err != nil {
		return err
	}

	if _, err := u.reminderRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete reminder %s: %+v", id, err)
		return err
	}
	return nil
}

// DispatchDue marks due reminders as sent and leaves an in-app notification
// for each. MarkSent is conditional, so overlapping sweeps never notify twice.
// Reminders of an appointment that is gone or no longer scheduled are retired
// without a notification.
func (u *reminderUsecase) DispatchDue(ctx context.Context) (int, error) {
	due, err := u.reminderRepo.FindDue(ctx, u.db, time.Now().UTC(), dispatchBatchSize)
	if err != nil {
		u.log.Warnf("Failed to find due reminders: %+v", err)
		return 0, err
	}

	sent := 0
	for i := range due {
		ok, err := u.dispatch(ctx, &due[i])
		if err != nil {
			u.log.Warnf("Failed to dispatch reminder %s: %+v", due[i].ID, err)
			continue
		}
		if ok {
			sent++
			if err := u.statsCache.Invalidate(ctx, due[i].UserID); err != nil {
				u.log.Warnf("Failed to invalidate dashboard stats: %+v", err)
			}
		}
	}
	return sent, nil
}

func (u *reminderUsecase) dispatch(ctx context.Context, reminder *entity.Reminder) (bool, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.reminderRepo.MarkSent(ctx, tx, reminder.ID)
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	link := ""
	if reminder.AppointmentID != nil {
		appointment, err := u.appointmentRepo.FindByID(ctx, tx, *reminder.AppointmentID)
		if err != nil {
			return false, err
		}
		if appointment == nil || !appointment.IsEditable() {
			u.log.Infof("Reminder %s retired: appointment %s is no longer scheduled", reminder.ID, *reminder.AppointmentID)
			return false, tx.Commit().Error
		}
		link = appointmentLink(*reminder.AppointmentID)
	}
	notification := newNotification(reminder.UserID, entity.NotificationTypeReminder, reminder.Title, reminderMessage(reminder), link)
	if err := u.notificationRepo.Create(ctx, tx, notification); err != nil {
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		return false, err
	}
	return true, nil
}

// checkAppointment validates an optional appointment link: it must exist and
// the caller must take part in it.
func (u *reminderUsecase) checkAppointment(ctx context.Context, a actor, raw string) (*uuid.UUID, error) {
	appointmentID, err := parseOptionalUUID(raw)
	if err != nil || appointmentID == nil {
		return appointmentID, err
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, *appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", *appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.HasParticipant(a.ID) {
		return nil, ErrForbidden
	}
	return appointmentID, nil
}

func (u *reminderUsecase) findOwned(ctx context.Context, a actor, id uuid.UUID) (*entity.Reminder, error) {
	reminder, err := u.reminderRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find reminder %s: %+v", id, err)
		return nil, err
	}
	if reminder == nil || reminder.UserID != a.ID {
		return nil, ErrReminderNotFound
	}
	return reminder, nil
}

func reminderMessage(r *entity.Reminder) string {
	if r.Description != "" {
		return r.Description
	}
	return r.Title
}
