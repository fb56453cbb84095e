package notify

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/smilemore/clinic-scheduler/internal/domain/schedule"
	"github.com/smilemore/clinic-scheduler/internal/logging"
	"github.com/smilemore/clinic-scheduler/internal/models"
)

const reminderTemplateCode = "appointment_reminder"

// AppointmentReminder sends next-day WhatsApp reminders for scheduled
// appointments that opted into notifications.
type AppointmentReminder struct {
	db     *gorm.DB
	sender *WhatsappSender
	loc    *time.Location
}

func NewAppointmentReminder(db *gorm.DB, sender *WhatsappSender, loc *time.Location) *AppointmentReminder {
	return &AppointmentReminder{
		db:     db,
		sender: sender,
		loc:    loc,
	}
}

// StartReminderCron schedules the daily reminder sweep.
func (ar *AppointmentReminder) StartReminderCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(ar.loc)

	scheduler.Every(1).Day().At("18:00").Do(func() {
		if err := ar.SendReminders(context.Background()); err != nil {
			logging.Log.Error("reminder sweep failed", zap.Error(err))
		}
	})

	scheduler.StartAsync()
	logging.Log.Info("appointment reminder cron started")

	return scheduler
}

// SendReminders covers tomorrow's local calendar day.
func (ar *AppointmentReminder) SendReminders(ctx context.Context) error {
	now := time.Now().In(ar.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, ar.loc).AddDate(0, 0, 1)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var appointments []models.Appointment
	if err := ar.db.WithContext(ctx).
		Preload("Patient").
		Preload("Clinic").
		Where(
			"status = ? AND send_notifications = ? AND start_ts >= ? AND start_ts < ?",
			string(domain.StatusScheduled), true, dayStart, dayEnd,
		).
		Order("start_ts ASC").
		Find(&appointments).Error; err != nil {
		return err
	}

	var tpl models.WaTemplate
	if err := ar.db.WithContext(ctx).
		Where("code = ?", reminderTemplateCode).
		First(&tpl).Error; err != nil {
		logging.Log.Warn("reminder template missing, skipping sweep",
			zap.String("code", reminderTemplateCode))
		return nil
	}

	for _, ap := range appointments {
		if ap.Patient == nil || ap.Patient.Phone == "" {
			continue
		}

		start := ap.StartTS.In(ar.loc)
		message := Render(&tpl, ap.Patient.NotificationLanguageIsHebrew, map[string]string{
			"patient": ap.Patient.FullName(),
			"clinic":  ap.Clinic.Name,
			"date":    start.Format("02.01.2006"),
			"time":    start.Format("15:04"),
		})

		if err := ar.sender.SendMessage(ctx, ap.Patient.Phone, message); err != nil {
			logging.Log.Error("reminder send failed",
				zap.String("patient", ap.Patient.FullName()),
				zap.Error(err))
			continue
		}
	}

	return nil
}
