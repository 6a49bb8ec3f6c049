package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"medibook/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// reminderLead is how long before the booked slot the reminder fires.
const reminderLead = time.Hour

// NewReminderTask builds the queued task for an upcoming-booking reminder.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler schedules booking reminders on the asynq queue.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	Clock  func() time.Time
	Logger *zap.Logger
}

// ScheduleReminder enqueues a reminder an hour before the booked slot.
// Records without a future slot (emergencies, same-hour bookings) are
// skipped.
func (s *AsynqReminderScheduler) ScheduleReminder(record *models.BookingRecord) error {
	now := time.Now
	if s.Clock != nil {
		now = s.Clock
	}

	slot, ok := slotTime(record)
	if !ok {
		return nil
	}
	fireAt := slot.Add(-reminderLead)
	if !fireAt.After(now()) {
		return nil
	}

	payload := models.ReminderPayload{
		TicketID: record.TicketID,
		Kind:     string(record.Kind),
		Title:    "Upcoming booking",
		Body:     fmt.Sprintf("Your %s booking %s starts at %s.", record.Kind, record.TicketID, slot.Format("15:04")),
		FireDate: fireAt.Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.Enqueue(task, opts...); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("reminder scheduled",
			zap.String("ticketId", record.TicketID), zap.Time("fireAt", fireAt))
	}
	return nil
}

// slotTime derives the booked start time from the frozen draft fields.
func slotTime(record *models.BookingRecord) (time.Time, bool) {
	if date, ok := record.Fields["date"]; ok {
		clock := record.Fields["time"]
		if clock == "" {
			clock = "09:00"
		}
		t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	if start, ok := record.Fields["startDate"]; ok {
		t, err := time.ParseInLocation("2006-01-02 15:04", start+" 08:00", time.Local)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}
