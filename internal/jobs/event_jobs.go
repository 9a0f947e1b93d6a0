package jobs

import (
	"context"
	"time"

	"foundly-backend/internal/logger"
)

const reminderJobTimeout = 5 * time.Minute

// SendEventReminders emails every attendee of events starting within the
// configured reminder window.
func (jr *JobRunner) SendEventReminders() {
	jr.runWithRecovery("SendEventReminders", func() {
		ctx, cancel := context.WithTimeout(context.Background(), reminderJobTimeout)
		defer cancel()

		orgs, err := jr.store.OrganizationRepository.List(ctx)
		if err != nil {
			logger.Error("Reminder job could not list organizations", "error", err)
			return
		}

		window := jr.config.Scheduler.EventReminderWindow
		sent := 0
		for _, org := range orgs {
			events, err := jr.store.EventRepository.ListUpcoming(ctx, org.ID, window)
			if err != nil {
				logger.Error("Reminder job could not list events", "org_id", org.ID, "error", err)
				continue
			}
			for _, event := range events {
				for _, userID := range event.Attendees {
					user, err := jr.store.UserRepository.GetByID(ctx, userID)
					if err != nil || user == nil {
						logger.Warn("Reminder skipped, attendee lookup failed", "user_id", userID, "error", err)
						continue
					}
					if err := jr.services.Email.SendEventReminder(ctx, user.Email, user.Name, event.Title, org.Name); err != nil {
						logger.Warn("Reminder email failed", "user_id", userID, "event_id", event.ID, "error", err)
						continue
					}
					sent++
				}
			}
		}
		logger.Info("Event reminders sent", "count", sent)
	})
}
