package jobs

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"barber_flow_app_go/config"
	"barber_flow_app_go/models"
	"barber_flow_app_go/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderResults summarizes one reminder run
type ReminderResults struct {
	Checked        int      `json:"checked"`
	Sent           int      `json:"sent"`
	AlreadySent    int      `json:"already_sent"`
	NoSubscription int      `json:"no_subscription"`
	Disabled       int      `json:"disabled"`
	Failed         int      `json:"failed"`
	Errors         []string `json:"errors,omitempty"`
}

// occurrence is one appointment instance due a reminder today: either a
// concrete reservation or a recurring appointment projected onto today
type occurrence struct {
	ID            string // reservation id, or "recurring-{id}-{YYYYMMDD}"
	ReservationID *string
	RecurringID   *string
	CustomerID    string
	StartTime     time.Time
	ServiceName   string
	BarberName    string
}

// ProcessReminders finds every appointment happening later today that has
// entered its barber's reminder lead window and pushes a reminder to the
// customer, at most once per occurrence per day. Safe to run repeatedly;
// the notification log and the recurring last-reminder marker make re-runs
// no-ops for anything already delivered.
func ProcessReminders(database *gorm.DB, cfg *config.Config, sender services.PushSender) (*ReminderResults, error) {
	loc := services.Location(cfg.Timezone)
	now := time.Now().In(loc)
	todayKey := services.DateKey(now, loc)

	settings, err := services.GetSettings(database)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	occurrences, err := dueOccurrences(database, loc, now, settings.ReminderHours)
	if err != nil {
		return nil, err
	}

	results := &ReminderResults{Checked: len(occurrences)}
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := range occurrences {
		occ := occurrences[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, detail := remindOne(database, loc, sender, occ, todayKey)
			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case outcomeSent:
				results.Sent++
			case outcomeAlreadySent:
				results.AlreadySent++
			case outcomeNoSubscription:
				results.NoSubscription++
			case outcomeDisabled:
				results.Disabled++
			case outcomeFailed:
				results.Failed++
				if detail != "" {
					results.Errors = append(results.Errors, detail)
				}
			}
		}()
	}
	wg.Wait()

	log.Printf("Reminder run: checked=%d sent=%d already_sent=%d no_subscription=%d disabled=%d failed=%d",
		results.Checked, results.Sent, results.AlreadySent, results.NoSubscription, results.Disabled, results.Failed)
	return results, nil
}

type reminderOutcome int

const (
	outcomeSent reminderOutcome = iota
	outcomeAlreadySent
	outcomeNoSubscription
	outcomeDisabled
	outcomeFailed
)

// dueOccurrences collects today's reservations and recurring projections whose
// start falls inside [now, now + barber lead window]
func dueOccurrences(database *gorm.DB, loc *time.Location, now time.Time, shopLeadHours int) ([]occurrence, error) {
	var out []occurrence

	dayEnd := services.DayEnd(now, loc)

	var reservations []models.Reservation
	err := database.Preload("Barber").Preload("Service").
		Where("status = ? AND customer_id IS NOT NULL", models.ReservationStatusConfirmed).
		Where("start_time >= ? AND start_time < ?", now.UTC(), dayEnd.UTC()).
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}

	for i := range reservations {
		r := &reservations[i]
		lead := time.Duration(r.Barber.EffectiveReminderHours(shopLeadHours)) * time.Hour
		if r.StartTime.After(now.Add(lead)) {
			continue // not yet in the window
		}
		out = append(out, occurrence{
			ID:            r.ID,
			ReservationID: &r.ID,
			CustomerID:    *r.CustomerID,
			StartTime:     r.StartTime,
			ServiceName:   r.Service.Name,
			BarberName:    r.Barber.Name,
		})
	}

	var recurring []models.RecurringAppointment
	err = database.Preload("Barber").Preload("Service").
		Where("is_active = ? AND day_of_week = ?", true, services.WeekdayKey(now, loc)).
		Find(&recurring).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recurring appointments: %w", err)
	}

	todayKey := services.DateKey(now, loc)
	closedBarbers := make(map[string]bool)
	for i := range recurring {
		ra := &recurring[i]
		closed, ok := closedBarbers[ra.BarberID]
		if !ok {
			closed, err = services.BarberClosedOn(database, ra.BarberID, todayKey)
			if err != nil {
				return nil, fmt.Errorf("failed to check closures: %w", err)
			}
			closedBarbers[ra.BarberID] = closed
		}
		if closed {
			continue // shop or barber closed today, no occurrence happens
		}
		start, err := services.OnDate(now, ra.TimeSlot, loc)
		if err != nil {
			log.Printf("Skipping recurring appointment %s with bad time slot %q: %v", ra.ID, ra.TimeSlot, err)
			continue
		}
		if start.Before(now) {
			continue // already started or past
		}
		lead := time.Duration(ra.Barber.EffectiveReminderHours(shopLeadHours)) * time.Hour
		if start.After(now.Add(lead)) {
			continue
		}
		out = append(out, occurrence{
			ID:          fmt.Sprintf("recurring-%s-%s", ra.ID, services.CompactDateKey(now, loc)),
			RecurringID: &ra.ID,
			CustomerID:  ra.CustomerID,
			StartTime:   start,
			ServiceName: ra.Service.Name,
			BarberName:  ra.Barber.Name,
		})
	}

	return out, nil
}

// remindOne handles one occurrence end to end: dedup check, preference check,
// subscription lookup, PENDING log row, dispatch, terminal status
func remindOne(database *gorm.DB, loc *time.Location, sender services.PushSender, occ occurrence, todayKey string) (reminderOutcome, string) {
	delivered, err := alreadyDelivered(database, occ.ID)
	if err != nil {
		return outcomeFailed, fmt.Sprintf("%s: dedup check failed: %v", occ.ID, err)
	}
	if delivered {
		return outcomeAlreadySent, ""
	}

	// The recurring marker is a second, cheaper guard: once a reminder goes
	// out for today's projection the row carries today's date key
	if occ.RecurringID != nil {
		var ra models.RecurringAppointment
		if err := database.First(&ra, "id = ?", *occ.RecurringID).Error; err == nil && ra.ReminderSentOn(todayKey) {
			return outcomeAlreadySent, ""
		}
	}

	enabled, err := services.RemindersEnabled(database, occ.CustomerID)
	if err != nil {
		return outcomeFailed, fmt.Sprintf("%s: preference check failed: %v", occ.ID, err)
	}
	if !enabled {
		return outcomeDisabled, ""
	}

	subs, err := services.ActiveSubscriptions(database, occ.CustomerID)
	if err != nil {
		return outcomeFailed, fmt.Sprintf("%s: subscription lookup failed: %v", occ.ID, err)
	}
	if len(subs) == 0 {
		return outcomeNoSubscription, ""
	}

	logRow := &models.NotificationLog{
		NotificationType: models.NotificationTypeReminder,
		ReservationID:    occ.ReservationID,
		OccurrenceID:     occ.ID,
		CustomerID:       &occ.CustomerID,
		Status:           models.NotificationStatusPending,
	}
	if err := database.Create(logRow).Error; err != nil {
		return outcomeFailed, fmt.Sprintf("%s: failed to create notification log: %v", occ.ID, err)
	}

	payload := services.PushPayload{
		Title: "Upcoming appointment",
		Body: fmt.Sprintf("%s with %s today at %s",
			occ.ServiceName, occ.BarberName, services.HHMM(occ.StartTime, loc)),
		Tag: occ.ID,
	}
	sent, failures := services.DispatchPush(database, sender, subs, payload)

	status := models.NotificationStatusSent
	switch {
	case sent == 0:
		status = models.NotificationStatusFailed
	case len(failures) > 0:
		status = models.NotificationStatusPartial
	}

	updates := map[string]interface{}{"status": status}
	if len(failures) > 0 {
		detail := strings.Join(failures, "; ")
		updates["detail"] = detail
	}
	if err := database.Model(logRow).Updates(updates).Error; err != nil {
		log.Printf("Failed to finalize notification log %s: %v", logRow.ID, err)
	}

	if status == models.NotificationStatusFailed {
		return outcomeFailed, fmt.Sprintf("%s: all devices failed: %s", occ.ID, strings.Join(failures, "; "))
	}

	if occ.RecurringID != nil {
		if err := database.Model(&models.RecurringAppointment{}).
			Where("id = ?", *occ.RecurringID).
			Update("last_reminder_date", todayKey).Error; err != nil {
			log.Printf("Failed to mark reminder date on recurring appointment %s: %v", *occ.RecurringID, err)
		}
	}

	return outcomeSent, ""
}

// alreadyDelivered reports whether a delivered (SENT or PARTIAL) log row
// already exists for the occurrence. PENDING rows stranded by a crash do not
// count, so those occurrences get retried.
func alreadyDelivered(database *gorm.DB, occurrenceID string) (bool, error) {
	var count int64
	err := database.Model(&models.NotificationLog{}).
		Where("occurrence_id = ? AND status IN (?)", occurrenceID,
			[]string{models.NotificationStatusSent, models.NotificationStatusPartial}).
		Count(&count).Error
	return count > 0, err
}

// StartReminderScheduler runs ProcessReminders on the configured cron spec in
// the shop timezone. Returns the scheduler so the caller can Stop it.
func StartReminderScheduler(database *gorm.DB, cfg *config.Config, sender services.PushSender) *cron.Cron {
	loc := services.Location(cfg.Timezone)
	c := cron.New(cron.WithLocation(loc))

	_, err := c.AddFunc(cfg.ReminderCronSpec, func() {
		if _, err := ProcessReminders(database, cfg, sender); err != nil {
			log.Printf("Reminder run failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Invalid reminder cron spec %q: %v", cfg.ReminderCronSpec, err)
		return c
	}

	c.Start()
	log.Printf("Reminder scheduler started (%s, %s)", cfg.ReminderCronSpec, cfg.Timezone)
	return c
}
