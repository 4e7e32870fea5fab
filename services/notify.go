package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"barber_flow_app_go/config"
	"barber_flow_app_go/models"

	"gorm.io/gorm"
)

// PushSender delivers a payload to one push subscription. The Web Push
// transport itself (VAPID keys, payload encryption) lives outside this
// engine; the engine only decides who gets what and records the outcome.
type PushSender interface {
	Send(subscription *models.PushSubscription, payload PushPayload) error
}

// PushPayload is what the customer's device shows
type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag,omitempty"`
}

// PushError carries the transport status code so expired subscriptions can be
// told apart from transient failures
type PushError struct {
	Status  int
	Message string
}

func (e *PushError) Error() string {
	return fmt.Sprintf("push failed with status %d: %s", e.Status, e.Message)
}

// StatusCode returns the transport status
func (e *PushError) StatusCode() int {
	return e.Status
}

// subscriptionExpired reports whether the status means the endpoint is gone
// for good and should be marked inactive rather than retried
func subscriptionExpired(status int) bool {
	switch status {
	case http.StatusNotFound, http.StatusGone, http.StatusUnauthorized:
		return true
	}
	return false
}

// LogPushSender logs pushes instead of sending them; used in test mode and
// as the default until a real transport is wired in deployment
type LogPushSender struct{}

func (LogPushSender) Send(subscription *models.PushSubscription, payload PushPayload) error {
	log.Printf("[PUSH] (test mode) endpoint=%s title=%q body=%q", subscription.Endpoint, payload.Title, payload.Body)
	return nil
}

// ActiveSubscriptions returns the customer's active push subscriptions
func ActiveSubscriptions(database *gorm.DB, customerID string) ([]models.PushSubscription, error) {
	var subs []models.PushSubscription
	err := database.Where("customer_id = ? AND is_active = ?", customerID, true).Find(&subs).Error
	return subs, err
}

// RemindersEnabled checks the customer's notification preferences; a missing
// settings row means reminders are on
func RemindersEnabled(database *gorm.DB, customerID string) (bool, error) {
	var settings models.CustomerNotificationSettings
	err := database.Where("customer_id = ?", customerID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return settings.RemindersEnabled, nil
}

// DispatchPush sends the payload to every given subscription and returns how
// many succeeded and the per-subscription failures. Expired endpoints get
// their subscription marked inactive; one dead device never blocks the rest.
func DispatchPush(database *gorm.DB, sender PushSender, subscriptions []models.PushSubscription, payload PushPayload) (sent int, failures []string) {
	for i := range subscriptions {
		sub := &subscriptions[i]
		err := sender.Send(sub, payload)
		if err == nil {
			sent++
			continue
		}

		failures = append(failures, fmt.Sprintf("%s: %v", sub.Endpoint, err))

		var coded interface{ StatusCode() int }
		if errors.As(err, &coded) && subscriptionExpired(coded.StatusCode()) {
			if dbErr := database.Model(sub).Update("is_active", false).Error; dbErr != nil {
				log.Printf("[PUSH] failed to deactivate expired subscription %s: %v", sub.ID, dbErr)
			}
		}
	}
	return sent, failures
}

// SendCancellationNotice informs the counterpart of a cancellation over every
// channel an address exists for. Called fire-and-forget from the cancel flow.
func SendCancellationNotice(database *gorm.DB, cfg *config.Config, reservation *models.Reservation, cancelledBy string) error {
	loc := Location(cfg.Timezone)
	when := fmt.Sprintf("%s at %s", DateKey(reservation.StartTime, loc), HHMM(reservation.StartTime, loc))

	logRow := &models.NotificationLog{
		NotificationType: models.NotificationTypeCancellation,
		ReservationID:    &reservation.ID,
		OccurrenceID:     reservation.ID,
		Status:           models.NotificationStatusPending,
	}

	var lastErr error
	switch cancelledBy {
	case models.CancelledByCustomer:
		// Tell the barber their slot opened up
		if reservation.Barber.Email != nil {
			lastErr = SendEmail(cfg, &Email{
				To:       []string{*reservation.Barber.Email},
				Subject:  "Reservation cancelled",
				TextBody: fmt.Sprintf("The reservation on %s was cancelled by the customer.", when),
			})
		}
		if reservation.Barber.Phone != nil {
			if err := SendSMS(cfg, *reservation.Barber.Phone,
				fmt.Sprintf("Reservation on %s was cancelled by the customer.", when)); err != nil {
				lastErr = err
			}
		}
	default:
		// Barber, admin or breakout cancelled: tell the customer
		if reservation.Customer == nil {
			return nil // walk-in, nobody to notify
		}
		logRow.CustomerID = &reservation.Customer.ID
		if reservation.Customer.Email != nil {
			lastErr = SendEmail(cfg, &Email{
				To:      []string{*reservation.Customer.Email},
				Subject: "Your appointment was cancelled",
				TextBody: fmt.Sprintf("Your appointment on %s was cancelled by the barbershop. Book a new one at %s.",
					when, cfg.AppURL),
			})
		}
		if reservation.Customer.Phone != nil {
			if err := SendSMS(cfg, *reservation.Customer.Phone,
				fmt.Sprintf("Your appointment on %s was cancelled by the barbershop.", when)); err != nil {
				lastErr = err
			}
		}
	}

	// Audit the attempt regardless of direction; cancellation notices are
	// best-effort so a FAILED row is informational, not retried
	logRow.Status = models.NotificationStatusSent
	if lastErr != nil {
		logRow.Status = models.NotificationStatusFailed
		detail := lastErr.Error()
		logRow.Detail = &detail
	}
	if err := database.Create(logRow).Error; err != nil {
		log.Printf("[NOTIFY] failed to log cancellation notice for %s: %v", reservation.ID, err)
	}

	return lastErr
}
