package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	// Timezone is the single IANA zone all slot math is pinned to.
	// Slot generation must be stable regardless of where the server runs.
	Timezone string
	// Scheduling
	SlotMinutes         int
	MaxBookingDaysAhead int
	// Reminders
	ReminderHours        int    // default lead time, barbers can override
	ReminderCronSpec     string // cadence for the background job
	NotificationTestMode bool   // when true, pushes/SMS are logged, not sent
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool
	// SMS (Twilio)
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string
	// Other
	AppURL string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		DBPath:               getEnv("DB_PATH", "db/app.db"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		Timezone:             getEnv("SHOP_TIMEZONE", "America/Bogota"),
		SlotMinutes:          getEnvInt("SLOT_MINUTES", 30),
		MaxBookingDaysAhead:  getEnvInt("MAX_BOOKING_DAYS_AHEAD", 30),
		ReminderHours:        getEnvInt("REMINDER_HOURS", 3),
		ReminderCronSpec:     getEnv("REMINDER_CRON_SPEC", "@every 45m"),
		NotificationTestMode: getEnvBool("NOTIFICATION_TEST_MODE", true),
		ResendAPIKey:         getEnv("RESEND_API_KEY", ""),
		EmailFrom:            getEnv("EMAIL_FROM", "noreply@barberflow.app"),
		EmailFromName:        getEnv("EMAIL_FROM_NAME", "BarberFlow"),
		EmailTestMode:        getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		TwilioAccountSID:     getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:      getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber:    getEnv("TWILIO_PHONE_NUMBER", ""),
		AppURL:               getEnv("APP_URL", "http://localhost:8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}
