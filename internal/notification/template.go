package notification

import (
	"fmt"
	"time"
)

// Kind identifies a message template.
type Kind string

const (
	// KindWelcome greets a freshly signed-up user.
	KindWelcome Kind = "welcome"
	// KindReminderCreated confirms a new reminder.
	KindReminderCreated Kind = "reminder_created"
	// KindReminderExpired alerts that a reminder has lapsed.
	KindReminderExpired Kind = "reminder_expired"
	// KindReminderDeleted confirms a removed reminder.
	KindReminderDeleted Kind = "reminder_deleted"
)

// Message is a tagged template instance. Only the fields relevant to the
// kind are populated; Render rejects unknown kinds.
type Message struct {
	// Kind selects the template.
	Kind Kind
	// UserName is the recipient display name, used by the welcome kind.
	UserName string
	// ReminderName is the reminder display name.
	ReminderName string
	// ExpiryDisplay is the human-readable expiry instant.
	ExpiryDisplay string
}

// Welcome builds the signup greeting.
func Welcome(userName string) Message {
	return Message{Kind: KindWelcome, UserName: userName}
}

// ReminderCreated builds the creation confirmation.
func ReminderCreated(reminderName string, expiresAt time.Time) Message {
	return Message{
		Kind:          KindReminderCreated,
		ReminderName:  reminderName,
		ExpiryDisplay: FormatExpiry(expiresAt),
	}
}

// ReminderExpired builds the expiry alert.
func ReminderExpired(reminderName string, expiresAt time.Time) Message {
	return Message{
		Kind:          KindReminderExpired,
		ReminderName:  reminderName,
		ExpiryDisplay: FormatExpiry(expiresAt),
	}
}

// ReminderDeleted builds the deletion confirmation.
func ReminderDeleted(reminderName string) Message {
	return Message{Kind: KindReminderDeleted, ReminderName: reminderName}
}

// FormatExpiry renders an instant for message bodies, always in UTC.
func FormatExpiry(t time.Time) string {
	return t.UTC().Format("02 Jan 2006 15:04 MST")
}

// Render produces the SMS body for the message.
func (m Message) Render() (string, error) {
	switch m.Kind {
	case KindWelcome:
		return fmt.Sprintf(
			"Welcome %s! Thank you for signing up with ExpiryReminder. We'll help you track your product expiry dates effectively.",
			m.UserName,
		), nil
	case KindReminderCreated:
		return fmt.Sprintf(
			"Reminder created: %q will expire on %s. We'll notify you before it expires.",
			m.ReminderName, m.ExpiryDisplay,
		), nil
	case KindReminderExpired:
		return fmt.Sprintf(
			"URGENT: %q has expired on %s. Please take necessary action.",
			m.ReminderName, m.ExpiryDisplay,
		), nil
	case KindReminderDeleted:
		return fmt.Sprintf(
			"Reminder deleted: %q has been removed from your tracking list.",
			m.ReminderName,
		), nil
	default:
		return "", fmt.Errorf("unknown message kind %q", m.Kind)
	}
}
