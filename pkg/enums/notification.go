package enums

import "fmt"

// ScheduleNotificationType labels entries in a schedule record's append-only
// customer notification log.
type ScheduleNotificationType string

const (
	NotificationScheduleProposed    ScheduleNotificationType = "schedule_proposed"
	NotificationCustomerConfirmed   ScheduleNotificationType = "customer_confirmed"
	NotificationInstallerConfirmed  ScheduleNotificationType = "installer_confirmed"
	NotificationScheduleBooked      ScheduleNotificationType = "schedule_booked"
	NotificationScheduleRescheduled ScheduleNotificationType = "rescheduled"
	NotificationScheduleCancelled   ScheduleNotificationType = "cancelled"
	NotificationInstallStarted      ScheduleNotificationType = "install_started"
	NotificationInstallCompleted    ScheduleNotificationType = "install_completed"
	NotificationProposalExpired     ScheduleNotificationType = "proposal_expired"
)

var validScheduleNotificationTypes = []ScheduleNotificationType{
	NotificationScheduleProposed,
	NotificationCustomerConfirmed,
	NotificationInstallerConfirmed,
	NotificationScheduleBooked,
	NotificationScheduleRescheduled,
	NotificationScheduleCancelled,
	NotificationInstallStarted,
	NotificationInstallCompleted,
	NotificationProposalExpired,
}

// IsValid reports whether the value is a known ScheduleNotificationType.
func (n ScheduleNotificationType) IsValid() bool {
	for _, candidate := range validScheduleNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseScheduleNotificationType converts raw input into a ScheduleNotificationType.
func ParseScheduleNotificationType(value string) (ScheduleNotificationType, error) {
	for _, candidate := range validScheduleNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid schedule notification type %q", value)
}

// NotificationChannel names the delivery channel a log entry was recorded for.
type NotificationChannel string

const (
	ChannelInApp NotificationChannel = "in_app"
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

// IsValid reports whether the value is a known NotificationChannel.
func (c NotificationChannel) IsValid() bool {
	return c == ChannelInApp || c == ChannelEmail || c == ChannelSMS
}
