package enums

// OutboxEventType names the domain events drained by the outbox publisher.
type OutboxEventType string

const (
	EventScheduleProposed    OutboxEventType = "schedule.proposed"
	EventScheduleConfirmed   OutboxEventType = "schedule.confirmed"
	EventScheduleBooked      OutboxEventType = "schedule.booked"
	EventScheduleRescheduled OutboxEventType = "schedule.rescheduled"
	EventScheduleCancelled   OutboxEventType = "schedule.cancelled"
	EventInstallStarted      OutboxEventType = "install.started"
	EventInstallCompleted    OutboxEventType = "install.completed"
	EventAvailabilityChanged OutboxEventType = "availability.changed"
)

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	AggregateScheduleRecord   OutboxAggregateType = "schedule_record"
	AggregateAvailabilitySlot OutboxAggregateType = "availability_slot"
)
