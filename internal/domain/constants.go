package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default configuration values
const (
	DefaultSlotStepMinutes   = 30
	DefaultCandidateDayCount = 30
)

// Business validation constants
const (
	MaxNotesLength  = 500
	MaxReasonLength = 500

	// DefaultRejectionReason подставляется, если владелец не указал причину отказа
	DefaultRejectionReason = "No reason provided"
)

// TerminalStatuses список терминальных статусов бронирования.
// Из этих статусов переходы запрещены для любой роли.
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusRejected,
}

// ActiveStatuses список статусов, из которых бронирование ещё может измениться
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
