package booking

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

var allStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// ActiveStatuses hold the slot.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

// ParseStatus accepts only the fixed enum.
func ParseStatus(s string) (Status, error) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func InitialStatus() Status {
	return StatusPending
}

func ActiveStrings() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}
