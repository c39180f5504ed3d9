package dataset

type Status string

const (
	StatusShipped   Status = "SHIPPED"
	StatusOpen      Status = "OPEN"
	StatusCancelled Status = "CANCELLED"
)

// Statuses is the sampling pool for order.status.
var Statuses = []Status{StatusShipped, StatusOpen, StatusCancelled}

func (s Status) Valid() bool {
	switch s {
	case StatusShipped, StatusOpen, StatusCancelled:
		return true
	}
	return false
}
