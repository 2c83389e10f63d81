package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a reference entity: the core reads it for labels,
// grouping, pay rates and station PIN checks. Creating and editing
// employees belongs to the management surface, not this service.
type Employee struct {
	ID         string
	PropertyID string
	Name       string
	Role       *string
	PINHash    string
	HourlyRate decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
