package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActiveByProperty returns the active roster for a property,
	// used by the clock station to match a typed PIN against stored
	// hashes.
	ListActiveByProperty(ctx context.Context, propertyID string) ([]Employee, error)
}
