package property

import "time"

// Property is a managed site employees punch in and out of. Read-only
// for this service; property CRUD lives in the management surface.
type Property struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
