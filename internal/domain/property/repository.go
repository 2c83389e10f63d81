package property

import "context"

type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Property, error)
}
