// Package draft persists in-progress form data so an interrupted session can
// resume with its data intact.
package draft

import (
	"context"

	"admissions-forms/internal/forms/schema"
)

// Store is the durable cache for a single draft. Save must be one atomic
// serialize+write; Load reports absence (or an unusable snapshot) as nil
// data rather than an error, so a stale draft never blocks a new session.
type Store interface {
	Save(ctx context.Context, data schema.FormData) error
	Load(ctx context.Context) (schema.FormData, error)
	Clear(ctx context.Context) error
}

// snapshot is the stored envelope. The version pins the schema the data was
// shaped by; a mismatch means the schema evolved and the snapshot is ignored.
type snapshot struct {
	Version int             `json:"version"`
	Data    schema.FormData `json:"data"`
}
