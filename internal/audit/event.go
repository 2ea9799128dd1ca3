package audit

import (
	"context"
	"fmt"
	"time"

	"lexora.app/internal/auth"
	"lexora.app/internal/ids"
)

// NewEvent builds a persistable Event enriched from the request context.
// Field values are flattened to strings so the record survives any storage
// backend unchanged.
func NewEvent(ctx context.Context, name string, fields map[string]any) Event {
	ev := Event{
		ID:         ids.New(),
		OccurredAt: time.Now().UTC(),
		RequestID:  RequestIDFromContext(ctx),
		Name:       name,
	}
	if id, ok := auth.IdentityFromContext(ctx); ok {
		ev.UserID = id.UserID
		ev.TenantID = id.TenantID
	}
	if len(fields) > 0 {
		ev.Fields = make(map[string]string, len(fields))
		for k, v := range fields {
			ev.Fields[k] = fmt.Sprint(v)
		}
	}
	return ev
}
