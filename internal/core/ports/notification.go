package ports

import (
	"context"

	"github.com/srgjo27/hall_booking/internal/core/domain"
)

type Notifier interface {
	Notify(ctx context.Context, notice domain.Notice)
}

// Highlighter receives the fields a client should visually flag.
type Highlighter interface {
	Shake(section domain.Section, fields []string)
}
