package common

import (
	"context"
	"time"
)

// ContextWithTimeout bounds ctx by timeout. A zero timeout leaves ctx unbounded.
func ContextWithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
