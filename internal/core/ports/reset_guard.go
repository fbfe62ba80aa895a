package ports

import "context"

// ResetCodeGuard enforces the single-use property of the admin reset code.
type ResetCodeGuard interface {
	Consumed(ctx context.Context) (bool, error)
	MarkConsumed(ctx context.Context) error
}
