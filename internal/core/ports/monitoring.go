package ports

import "context"

// MonitoringNotifier pushes account lifecycle events to the external
// monitoring service. Calls are best-effort: callers log failures and carry
// on, they never fail the triggering operation.
type MonitoringNotifier interface {
	NotifyUserRemoved(ctx context.Context, username string) error
}
