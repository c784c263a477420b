package notifier

import "context"

// NoOpNotifier drops events. It is used when no webhook is configured,
// so call sites never need a nil check. This follows the Null Object
// pattern.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier instance.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// Notify does nothing and returns nil immediately.
func (n *NoOpNotifier) Notify(ctx context.Context, ev Event) error {
	return nil
}
