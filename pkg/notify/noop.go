package notify

import "context"

// NoOpNotifier is a notifier that does nothing. Used in tests and in wiring
// where no queue is configured.
type NoOpNotifier struct{}

// TransferCompleted does nothing.
func (n *NoOpNotifier) TransferCompleted(ctx context.Context, event *TransferEvent) error {
	return nil
}
