package notifier

// NoopNotifier discards messages. Used for dry runs, where the rendered
// report is logged instead of delivered.
type NoopNotifier struct{}

func (NoopNotifier) Send(_, _ string) error { return nil }
