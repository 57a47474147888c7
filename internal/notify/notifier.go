// Package notify is the engine's boundary to whatever actually shows
// reminders to the user. Delivery is fire-and-forget: a failed Deliver never
// rolls back last-fired bookkeeping in the sweep loop.
package notify

import (
	"fmt"
	"io"
	"os/exec"
)

// Notifier is the delivery capability handed to the sweep loop.
type Notifier interface {
	Deliver(title, body, dedupeKey string) error
	Cancel(dedupeKey string) error
}

// ExecNotifier shells out to a user-configured command (notify-send,
// terminal-notifier, ...) with the title and body appended as the final two
// arguments.
type ExecNotifier struct {
	Command string
	Args    []string
}

func (n *ExecNotifier) Deliver(title, body, dedupeKey string) error {
	args := append(append([]string{}, n.Args...), title, body)
	if err := exec.Command(n.Command, args...).Run(); err != nil {
		return fmt.Errorf("notify command %q: %w", n.Command, err)
	}
	return nil
}

// Cancel is a no-op: an exec'd one-shot command has nothing to withdraw.
func (n *ExecNotifier) Cancel(dedupeKey string) error { return nil }

// WriterNotifier prints triggers to a writer. It is the headless fallback
// and the implementation the tests use.
type WriterNotifier struct {
	W io.Writer
}

func (n *WriterNotifier) Deliver(title, body, dedupeKey string) error {
	_, err := fmt.Fprintf(n.W, "⏰ %s — %s\n", title, body)
	return err
}

func (n *WriterNotifier) Cancel(dedupeKey string) error { return nil }
