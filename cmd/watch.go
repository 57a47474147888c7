package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dayloop/dayloop/internal/notify"
	"github.com/dayloop/dayloop/internal/recur"
	"github.com/dayloop/dayloop/internal/ui"
	"github.com/dayloop/dayloop/store"
)

// watchCmd runs the reminder sweep loop in the foreground. Each tick scans
// every reminder and due single-shot task reminder; last-fired bookkeeping
// is updated before delivery, so a failing notify command can never cause a
// refire.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the reminder loop in the foreground",
	Long: `Run the reminder loop. Every tick (default 15s) dayloop evaluates all
reminder schedules against the wall clock and delivers the due ones through
the configured notify command, or to stdout when none is set.

The data file is watched; edits from another dayloop process are picked up
immediately and deleted reminders forget their firing history.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func buildNotifier() notify.Notifier {
	cfg := GetConfig().Watch
	if cfg.NotifyCommand != "" {
		return &notify.ExecNotifier{Command: cfg.NotifyCommand, Args: cfg.NotifyArgs}
	}
	return &notify.WriterNotifier{W: os.Stdout}
}

func runWatch(cmd *cobra.Command, args []string) error {
	plannerStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = plannerStore.Close() }()

	cfg := GetConfig().Watch
	evaluator := recur.NewEvaluator(recur.NewMemoryFiredStore())
	notifier := buildNotifier()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(DataFilePath()); err != nil {
		// The sweep still reloads on every tick; live reload is best-effort.
		fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", DataFilePath(), err)
	}

	tick := time.Duration(cfg.TickSeconds) * time.Second
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	fmt.Println(ui.StyleTitle.Render("dayloop watch"), ui.StyleSubtle.Render(fmt.Sprintf("(tick %s, Ctrl-C to stop)", tick)))
	sweep(plannerStore, evaluator, notifier)

	for {
		select {
		case <-ticker.C:
			sweep(plannerStore, evaluator, notifier)
		case ev, ok := <-watcher.Events:
			if !ok {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				if verbose {
					fmt.Fprintln(os.Stderr, "State changed on disk, re-evaluating")
				}
				sweep(plannerStore, evaluator, notifier)
				// The atomic rename replaces the inode; re-arm the watch.
				_ = watcher.Add(DataFilePath())
			}
		case err, ok := <-watcher.Errors:
			if ok && err != nil {
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}
		case <-sigs:
			fmt.Println(ui.StyleSubtle.Render("Stopped."))
			return nil
		}
	}
}

// sweep reloads state, prunes firing history of deleted entities, evaluates
// everything once, and hands due triggers to the notifier.
func sweep(plannerStore store.PlannerStore, evaluator *recur.Evaluator, notifier notify.Notifier) {
	reminders, err := plannerStore.ListReminders()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Reload reminders: %v\n", err)
		return
	}
	tasks, err := plannerStore.ListTasks(nil, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Reload tasks: %v\n", err)
		return
	}

	for _, key := range evaluator.Prune(reminders, tasks) {
		_ = notifier.Cancel(key)
	}

	triggers := evaluator.Sweep(reminders)
	triggers = append(triggers, evaluator.SweepTasks(tasks)...)
	for _, trig := range triggers {
		if err := notifier.Deliver(trig.Title, trig.Body, trig.DedupeKey); err != nil {
			// Delivery is fire-and-forget; the fired store already advanced.
			fmt.Fprintf(os.Stderr, "Deliver %q: %v\n", trig.Title, err)
		}
	}
}
