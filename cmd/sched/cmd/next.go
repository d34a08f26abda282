package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theakshaypant/sched/internal/core"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next upcoming event",
	Long: `Show detailed information about the organization's next event.

An event that is already under way counts as next until it ends. The --filter
flag is ignored; only upcoming events are considered.`,
	RunE: runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	now := time.Now()

	events, err := service.GetEvents(cmd.Context(), core.FilterUpcoming, now)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	concurrent := nextEvents(events)
	if len(concurrent) == 0 {
		fmt.Println("No upcoming events found.")
		return nil
	}

	if len(concurrent) > 1 {
		printConcurrentEvents(concurrent, now)
	} else {
		printNextEvent(concurrent[0], now)
	}

	return nil
}

// nextEvents returns every event sharing the earliest start time, in
// listing order. The API does not promise a sort order.
func nextEvents(events []core.Event) []core.Event {
	if len(events) == 0 {
		return nil
	}

	earliest := events[0].Start
	for _, e := range events[1:] {
		if e.Start.Before(earliest) {
			earliest = e.Start
		}
	}

	var concurrent []core.Event
	for _, e := range events {
		if e.Start.Equal(earliest) {
			concurrent = append(concurrent, e)
		}
	}
	return concurrent
}

func printConcurrentEvents(events []core.Event, now time.Time) {
	first := events[0]

	fmt.Println("─────────────────────────────────────────────────")
	fmt.Printf("  🎪 %d EVENTS START AT THE SAME TIME\n", len(events))
	fmt.Println("─────────────────────────────────────────────────")

	fmt.Println()
	printCountdown(first, now)

	opts := DisplayOptionsFromConfig(false)
	opts.ShowInProgress = false // Already shown in header
	opts.ShowDesc = false       // Keep the group view compact

	for i, event := range events {
		fmt.Printf("\n  EVENT %d of %d\n", i+1, len(events))
		fmt.Println("  ─────────────────────────────────────────────")
		DisplayEvent(event, opts, now)
	}

	fmt.Println()
	fmt.Println("─────────────────────────────────────────────────")
}

func printNextEvent(event core.Event, now time.Time) {
	fmt.Println("─────────────────────────────────────────────────")
	fmt.Println("  NEXT EVENT")
	fmt.Println("─────────────────────────────────────────────────")

	fmt.Println()
	printCountdown(event, now)
	fmt.Println()

	opts := DisplayOptionsFromConfig(true)
	opts.ShowInProgress = false
	DisplayEvent(event, opts, now)

	fmt.Println()
	fmt.Println("─────────────────────────────────────────────────")
}

func printCountdown(event core.Event, now time.Time) {
	if event.InProgress(now) {
		fmt.Printf("  🟢 HAPPENING NOW - %s remaining\n", formatDurationCompact(event.End.Sub(now)))
		return
	}
	fmt.Printf("  ⏳ STARTS IN: %s\n", formatCountdown(event.Start.Sub(now)))
}

func formatCountdown(d time.Duration) string {
	if d < 0 {
		return "NOW"
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}

	var parts []string
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}

	if len(parts) == 0 {
		return "less than a minute"
	}
	return strings.Join(parts, ", ")
}
