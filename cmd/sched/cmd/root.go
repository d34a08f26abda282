package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theakshaypant/sched/internal/adapter/eventbrite"
	"github.com/theakshaypant/sched/internal/core"
	"github.com/theakshaypant/sched/internal/logger"
	"github.com/theakshaypant/sched/internal/metrics"
	"github.com/theakshaypant/sched/internal/schedule"
	"github.com/theakshaypant/sched/internal/util"
)

var (
	cfgFile string
	profile string
	log     *logrus.Logger
	service *schedule.Service
)

var rootCmd = &cobra.Command{
	Use:   "sched",
	Short: "Browse an Eventbrite organization's events from the terminal",
	Long: `sched lists the events an Eventbrite organization publishes, either as
plain text or in an interactive TUI.

Events can be narrowed to the upcoming ones (the default) or shown in full.`,
	PersistentPreRunE: initService,
	RunE:              listEvents,
	SilenceUsage:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/sched/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "config profile to use (e.g., venue, festival)")

	rootCmd.PersistentFlags().StringP("filter", "f", core.DefaultFilter.String(), "Event filter: all or upcoming")
	rootCmd.PersistentFlags().Duration("timeout", schedule.DefaultTimeout, "Time limit for fetching events (0 disables it)")
	rootCmd.PersistentFlags().String("org-id", "", "Eventbrite organization ID")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g., :9090)")

	viper.BindPFlag("filter", rootCmd.PersistentFlags().Lookup("filter"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("org_id", rootCmd.PersistentFlags().Lookup("org-id"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("metrics_addr", rootCmd.PersistentFlags().Lookup("metrics-addr"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".config", "sched"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// SCHED_API_KEY, SCHED_ORG_ID, ...
	viper.SetEnvPrefix("SCHED")
	viper.AutomaticEnv()

	viper.SetDefault("base_url", eventbrite.DefaultBaseURL)
	viper.SetDefault("token_file", "token.json")
	viper.SetDefault("filter", core.DefaultFilter.String())
	viper.SetDefault("timeout", schedule.DefaultTimeout)
	viper.SetDefault("log_level", "info")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	applyProfile()
}

// profileSettings can be overridden per profile.
var profileSettings = []string{
	"api_key",
	"org_id",
	"base_url",
	"token_file",
	"client_id",
	"client_secret",
	"filter",
	"timeout",
	"log_level",
	"log_file",
	"metrics_addr",
}

var displaySettings = []string{
	"display.description",
	"display.time",
	"display.url",
	"display.image",
}

// applyProfile merges profile-specific settings over defaults
func applyProfile() {
	activeProfile := profile
	if activeProfile == "" {
		activeProfile = viper.GetString("default_profile")
	}
	if activeProfile == "" {
		return
	}

	profileKey := "profiles." + activeProfile
	if !viper.IsSet(profileKey) {
		fmt.Fprintf(os.Stderr, "Warning: profile '%s' not found in config\n", activeProfile)
		return
	}

	fmt.Fprintf(os.Stderr, "Using profile: %s\n", activeProfile)

	// Flags given on the command line beat the profile.
	for _, key := range profileSettings {
		profileSettingKey := profileKey + "." + key
		if viper.IsSet(profileSettingKey) && !isFlagExplicitlySet(key) {
			viper.Set(key, viper.Get(profileSettingKey))
		}
	}

	for _, key := range displaySettings {
		profileSettingKey := profileKey + "." + key
		if viper.IsSet(profileSettingKey) {
			viper.Set(key, viper.Get(profileSettingKey))
		}
	}
}

func isFlagExplicitlySet(viperKey string) bool {
	flagName := strings.ReplaceAll(viperKey, "_", "-")
	f := rootCmd.PersistentFlags().Lookup(flagName)

	return f != nil && f.Changed
}

func skipsService(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "profile", "auth":
		return true
	}
	return cmd.Parent() != nil && cmd.Parent().Name() == "profile"
}

func initService(cmd *cobra.Command, args []string) error {
	if skipsService(cmd) {
		return nil
	}

	out, err := logOutput(cmd.Name() == "ui")
	if err != nil {
		return err
	}
	log = logger.New(viper.GetString("log_level"), out)

	var reg prometheus.Registerer
	if addr := viper.GetString("metrics_addr"); addr != "" {
		reg = prometheus.DefaultRegisterer
		serveMetrics(addr)
	}

	orgID := viper.GetString("org_id")
	if orgID == "" {
		return errors.New("org_id not configured\n\nSet it with --org-id, SCHED_ORG_ID or in your profile config:\n  org_id: \"1234567890\"")
	}

	adapter := eventbrite.NewEventbriteAdapter(
		"eventbrite",
		"Eventbrite",
		orgID,
		viper.GetString("api_key"),
		expandPath(viper.GetString("token_file")),
		eventbrite.WithBaseURL(viper.GetString("base_url")),
		eventbrite.WithLogger(log),
		eventbrite.WithMetrics(metrics.New(reg)),
	)

	if err := adapter.Login(cmd.Context()); err != nil {
		return fmt.Errorf("login failed: %w\n\nSet api_key or run 'sched auth' to authenticate", err)
	}

	service = schedule.NewService(adapter, viper.GetDuration("timeout"), log)
	return nil
}

// logOutput picks where logs go. The TUI owns the terminal, so without a
// log file its logs are dropped.
func logOutput(tui bool) (io.Writer, error) {
	if path := viper.GetString("log_file"); path != "" {
		f, err := os.OpenFile(expandPath(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		return f, nil
	}
	if tui {
		return io.Discard, nil
	}
	return os.Stderr, nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.WithError(err).WithField("addr", addr).Error("metrics server stopped")
		}
	}()
}

func configuredFilter() (core.Filter, error) {
	return core.ParseFilter(viper.GetString("filter"))
}

func listEvents(cmd *cobra.Command, args []string) error {
	filter, err := configuredFilter()
	if err != nil {
		return err
	}

	now := time.Now()
	events, err := service.GetEvents(cmd.Context(), filter, now)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	fmt.Printf("🎟️  %s\n", filter.Label())
	fmt.Println("─────────────────────────────────────────────────")

	if len(events) == 0 {
		fmt.Println("No events to display.")
		return nil
	}

	opts := DisplayOptionsFromConfig(false)
	for _, event := range events {
		fmt.Println()
		DisplayEvent(event, opts, now)
	}

	fmt.Println("─────────────────────────────────────────────────")
	fmt.Printf("Total: %d events\n", len(events))

	return nil
}

// DisplayOptions controls how events are displayed
type DisplayOptions struct {
	Compact        bool // Compact mode for list views
	ShowTime       bool // Show when/duration
	ShowDesc       bool // Show description
	ShowURL        bool // Show event page link
	ShowImage      bool // Show cover image link
	ShowInProgress bool
	Indent         string
}

// DefaultDisplayOptions returns options for list view
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{
		Compact:        true,
		ShowTime:       true,
		ShowDesc:       true,
		ShowURL:        true,
		ShowImage:      false,
		ShowInProgress: true,
		Indent:         "  ",
	}
}

// DetailedDisplayOptions returns options for a single event
func DetailedDisplayOptions() DisplayOptions {
	return DisplayOptions{
		Compact:        false,
		ShowTime:       true,
		ShowDesc:       true,
		ShowURL:        true,
		ShowImage:      true,
		ShowInProgress: false,
		Indent:         "  ",
	}
}

// DisplayOptionsFromConfig builds display options from viper config
func DisplayOptionsFromConfig(detailed bool) DisplayOptions {
	opts := DefaultDisplayOptions()
	if detailed {
		opts = DetailedDisplayOptions()
	}

	if viper.IsSet("display.time") {
		opts.ShowTime = viper.GetBool("display.time")
	}
	if viper.IsSet("display.description") {
		opts.ShowDesc = viper.GetBool("display.description")
	}
	if viper.IsSet("display.url") {
		opts.ShowURL = viper.GetBool("display.url")
	}
	if viper.IsSet("display.image") {
		opts.ShowImage = viper.GetBool("display.image")
	}

	return opts
}

// DisplayEvent prints an event with the given options
func DisplayEvent(event core.Event, opts DisplayOptions, now time.Time) {
	indent := opts.Indent

	fmt.Printf("%s%s\n", indent, event.Name)

	if opts.ShowTime {
		fmt.Printf("%s🕐 When:        %s\n", indent, formatEventTime(event.Start, event.End))
		fmt.Printf("%s⏱️  Duration:    %s\n", indent, formatDurationCompact(event.Duration()))
	}

	if opts.ShowDesc && event.Description != "" {
		if opts.Compact {
			fmt.Printf("%s📝 About:       %s\n", indent, util.TruncateText(util.FirstLine(event.Description), 80))
		} else {
			fmt.Printf("%s📝 About:\n", indent)
			for _, line := range wrapText(event.Description, 60) {
				fmt.Printf("%s   %s\n", indent, line)
			}
		}
	}

	if opts.ShowURL && event.URL != "" {
		fmt.Printf("%s🔗 Event:       %s\n", indent, util.MakeHyperlink(event.URL, event.URL))
	}

	if opts.ShowImage && event.ImageURL != "" {
		fmt.Printf("%s🖼️  Image:       %s\n", indent, util.MakeHyperlink(event.ImageURL, event.ImageURL))
	}

	if opts.ShowInProgress && event.InProgress(now) {
		fmt.Printf("%s🟢 HAPPENING NOW (%s remaining)\n", indent, formatDurationCompact(event.End.Sub(now)))
	}
}

// wrapText wraps text to the given width
func wrapText(s string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}

		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > width {
				lines = append(lines, line)
				line = word
			} else {
				line += " " + word
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// formatDurationCompact formats a duration in a compact way
func formatDurationCompact(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		if hours > 0 {
			return fmt.Sprintf("%dd %dh", days, hours)
		}
		return fmt.Sprintf("%dd", days)
	}
	if hours > 0 {
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}

func formatEventTime(start, end time.Time) string {
	localStart := start.Local()
	localEnd := end.Local()

	if localStart.YearDay() == localEnd.YearDay() && localStart.Year() == localEnd.Year() {
		return fmt.Sprintf("%s, %s - %s", localStart.Format("Mon, Jan 2"), localStart.Format("3:04 PM"), localEnd.Format("3:04 PM"))
	}
	return fmt.Sprintf("%s - %s", localStart.Format("Mon, Jan 2 3:04 PM"), localEnd.Format("Mon, Jan 2 3:04 PM"))
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
