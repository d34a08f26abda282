package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/theakshaypant/sched/internal/core"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage configuration profiles",
	Long: `Manage configuration profiles for different organizations and filter presets.

Profiles let you switch between Eventbrite organizations, credentials and
display settings with -p.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show profile settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfileShow,
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileAdd,
}

var profileSetDefaultCmd = &cobra.Command{
	Use:   "default <name>",
	Short: "Set the default profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileSetDefault,
}

var profileEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a profile's settings",
	Long: `Edit a profile's settings using flags.

Example:
  sched profile edit festival --filter=all --timeout=30s
  sched profile edit venue --show-image=true`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileEdit,
}

// settingFlag maps a profile flag to its config key.
type settingFlag struct {
	flag  string
	key   string
	usage string
}

var stringSettings = []settingFlag{
	{"org-id", "org_id", "Eventbrite organization ID"},
	{"api-key", "api_key", "Eventbrite private token"},
	{"token-file", "token_file", "Path to OAuth token file"},
	{"client-id", "client_id", "OAuth client ID (app key)"},
	{"client-secret", "client_secret", "OAuth client secret"},
	{"base-url", "base_url", "Eventbrite API base URL"},
	{"filter", "filter", "Event filter: all or upcoming"},
	{"timeout", "timeout", "Fetch time limit (e.g., 15s)"},
	{"log-level", "log_level", "Log level"},
	{"log-file", "log_file", "Log file"},
}

var displayFlags = []settingFlag{
	{"show-description", "description", "Show description"},
	{"show-time", "time", "Show time/duration"},
	{"show-url", "url", "Show event page link"},
	{"show-image", "image", "Show cover image link"},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileSetDefaultCmd)
	profileCmd.AddCommand(profileEditCmd)

	addSettingFlags(profileAddCmd.Flags())
	addSettingFlags(profileEditCmd.Flags())
}

func addSettingFlags(flags *pflag.FlagSet) {
	for _, s := range stringSettings {
		flags.String(s.flag, "", s.usage)
	}
	for _, s := range displayFlags {
		flags.Bool(s.flag, false, s.usage)
	}
}

// applySettingFlags copies explicitly set flags into profile and reports
// whether anything changed.
func applySettingFlags(cmd *cobra.Command, profile map[string]interface{}) (bool, error) {
	changed := false

	for _, s := range stringSettings {
		if !cmd.Flags().Changed(s.flag) {
			continue
		}
		val, _ := cmd.Flags().GetString(s.flag)
		if s.key == "filter" {
			if _, err := core.ParseFilter(val); err != nil {
				return false, err
			}
		}
		profile[s.key] = val
		changed = true
	}

	display, ok := profile["display"].(map[string]interface{})
	if !ok {
		display = make(map[string]interface{})
	}
	for _, s := range displayFlags {
		if cmd.Flags().Changed(s.flag) {
			val, _ := cmd.Flags().GetBool(s.flag)
			display[s.key] = val
			changed = true
		}
	}
	if len(display) > 0 {
		profile["display"] = display
	}

	return changed, nil
}

func runProfileList(cmd *cobra.Command, args []string) error {
	profiles := viper.GetStringMap("profiles")
	defaultProfile := viper.GetString("default_profile")

	if len(profiles) == 0 {
		fmt.Println("No profiles configured.")
		fmt.Println("\nAdd one with: sched profile add <name> --org-id=<id>")
		return nil
	}

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Available profiles:")
	fmt.Println("─────────────────────────────────────────────────")

	for _, name := range names {
		marker := "  "
		if name == defaultProfile {
			marker = "* "
		}
		fmt.Printf("%s%s\n", marker, name)
	}

	fmt.Println("─────────────────────────────────────────────────")
	if defaultProfile != "" {
		fmt.Printf("Default: %s\n", defaultProfile)
	}
	fmt.Println("\nUse 'sched profile show <name>' for details")

	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	var profileName string
	if len(args) > 0 {
		profileName = args[0]
	} else {
		profileName = viper.GetString("default_profile")
		if profileName == "" {
			return fmt.Errorf("no profile specified and no default profile set")
		}
	}

	profileKey := "profiles." + profileName
	if !viper.IsSet(profileKey) {
		return fmt.Errorf("profile '%s' not found", profileName)
	}

	settings := viper.GetStringMap(profileKey)

	fmt.Printf("Profile: %s\n", profileName)
	if profileName == viper.GetString("default_profile") {
		fmt.Println("(default)")
	}
	fmt.Println("─────────────────────────────────────────────────")

	fmt.Println("\n📁 Organization & Auth:")
	printSetting(settings, "org_id", "org-id")
	printSecret(settings, "api_key", "api-key")
	printSetting(settings, "token_file", "token-file")
	printSetting(settings, "client_id", "client-id")
	printSecret(settings, "client_secret", "client-secret")
	printSetting(settings, "base_url", "base-url")

	fmt.Println("\n🔍 Fetching:")
	printSetting(settings, "filter", "filter")
	printSetting(settings, "timeout", "timeout")

	fmt.Println("\n🪵 Logging:")
	printSetting(settings, "log_level", "log-level")
	printSetting(settings, "log_file", "log-file")

	if display, ok := settings["display"].(map[string]interface{}); ok && len(display) > 0 {
		fmt.Println("\n👁️  Display:")
		for _, s := range displayFlags {
			printSetting(display, s.key, s.flag)
		}
	}

	fmt.Println()
	return nil
}

func printSetting(settings map[string]interface{}, key, displayKey string) {
	if val, ok := settings[key]; ok {
		fmt.Printf("  %s: %v\n", displayKey, val)
	}
}

func printSecret(settings map[string]interface{}, key, displayKey string) {
	if _, ok := settings[key]; ok {
		fmt.Printf("  %s: ********\n", displayKey)
	}
}

func runProfileAdd(cmd *cobra.Command, args []string) error {
	profileName := args[0]

	profileKey := "profiles." + profileName
	if viper.IsSet(profileKey) {
		return fmt.Errorf("profile '%s' already exists. Use 'sched profile edit %s' to modify it", profileName, profileName)
	}

	profile := make(map[string]interface{})
	if _, err := applySettingFlags(cmd, profile); err != nil {
		return err
	}

	if err := saveProfileToConfig(profileName, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Printf("✓ Profile '%s' created\n", profileName)
	fmt.Printf("\nUse it with: sched -p %s\n", profileName)
	fmt.Printf("Set as default: sched profile default %s\n", profileName)

	return nil
}

func runProfileSetDefault(cmd *cobra.Command, args []string) error {
	profileName := args[0]

	profileKey := "profiles." + profileName
	if !viper.IsSet(profileKey) {
		return fmt.Errorf("profile '%s' not found", profileName)
	}

	if err := setDefaultProfileInConfig(profileName); err != nil {
		return fmt.Errorf("failed to set default profile: %w", err)
	}

	fmt.Printf("✓ Default profile set to '%s'\n", profileName)
	return nil
}

func runProfileEdit(cmd *cobra.Command, args []string) error {
	profileName := args[0]

	profileKey := "profiles." + profileName
	if !viper.IsSet(profileKey) {
		return fmt.Errorf("profile '%s' not found. Use 'sched profile add %s' to create it", profileName, profileName)
	}

	profile := make(map[string]interface{})
	for k, v := range viper.GetStringMap(profileKey) {
		profile[k] = v
	}

	changed, err := applySettingFlags(cmd, profile)
	if err != nil {
		return err
	}

	if !changed {
		fmt.Println("No changes specified. Use flags to update settings:")
		fmt.Println("  sched profile edit", profileName, "--filter=all --timeout=30s")
		return nil
	}

	if err := saveProfileToConfig(profileName, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Printf("✓ Profile '%s' updated\n", profileName)
	return nil
}

// Config file manipulation functions

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sched", "config.yaml")
}

func readConfigFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]interface{}), nil
		}
		return nil, err
	}

	var config map[string]interface{}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if config == nil {
		config = make(map[string]interface{})
	}

	return config, nil
}

func writeConfigFile(path string, config map[string]interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	// Profiles may hold tokens and client secrets.
	return os.WriteFile(path, data, 0o600)
}

func saveProfileToConfig(name string, profile map[string]interface{}) error {
	return updateConfigFile(getConfigPath(), func(config map[string]interface{}) {
		profiles, ok := config["profiles"].(map[string]interface{})
		if !ok {
			profiles = make(map[string]interface{})
		}
		profiles[name] = profile
		config["profiles"] = profiles
	})
}

func setDefaultProfileInConfig(name string) error {
	return updateConfigFile(getConfigPath(), func(config map[string]interface{}) {
		config["default_profile"] = name
	})
}

func updateConfigFile(path string, update func(map[string]interface{})) error {
	config, err := readConfigFile(path)
	if err != nil {
		return err
	}
	update(config)
	return writeConfigFile(path, config)
}
