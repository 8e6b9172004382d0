package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/lexreg/internal/config"
	"github.com/zjrosen/lexreg/internal/flags"
)

var configFlagCmd = &cobra.Command{
	Use:   "config:flag [name] [on|off]",
	Short: "Show or set feature flags",
	Long: `Without arguments, print every known feature flag and its state.
With a name and a value, save the flag to the config file in use.

Examples:
  lexreg config:flag
  lexreg config:flag user-catalog on`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runConfigFlag,
}

func init() {
	rootCmd.AddCommand(configFlagCmd)
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "enable", "enabled":
		return true, nil
	case "off", "disable", "disabled":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func runConfigFlag(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	switch len(args) {
	case 0:
		for _, name := range flags.Known() {
			if _, err := fmt.Fprintf(out, "%s=%t\n", name, featureFlags.Enabled(name)); err != nil {
				return err
			}
		}
		return nil
	case 1:
		if !flags.IsKnown(args[0]) {
			return fmt.Errorf("unknown flag %q (known: %s)", args[0], strings.Join(flags.Known(), ", "))
		}
		_, err := fmt.Fprintf(out, "%s=%t\n", args[0], featureFlags.Enabled(args[0]))
		return err
	}

	name := args[0]
	if !flags.IsKnown(name) {
		return fmt.Errorf("unknown flag %q (known: %s)", name, strings.Join(flags.Known(), ", "))
	}
	enabled, err := parseSwitch(args[1])
	if err != nil {
		return fmt.Errorf("invalid value %q: want on or off", args[1])
	}

	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		configPath = localConfigPath
	}
	if err := config.SaveFlag(configPath, name, enabled); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s=%t saved to %s\n", name, enabled, configPath)
	return err
}
