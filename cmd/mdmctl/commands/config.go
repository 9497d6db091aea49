package commands

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	ErrUnknownConfigKey   = errors.New("unknown config key")
	ErrProtectedConfigKey = errors.New("config key cannot be unset: run mdmctl login to replace it")
)

// configKeys are the settings the config command manages, in display order.
var configKeys = []string{"api", "token", "output", "verbose"}

const redactedValue = "[REDACTED]"

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and edit the mdmctl configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  "Display the effective configuration after flags, environment, and config file are merged",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := effectiveConfig()

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(settings)
			case OutputFormatYAML:
				return outputYAML(settings)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Key", "Value")

				for _, key := range configKeys {
					_ = table.Append([]string{key, settings[key]})
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("rendering config table: %w", err)
				}

				return nil
			}
		},
	}
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !isConfigKey(key) {
				return fmt.Errorf("%w: %q", ErrUnknownConfigKey, key)
			}

			fmt.Println(redactConfigValue(key, viper.GetString(key)))

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value and persist it to the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !isConfigKey(key) {
				return fmt.Errorf("%w: %q", ErrUnknownConfigKey, key)
			}

			if key == "verbose" {
				verbose, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("verbose must be a boolean: %w", err)
				}

				viper.Set(key, verbose)
			} else {
				viper.Set(key, value)
			}

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Printf("Set %s to %s\n", key, redactConfigValue(key, value))

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Reset a configuration value to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !isConfigKey(key) {
				return fmt.Errorf("%w: %q", ErrUnknownConfigKey, key)
			}

			if key == "token" {
				return fmt.Errorf("%w: %q", ErrProtectedConfigKey, key)
			}

			viper.Set(key, configKeyDefault(key))

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Printf("Unset %s\n", key)

			return nil
		},
	}
}

// effectiveConfig snapshots the managed settings with secrets redacted.
func effectiveConfig() map[string]string {
	settings := make(map[string]string, len(configKeys))
	for _, key := range configKeys {
		settings[key] = redactConfigValue(key, viper.GetString(key))
	}

	return settings
}

func isConfigKey(key string) bool {
	for _, known := range configKeys {
		if key == known {
			return true
		}
	}

	return false
}

// redactConfigValue hides token material in any human-facing output.
func redactConfigValue(key, value string) string {
	if key == "token" && value != "" {
		return redactedValue
	}

	return value
}

func configKeyDefault(key string) any {
	switch key {
	case "output":
		return "table"
	case "verbose":
		return false
	default:
		return ""
	}
}
