package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmdmnt/mdm-client/pkg/dispatch"
	"github.com/cmdmnt/mdm-client/pkg/mdmapi"
)

// NewProfilesCommand creates the profiles command group.
func NewProfilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "Manage configuration profiles",
	}

	cmd.AddCommand(newProfilesListCommand())
	cmd.AddCommand(newProfilesDeleteCommand())

	return cmd
}

func newProfilesListCommand() *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configuration profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDispatcher()
			if err != nil {
				return err
			}

			query, err := parseFilters(filters, mdmapi.NewQuery())
			if err != nil {
				return err
			}

			doc, err := dispatch.List(context.Background(), d, mdmapi.Profiles, query)
			if err != nil {
				return fmt.Errorf("listing profiles: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(doc)
			case OutputFormatYAML:
				return outputYAML(doc)
			default:
				return outputProfilesTable(doc)
			}
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter expression field:op:value (repeatable)")

	return cmd
}

func outputProfilesTable(doc *mdmapi.Document[mdmapi.ProfileAttributes]) error {
	if len(doc.Data) == 0 {
		_, _ = os.Stdout.WriteString("No profiles found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Identifier", "Display Name", "UUID")

	for _, profile := range doc.Data {
		attrs := profile.Attributes
		_ = table.Append(profile.ID, attrs.Identifier, attrs.DisplayName, attrs.UUID)
	}

	return table.Render()
}

func newProfilesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a configuration profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDispatcher()
			if err != nil {
				return err
			}

			err = dispatch.Remove(context.Background(), d, mdmapi.Profiles, args[0])
			if err != nil {
				return fmt.Errorf("deleting profile: %w", err)
			}

			fmt.Printf("Deleted profile %s\n", args[0])

			return nil
		},
	}
}
