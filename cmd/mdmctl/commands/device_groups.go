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

// NewDeviceGroupsCommand creates the device-groups command group.
func NewDeviceGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "device-groups",
		Aliases: []string{"device-group", "dg", "groups"},
		Short:   "Manage device groups",
		Long:    "List, create, and delete device groups",
	}

	cmd.AddCommand(newDeviceGroupsListCommand())
	cmd.AddCommand(newDeviceGroupsCreateCommand())
	cmd.AddCommand(newDeviceGroupsDeleteCommand())

	return cmd
}

// DeviceGroupsListOptions holds the options for listing device groups.
type DeviceGroupsListOptions struct {
	Filters []string
	Sort    string
	Limit   int
	Offset  int
}

func newDeviceGroupsListCommand() *cobra.Command {
	var opts DeviceGroupsListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List device groups",
		Long:  "List device groups with optional server-side filtering",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeviceGroupsListCommand(opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Filters, "filter", nil, "filter expression field:op:value (repeatable)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort key, prefix with - for descending")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum results")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "results to skip")

	return cmd
}

func runDeviceGroupsListCommand(opts DeviceGroupsListOptions) error {
	d, err := newDispatcher()
	if err != nil {
		return err
	}

	query, err := parseFilters(opts.Filters, mdmapi.NewQuery())
	if err != nil {
		return err
	}

	if opts.Sort != "" {
		query = query.Sort(opts.Sort)
	}

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	doc, err := dispatch.List(context.Background(), d, mdmapi.DeviceGroups, query)
	if err != nil {
		return fmt.Errorf("listing device groups: %w", err)
	}

	return outputDeviceGroups(doc)
}

func outputDeviceGroups(doc *mdmapi.Document[mdmapi.DeviceGroupAttributes]) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(doc)
	case OutputFormatYAML:
		return outputYAML(doc)
	default:
		return outputDeviceGroupsTable(doc)
	}
}

func outputDeviceGroupsTable(doc *mdmapi.Document[mdmapi.DeviceGroupAttributes]) error {
	if len(doc.Data) == 0 {
		_, _ = os.Stdout.WriteString("No device groups found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name")

	for _, group := range doc.Data {
		_ = table.Append(group.ID, group.Attributes.Name)
	}

	return table.Render()
}

func newDeviceGroupsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a device group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDispatcher()
			if err != nil {
				return err
			}

			doc, err := dispatch.Create(context.Background(), d, mdmapi.DeviceGroups,
				mdmapi.DeviceGroupAttributes{Name: args[0]})
			if err != nil {
				return fmt.Errorf("creating device group: %w", err)
			}

			fmt.Printf("Created device group %q with id %s\n", doc.Data.Attributes.Name, doc.Data.ID)

			return nil
		},
	}
}

func newDeviceGroupsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a device group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDispatcher()
			if err != nil {
				return err
			}

			err = dispatch.Remove(context.Background(), d, mdmapi.DeviceGroups, args[0])
			if err != nil {
				return fmt.Errorf("deleting device group: %w", err)
			}

			fmt.Printf("Deleted device group %s\n", args[0])

			return nil
		},
	}
}
