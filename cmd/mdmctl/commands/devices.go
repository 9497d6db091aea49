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

// NewDevicesCommand creates the devices command group.
func NewDevicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "devices",
		Aliases: []string{"device", "dev"},
		Short:   "Inspect enrolled devices",
		Long:    "List and inspect devices enrolled with the MDM",
	}

	cmd.AddCommand(newDevicesListCommand())
	cmd.AddCommand(newDevicesGetCommand())

	return cmd
}

// DevicesListOptions holds the options for listing devices.
type DevicesListOptions struct {
	Filters []string
	Sort    string
	Limit   int
}

func newDevicesListCommand() *cobra.Command {
	var opts DevicesListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevicesListCommand(opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Filters, "filter", nil, "filter expression field:op:value (repeatable)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort key, prefix with - for descending")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum results")

	return cmd
}

func runDevicesListCommand(opts DevicesListOptions) error {
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

	doc, err := dispatch.List(context.Background(), d, mdmapi.Devices, query)
	if err != nil {
		return fmt.Errorf("listing devices: %w", err)
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(doc)
	case OutputFormatYAML:
		return outputYAML(doc)
	default:
		return outputDevicesTable(doc)
	}
}

func outputDevicesTable(doc *mdmapi.Document[mdmapi.DeviceAttributes]) error {
	if len(doc.Data) == 0 {
		_, _ = os.Stdout.WriteString("No devices found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "UDID", "Name", "Model", "OS", "Serial", "Last Seen")

	for _, device := range doc.Data {
		attrs := device.Attributes
		_ = table.Append(device.ID, attrs.UDID, attrs.DeviceName, attrs.Model,
			attrs.OSVersion, attrs.SerialNumber, attrs.LastSeen)
	}

	return table.Render()
}

func newDevicesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDispatcher()
			if err != nil {
				return err
			}

			doc, err := dispatch.Fetch(context.Background(), d, mdmapi.Devices, args[0])
			if err != nil {
				return fmt.Errorf("getting device: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatYAML:
				return outputYAML(doc)
			default:
				return outputJSON(doc)
			}
		},
	}
}
