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

// NewOrgsCommand creates the orgs command group.
func NewOrgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"org", "organizations"},
		Short:   "Manage organizations",
	}

	cmd.AddCommand(newOrgsListCommand())
	cmd.AddCommand(newOrgsCreateCommand())

	return cmd
}

func newOrgsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDispatcher()
			if err != nil {
				return err
			}

			doc, err := dispatch.List(context.Background(), d, mdmapi.Organizations, nil)
			if err != nil {
				return fmt.Errorf("listing organizations: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(doc)
			case OutputFormatYAML:
				return outputYAML(doc)
			default:
				return outputOrgsTable(doc)
			}
		},
	}
}

func outputOrgsTable(doc *mdmapi.Document[mdmapi.OrganizationAttributes]) error {
	if len(doc.Data) == 0 {
		_, _ = os.Stdout.WriteString("No organizations found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Payload Prefix")

	for _, org := range doc.Data {
		_ = table.Append(org.ID, org.Attributes.Name, org.Attributes.PayloadPrefix)
	}

	return table.Render()
}

// OrgsCreateOptions holds the attribute flags for creating an organization.
type OrgsCreateOptions struct {
	PayloadPrefix string
	X509OU        string
	X509O         string
	X509ST        string
	X509C         string
}

func newOrgsCreateCommand() *cobra.Command {
	var opts OrgsCreateOptions

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDispatcher()
			if err != nil {
				return err
			}

			doc, err := dispatch.Create(context.Background(), d, mdmapi.Organizations,
				mdmapi.OrganizationAttributes{
					Name:          args[0],
					PayloadPrefix: opts.PayloadPrefix,
					X509OU:        opts.X509OU,
					X509O:         opts.X509O,
					X509ST:        opts.X509ST,
					X509C:         opts.X509C,
				})
			if err != nil {
				return fmt.Errorf("creating organization: %w", err)
			}

			fmt.Printf("Created organization %q with id %s\n", doc.Data.Attributes.Name, doc.Data.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.PayloadPrefix, "payload-prefix", "", "reverse-DNS prefix for generated payloads")
	cmd.Flags().StringVar(&opts.X509OU, "ou", "", "X.509 organizational unit")
	cmd.Flags().StringVar(&opts.X509O, "o", "", "X.509 organization")
	cmd.Flags().StringVar(&opts.X509ST, "st", "", "X.509 state or location")
	cmd.Flags().StringVar(&opts.X509C, "country", "", "X.509 two-letter country code")

	return cmd
}
