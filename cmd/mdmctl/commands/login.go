package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/cmdmnt/mdm-client/internal/auth"
	"github.com/cmdmnt/mdm-client/pkg/dispatch"
	"github.com/cmdmnt/mdm-client/pkg/mdmapi"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		token       string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an MDM server",
		Long:  "Store an API endpoint and token, verifying them against the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			if apiEndpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API endpoint: ")
				apiEndpoint, _ = reader.ReadString('\n')
				apiEndpoint = strings.TrimSpace(apiEndpoint)
			}

			if apiEndpoint == "" {
				return ErrNoAPIEndpoint
			}

			if token == "" {
				fmt.Print("API token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = strings.TrimSpace(string(byteToken))
				fmt.Println()
			}

			// Verify the credentials with a cheap list before persisting.
			d := dispatch.New(apiEndpoint,
				dispatch.WithTokenManager(auth.NewStaticTokenManager(token)))

			_, err := dispatch.List(context.Background(), d, mdmapi.DeviceGroups,
				mdmapi.NewQuery().Limit(1))
			if err != nil {
				return fmt.Errorf("failed to connect to API: %w", err)
			}

			viper.Set("api", apiEndpoint)
			viper.Set("token", token)

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Printf("Logged in to %s\n", apiEndpoint)

			return nil
		},
	}

	cmd.Flags().StringVar(&apiEndpoint, "api", "", "API endpoint URL")
	cmd.Flags().StringVar(&token, "token", "", "API token")

	return cmd
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mdmctl %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
