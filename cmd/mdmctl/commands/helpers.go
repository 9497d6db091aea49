package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cmdmnt/mdm-client/internal/auth"
	"github.com/cmdmnt/mdm-client/internal/logging"
	"github.com/cmdmnt/mdm-client/pkg/dispatch"
	"github.com/cmdmnt/mdm-client/pkg/mdmapi"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

var (
	ErrNoAPIEndpoint = errors.New("no API endpoint configured: pass --api or run mdmctl login")
	ErrBadFilterExpr = errors.New("filter must be field:op:value")
)

// saveConfig persists the current viper state, creating the config file on
// first use.
func saveConfig() error {
	err := viper.WriteConfig()
	if err != nil {
		err = viper.SafeWriteConfig()
	}

	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// newDispatcher builds a dispatcher from the effective configuration.
func newDispatcher() (*dispatch.Dispatcher, error) {
	endpoint := viper.GetString("api")
	if endpoint == "" {
		return nil, ErrNoAPIEndpoint
	}

	opts := []dispatch.Option{}

	if token := viper.GetString("token"); token != "" {
		opts = append(opts, dispatch.WithTokenManager(auth.NewStaticTokenManager(token)))
	}

	if viper.GetBool("verbose") {
		opts = append(opts, dispatch.WithLogger(logging.New(os.Stderr, zerolog.DebugLevel)))
	}

	return dispatch.New(endpoint, opts...), nil
}

// parseFilters turns repeated --filter field:op:value flags into a query.
func parseFilters(exprs []string, query *mdmapi.Query) (*mdmapi.Query, error) {
	for _, expr := range exprs {
		parts := strings.SplitN(expr, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: %q", ErrBadFilterExpr, expr)
		}

		query = query.Filter(parts[0], mdmapi.Operator(parts[1]), parts[2])
	}

	return query, nil
}

func outputJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

func outputYAML(v any) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return nil
}
