package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdmnt/mdm-client/pkg/mdmapi"
)

func TestParseFilters(t *testing.T) {
	t.Parallel()

	t.Run("valid expressions", func(t *testing.T) {
		t.Parallel()

		query, err := parseFilters([]string{"name:eq:fleet-1", "model:contains:MacBook"}, mdmapi.NewQuery())
		require.NoError(t, err)

		encoded, err := query.Encode()
		require.NoError(t, err)
		assert.Equal(t, "filter=name:eq:fleet-1&filter=model:contains:MacBook", encoded)
	})

	t.Run("value may contain colons", func(t *testing.T) {
		t.Parallel()

		query, err := parseFilters([]string{"last_seen:gte:2026-01-01T00:00:00Z"}, mdmapi.NewQuery())
		require.NoError(t, err)

		filters := query.Filters()
		require.Len(t, filters, 1)
		assert.Equal(t, "2026-01-01T00:00:00Z", filters[0].Value)
	})

	t.Run("malformed expression", func(t *testing.T) {
		t.Parallel()

		_, err := parseFilters([]string{"name=fleet-1"}, mdmapi.NewQuery())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBadFilterExpr)
	})

	t.Run("unknown operator is rejected at encode time", func(t *testing.T) {
		t.Parallel()

		query, err := parseFilters([]string{"name:like:fleet"}, mdmapi.NewQuery())
		require.NoError(t, err)

		_, err = query.Encode()
		assert.ErrorIs(t, err, mdmapi.ErrUnknownOperator)
	})
}
