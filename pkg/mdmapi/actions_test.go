package mdmapi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdmnt/mdm-client/pkg/mdmapi"
)

func TestNewTriad(t *testing.T) {
	t.Parallel()

	triad := mdmapi.NewTriad("device_groups", mdmapi.VerbIndex)

	assert.Equal(t, mdmapi.ActionType("device_groups/INDEX_REQUEST"), triad.Request)
	assert.Equal(t, mdmapi.ActionType("device_groups/INDEX_SUCCESS"), triad.Success)
	assert.Equal(t, mdmapi.ActionType("device_groups/INDEX_FAILURE"), triad.Failure)
}

func TestTriad_All(t *testing.T) {
	t.Parallel()

	triad := mdmapi.NewTriad("profiles", mdmapi.VerbPost)
	all := triad.All()

	assert.Equal(t, triad.Request, all[0])
	assert.Equal(t, triad.Success, all[1])
	assert.Equal(t, triad.Failure, all[2])
}

func TestTriad_Contains(t *testing.T) {
	t.Parallel()

	triad := mdmapi.NewTriad("devices", mdmapi.VerbGet)

	assert.True(t, triad.Contains(triad.Request))
	assert.True(t, triad.Contains(triad.Success))
	assert.True(t, triad.Contains(triad.Failure))
	assert.False(t, triad.Contains(mdmapi.ActionType("devices/INDEX_REQUEST")))
}

// Every identifier in the registry must be distinct from every other,
// including across collections: the dispatch layer routes on identifier
// equality, so a collision would cross-wire two operations.
func TestRegisteredTriads_GloballyUnique(t *testing.T) {
	t.Parallel()

	triads := mdmapi.RegisteredTriads()
	require.NotEmpty(t, triads)

	seen := make(map[mdmapi.ActionType]struct{})

	for _, triad := range triads {
		for _, id := range triad.All() {
			_, dup := seen[id]
			assert.False(t, dup, "duplicate action identifier %q", id)
			seen[id] = struct{}{}
		}
	}

	// Four collections, five verbs each, three identifiers per verb.
	assert.Len(t, seen, 4*5*3)
}
