package mdmapi_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdmnt/mdm-client/pkg/mdmapi"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      mdmapi.APIError
		expected string
	}{
		{
			name:     "title and detail",
			err:      mdmapi.APIError{Title: "Validation Error", Detail: "name is required"},
			expected: "Validation Error: name is required",
		},
		{
			name:     "detail only",
			err:      mdmapi.APIError{Detail: "name is required"},
			expected: "name is required",
		},
		{
			name:     "title only",
			err:      mdmapi.APIError{Title: "Not Found"},
			expected: "Not Found",
		},
		{
			name:     "empty",
			err:      mdmapi.APIError{},
			expected: "unknown API error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseResponseError(t *testing.T) {
	t.Parallel()

	t.Run("error document", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"errors":[{"status":"422","title":"Validation Error","detail":"name is required","source":{"pointer":"/data/attributes/name"}}]}`)

		respErr := mdmapi.ParseResponseError(body, 422)
		require.Len(t, respErr.Errors, 1)
		assert.Equal(t, 422, respErr.StatusCode)
		assert.Equal(t, "Validation Error: name is required", respErr.Error())

		first := respErr.FirstError()
		require.NotNil(t, first)
		assert.Equal(t, "/data/attributes/name", first.Source.Pointer)
	})

	t.Run("non-JSON body still yields a usable error", func(t *testing.T) {
		t.Parallel()

		respErr := mdmapi.ParseResponseError([]byte("Bad Gateway"), 502)
		assert.Equal(t, 502, respErr.StatusCode)
		assert.Equal(t, "HTTP 502", respErr.Error())
		assert.Nil(t, respErr.FirstError())
	})

	t.Run("multiple errors", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"errors":[{"title":"a"},{"title":"b"}]}`)

		respErr := mdmapi.ParseResponseError(body, 400)
		assert.Contains(t, respErr.Error(), "multiple errors")
	})
}

func TestStatusPredicates(t *testing.T) {
	t.Parallel()

	notFound := mdmapi.ParseResponseError(nil, 404)
	unprocessable := mdmapi.ParseResponseError(nil, 422)

	assert.True(t, mdmapi.IsNotFound(notFound))
	assert.False(t, mdmapi.IsNotFound(unprocessable))
	assert.True(t, mdmapi.IsUnprocessable(unprocessable))
	assert.False(t, mdmapi.IsUnprocessable(notFound))

	wrapped := fmt.Errorf("listing device groups: %w", notFound)
	assert.True(t, mdmapi.IsNotFound(wrapped))

	assert.False(t, mdmapi.IsNotFound(mdmapi.ErrMissingID))
}
