package dispatch_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdmnt/mdm-client/internal/auth"
	"github.com/cmdmnt/mdm-client/pkg/dispatch"
	"github.com/cmdmnt/mdm-client/pkg/mdmapi"
)

// recorder captures every emitted action in order.
type recorder struct {
	actions []dispatch.Action
}

func (r *recorder) apply(_ context.Context, action dispatch.Action) {
	r.actions = append(r.actions, action)
}

func (r *recorder) types() []mdmapi.ActionType {
	types := make([]mdmapi.ActionType, 0, len(r.actions))
	for _, a := range r.actions {
		types = append(types, a.Type)
	}

	return types
}

func TestDispatcher_Dispatch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/device_groups", r.URL.Path)
		assert.Equal(t, "filter=name:eq:fleet-1", r.URL.RawQuery)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, mdmapi.ContentType, r.Header.Get("Accept"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", mdmapi.ContentType)
		_, _ = w.Write([]byte(`{"data":[{"type":"device_groups","id":"1","attributes":{"name":"fleet-1"}}]}`))
	}))
	defer server.Close()

	rec := &recorder{}
	d := dispatch.New(server.URL,
		dispatch.WithTokenManager(auth.NewStaticTokenManager("test-token")),
		dispatch.WithRetryMax(0),
	)
	d.Subscribe(rec.apply)

	desc, err := mdmapi.DeviceGroups.Index(mdmapi.NewQuery().Filter("name", mdmapi.OpEqual, "fleet-1"))
	require.NoError(t, err)

	final, err := d.Dispatch(context.Background(), desc)
	require.NoError(t, err)

	assert.Equal(t, mdmapi.ActionType("device_groups/INDEX_SUCCESS"), final.Type)
	assert.Equal(t, http.StatusOK, final.StatusCode)
	assert.NoError(t, final.Err)
	assert.NotEmpty(t, final.Payload)

	require.Equal(t, []mdmapi.ActionType{
		"device_groups/INDEX_REQUEST",
		"device_groups/INDEX_SUCCESS",
	}, rec.types())
	assert.Equal(t, rec.actions[0].DispatchID, rec.actions[1].DispatchID)
}

func TestDispatcher_Dispatch_UnprocessableEntity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var envelope map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))

		w.Header().Set("Content-Type", mdmapi.ContentType)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":[{"status":"422","title":"Validation Error","detail":"name already taken"}]}`))
	}))
	defer server.Close()

	rec := &recorder{}
	d := dispatch.New(server.URL, dispatch.WithRetryMax(0))
	d.Subscribe(rec.apply)

	desc, err := mdmapi.DeviceGroups.Post(mdmapi.DeviceGroupAttributes{Name: "fleet-2"})
	require.NoError(t, err)

	final, err := d.Dispatch(context.Background(), desc)
	require.NoError(t, err)

	assert.Equal(t, mdmapi.ActionType("device_groups/POST_FAILURE"), final.Type)
	assert.Equal(t, http.StatusUnprocessableEntity, final.StatusCode)
	require.Error(t, final.Err)
	assert.True(t, mdmapi.IsUnprocessable(final.Err))
	assert.Contains(t, final.Err.Error(), "name already taken")

	// FAILURE is terminal: no SUCCESS was ever raised for this invocation.
	require.Equal(t, []mdmapi.ActionType{
		"device_groups/POST_REQUEST",
		"device_groups/POST_FAILURE",
	}, rec.types())
}

func TestDispatcher_Dispatch_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	rec := &recorder{}
	d := dispatch.New(server.URL, dispatch.WithRetryMax(0))
	d.Subscribe(rec.apply)

	desc, err := mdmapi.DeviceGroups.Index(nil)
	require.NoError(t, err)

	final, err := d.Dispatch(context.Background(), desc)
	require.NoError(t, err)

	assert.Equal(t, mdmapi.ActionType("device_groups/INDEX_FAILURE"), final.Type)
	assert.Zero(t, final.StatusCode)
	require.Error(t, final.Err)
}

func TestDispatcher_Dispatch_NilDescriptor(t *testing.T) {
	d := dispatch.New("http://localhost:1")

	_, err := d.Dispatch(context.Background(), nil)
	assert.ErrorIs(t, err, dispatch.ErrNilDescriptor)
}

func TestDispatcher_FreshLifecyclePerDispatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	rec := &recorder{}
	d := dispatch.New(server.URL, dispatch.WithRetryMax(0))
	d.Subscribe(rec.apply)

	desc, err := mdmapi.DeviceGroups.Index(nil)
	require.NoError(t, err)

	_, err = d.Dispatch(context.Background(), desc)
	require.NoError(t, err)
	_, err = d.Dispatch(context.Background(), desc)
	require.NoError(t, err)

	require.Len(t, rec.actions, 4)
	assert.NotEqual(t, rec.actions[0].DispatchID, rec.actions[2].DispatchID)
}

func TestList(t *testing.T) {
	t.Run("decodes the response document", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":[
				{"type":"device_groups","id":"1","attributes":{"name":"fleet-1"}},
				{"type":"device_groups","id":"2","attributes":{"name":"fleet-2"}}
			]}`))
		}))
		defer server.Close()

		d := dispatch.New(server.URL, dispatch.WithRetryMax(0))

		doc, err := dispatch.List(context.Background(), d, mdmapi.DeviceGroups, nil)
		require.NoError(t, err)
		require.Len(t, doc.Data, 2)
		assert.Equal(t, "fleet-1", doc.Data[0].Attributes.Name)
	})

	t.Run("decode failure surfaces as FAILURE, not partial success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// second entry omits the required name attribute
			_, _ = w.Write([]byte(`{"data":[
				{"type":"device_groups","id":"1","attributes":{"name":"fleet-1"}},
				{"type":"device_groups","id":"2","attributes":{}}
			]}`))
		}))
		defer server.Close()

		rec := &recorder{}
		d := dispatch.New(server.URL, dispatch.WithRetryMax(0))
		d.Subscribe(rec.apply)

		doc, err := dispatch.List(context.Background(), d, mdmapi.DeviceGroups, nil)
		require.Error(t, err)
		assert.Nil(t, doc)
		assert.ErrorIs(t, err, mdmapi.ErrInvalidAttributes)

		require.Equal(t, []mdmapi.ActionType{
			"device_groups/INDEX_REQUEST",
			"device_groups/INDEX_FAILURE",
		}, rec.types())
	})

	t.Run("construction error emits nothing", func(t *testing.T) {
		rec := &recorder{}
		d := dispatch.New("http://localhost:1", dispatch.WithRetryMax(0))
		d.Subscribe(rec.apply)

		query := mdmapi.NewQuery().Filter("name", mdmapi.Operator("bogus"), "x")

		_, err := dispatch.List(context.Background(), d, mdmapi.DeviceGroups, query)
		require.Error(t, err)
		assert.ErrorIs(t, err, mdmapi.ErrUnknownOperator)
		assert.Empty(t, rec.actions)
	})
}

func TestCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, mdmapi.ContentType, r.Header.Get("Content-Type"))

		body, _ := json.Marshal(map[string]any{
			"data": map[string]any{
				"type":       "device_groups",
				"id":         "42",
				"attributes": map[string]any{"name": "fleet-2"},
			},
		})
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	}))
	defer server.Close()

	d := dispatch.New(server.URL, dispatch.WithRetryMax(0))

	doc, err := dispatch.Create(context.Background(), d, mdmapi.DeviceGroups,
		mdmapi.DeviceGroupAttributes{Name: "fleet-2"})
	require.NoError(t, err)
	assert.Equal(t, "42", doc.Data.ID)
	assert.Equal(t, "fleet-2", doc.Data.Attributes.Name)
}

func TestUpdateAndRemove(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			assert.Equal(t, "/api/v1/organizations/3", r.URL.Path)
			_, _ = w.Write([]byte(`{"data":{"type":"organizations","id":"3","attributes":{"name":"Acme"}}}`))
		case http.MethodDelete:
			assert.Equal(t, "/api/v1/profiles/9", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer server.Close()

	d := dispatch.New(server.URL, dispatch.WithRetryMax(0))

	doc, err := dispatch.Update(context.Background(), d, mdmapi.Organizations, "3",
		mdmapi.OrganizationAttributes{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "3", doc.Data.ID)

	err = dispatch.Remove(context.Background(), d, mdmapi.Profiles, "9")
	require.NoError(t, err)
}
