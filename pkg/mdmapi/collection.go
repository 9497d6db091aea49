package mdmapi

import (
	"net/http"
	"net/url"
)

// Collection declares one resource collection: its JSON:API type tag, its
// endpoint, and one action triad per verb. T is the collection's attribute
// schema. The verb methods are the descriptor factories: pure functions from
// operation inputs to an immutable Descriptor.
type Collection[T any] struct {
	resourceType string
	endpoint     string

	index  Triad
	get    Triad
	post   Triad
	patch  Triad
	delete Triad
}

// NewCollection declares a collection. resourceType is the JSON:API type tag
// ("device_groups"); endpoint is the collection URL path.
func NewCollection[T any](resourceType, endpoint string) Collection[T] {
	return Collection[T]{
		resourceType: resourceType,
		endpoint:     endpoint,
		index:        NewTriad(resourceType, VerbIndex),
		get:          NewTriad(resourceType, VerbGet),
		post:         NewTriad(resourceType, VerbPost),
		patch:        NewTriad(resourceType, VerbPatch),
		delete:       NewTriad(resourceType, VerbDelete),
	}
}

// Type returns the collection's JSON:API resource type tag.
func (c Collection[T]) Type() string {
	return c.resourceType
}

// Endpoint returns the collection URL path.
func (c Collection[T]) Endpoint() string {
	return c.endpoint
}

// Triads returns every triad the collection registers.
func (c Collection[T]) Triads() []Triad {
	return []Triad{c.index, c.get, c.post, c.patch, c.delete}
}

// IndexTriad returns the INDEX operation's triad.
func (c Collection[T]) IndexTriad() Triad { return c.index }

// PostTriad returns the POST operation's triad.
func (c Collection[T]) PostTriad() Triad { return c.post }

// Index describes listing the collection with the given query. A nil query
// lists everything; the endpoint then carries no query string at all.
func (c Collection[T]) Index(q *Query) (*Descriptor, error) {
	encoded, err := q.Encode()
	if err != nil {
		return nil, err
	}

	endpoint := c.endpoint
	if encoded != "" {
		endpoint += "?" + encoded
	}

	return &Descriptor{
		Endpoint: endpoint,
		Method:   http.MethodGet,
		Types:    c.index,
		Headers:  readHeaders(),
	}, nil
}

// Get describes reading a single resource by id.
func (c Collection[T]) Get(id string) (*Descriptor, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	return &Descriptor{
		Endpoint: c.endpoint + "/" + url.PathEscape(id),
		Method:   http.MethodGet,
		Types:    c.get,
		Headers:  readHeaders(),
	}, nil
}

// Post describes creating a resource from attrs. The body is the JSON:API
// write envelope; attribute validation failures are construction errors.
func (c Collection[T]) Post(attrs T) (*Descriptor, error) {
	body, err := marshalWrite(c.resourceType, attrs)
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		Endpoint: c.endpoint,
		Method:   http.MethodPost,
		Types:    c.post,
		Headers:  writeHeaders(),
		Body:     body,
	}, nil
}

// Patch describes updating the resource id with attrs. The update envelope
// carries the id inside data, per JSON:API update semantics.
func (c Collection[T]) Patch(id string, attrs T) (*Descriptor, error) {
	body, err := marshalUpdate(c.resourceType, id, attrs)
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		Endpoint: c.endpoint + "/" + url.PathEscape(id),
		Method:   http.MethodPatch,
		Types:    c.patch,
		Headers:  writeHeaders(),
		Body:     body,
	}, nil
}

// Delete describes removing the resource id. No body.
func (c Collection[T]) Delete(id string) (*Descriptor, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	return &Descriptor{
		Endpoint: c.endpoint + "/" + url.PathEscape(id),
		Method:   http.MethodDelete,
		Types:    c.delete,
		Headers:  readHeaders(),
	}, nil
}
