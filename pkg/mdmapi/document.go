package mdmapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ContentType is the JSON:API media type used for content negotiation on
// every request and expected on every response.
const ContentType = "application/vnd.api+json"

var validate = validator.New()

// writeDocument is the JSON:API write envelope, { data: { type, attributes } }.
// The id field is set only for updates; creation payloads never carry a
// client-assigned identifier. Attribute structs have no id field at all, so
// stripping is structural rather than a runtime filter.
type writeDocument struct {
	Data writeResource `json:"data"`
}

type writeResource struct {
	Type       string `json:"type"`
	ID         string `json:"id,omitempty"`
	Attributes any    `json:"attributes"`
}

// marshalWrite produces the creation body for attrs, validating the attribute
// set first so a malformed resource fails before dispatch.
func marshalWrite(resourceType string, attrs any) ([]byte, error) {
	return marshalEnvelope(resourceType, "", attrs)
}

// marshalUpdate produces the update body; JSON:API update envelopes carry the
// resource id inside data.
func marshalUpdate(resourceType, id string, attrs any) ([]byte, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	return marshalEnvelope(resourceType, id, attrs)
}

func marshalEnvelope(resourceType, id string, attrs any) ([]byte, error) {
	err := validate.Struct(attrs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAttributes, err)
	}

	body, err := json.Marshal(writeDocument{
		Data: writeResource{Type: resourceType, ID: id, Attributes: attrs},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding %s write envelope: %w", resourceType, err)
	}

	return body, nil
}

// ResourceObject is one decoded entry of a JSON:API read document.
type ResourceObject[T any] struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Attributes T      `json:"attributes"`
}

// Document is the decoded read envelope of an INDEX response: an ordered
// sequence of resource objects under a top-level data field.
type Document[T any] struct {
	Data []ResourceObject[T] `json:"data"`
}

// SingleDocument is the decoded read envelope of a GET or of the created
// resource returned by a POST.
type SingleDocument[T any] struct {
	Data ResourceObject[T] `json:"data"`
}

// rawResource defers attribute decoding so attributes can be re-decoded
// strictly while envelope-level extras (links, meta) stay tolerated.
type rawResource struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	Attributes json.RawMessage `json:"attributes"`
}

// UnmarshalList decodes an INDEX response body for resourceType. Unknown
// attribute keys, missing required attributes, and a mismatched resource type
// tag are all decode errors; the caller surfaces them through the operation's
// FAILURE identifier.
func UnmarshalList[T any](resourceType string, body []byte) (*Document[T], error) {
	var raw struct {
		Data []rawResource `json:"data"`
	}

	err := json.Unmarshal(body, &raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s list document: %w", resourceType, err)
	}

	doc := &Document[T]{Data: make([]ResourceObject[T], 0, len(raw.Data))}

	for i, entry := range raw.Data {
		obj, err := decodeResource[T](resourceType, entry)
		if err != nil {
			return nil, fmt.Errorf("decoding %s list document entry %d: %w", resourceType, i, err)
		}

		doc.Data = append(doc.Data, obj)
	}

	return doc, nil
}

// UnmarshalSingle decodes a single-resource response body for resourceType.
func UnmarshalSingle[T any](resourceType string, body []byte) (*SingleDocument[T], error) {
	var raw struct {
		Data rawResource `json:"data"`
	}

	err := json.Unmarshal(body, &raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s document: %w", resourceType, err)
	}

	obj, err := decodeResource[T](resourceType, raw.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s document: %w", resourceType, err)
	}

	return &SingleDocument[T]{Data: obj}, nil
}

func decodeResource[T any](resourceType string, raw rawResource) (ResourceObject[T], error) {
	var obj ResourceObject[T]

	if raw.Type != resourceType {
		return obj, fmt.Errorf("%w: got %q, want %q", ErrTypeMismatch, raw.Type, resourceType)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw.Attributes))
	decoder.DisallowUnknownFields()

	err := decoder.Decode(&obj.Attributes)
	if err != nil {
		return obj, fmt.Errorf("attributes: %w", err)
	}

	err = validate.Struct(obj.Attributes)
	if err != nil {
		return obj, fmt.Errorf("%w: %w", ErrInvalidAttributes, err)
	}

	obj.Type = raw.Type
	obj.ID = raw.ID

	return obj, nil
}
