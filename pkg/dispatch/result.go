package dispatch

import (
	"context"

	"github.com/cmdmnt/mdm-client/pkg/mdmapi"
)

// The helpers below combine descriptor construction, dispatch, and response
// decoding for one collection verb. Decoding happens before the terminal
// action is chosen, so a response that does not match the collection's schema
// surfaces as FAILURE rather than a partially populated success payload.
// Construction errors return immediately without emitting anything.

// List dispatches an INDEX of c and returns the decoded list document.
func List[T any](ctx context.Context, d *Dispatcher, c mdmapi.Collection[T], q *mdmapi.Query) (*mdmapi.Document[T], error) {
	desc, err := c.Index(q)
	if err != nil {
		return nil, err
	}

	var doc *mdmapi.Document[T]

	final, err := d.dispatch(ctx, desc, func(body []byte) error {
		parsed, decodeErr := mdmapi.UnmarshalList[T](c.Type(), body)
		if decodeErr != nil {
			return decodeErr
		}

		doc = parsed

		return nil
	})
	if err != nil {
		return nil, err
	}

	if final.Err != nil {
		return nil, final.Err
	}

	return doc, nil
}

// Fetch dispatches a GET of id and returns the decoded resource document.
func Fetch[T any](ctx context.Context, d *Dispatcher, c mdmapi.Collection[T], id string) (*mdmapi.SingleDocument[T], error) {
	desc, err := c.Get(id)
	if err != nil {
		return nil, err
	}

	return single(ctx, d, c, desc)
}

// Create dispatches a POST of attrs and returns the created resource as the
// backend reports it, server-assigned id included.
func Create[T any](ctx context.Context, d *Dispatcher, c mdmapi.Collection[T], attrs T) (*mdmapi.SingleDocument[T], error) {
	desc, err := c.Post(attrs)
	if err != nil {
		return nil, err
	}

	return single(ctx, d, c, desc)
}

// Update dispatches a PATCH of id with attrs and returns the updated
// resource.
func Update[T any](ctx context.Context, d *Dispatcher, c mdmapi.Collection[T], id string, attrs T) (*mdmapi.SingleDocument[T], error) {
	desc, err := c.Patch(id, attrs)
	if err != nil {
		return nil, err
	}

	return single(ctx, d, c, desc)
}

// Remove dispatches a DELETE of id. The response body is not decoded; the
// backend answers deletes with an empty document.
func Remove[T any](ctx context.Context, d *Dispatcher, c mdmapi.Collection[T], id string) error {
	desc, err := c.Delete(id)
	if err != nil {
		return err
	}

	final, err := d.dispatch(ctx, desc, nil)
	if err != nil {
		return err
	}

	return final.Err
}

func single[T any](ctx context.Context, d *Dispatcher, c mdmapi.Collection[T], desc *mdmapi.Descriptor) (*mdmapi.SingleDocument[T], error) {
	var doc *mdmapi.SingleDocument[T]

	final, err := d.dispatch(ctx, desc, func(body []byte) error {
		parsed, decodeErr := mdmapi.UnmarshalSingle[T](c.Type(), body)
		if decodeErr != nil {
			return decodeErr
		}

		doc = parsed

		return nil
	})
	if err != nil {
		return nil, err
	}

	if final.Err != nil {
		return nil, final.Err
	}

	return doc, nil
}
