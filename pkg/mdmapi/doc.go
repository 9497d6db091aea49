// Package mdmapi describes operations against a JSON:API MDM backend as
// immutable action descriptors.
//
// Each resource collection (device groups, devices, profiles, organizations)
// is declared once as a Collection. A collection's verb methods (Index, Get,
// Post, Patch, Delete) are pure functions: they encode query parameters or
// wrap attributes in the JSON:API write envelope and return a Descriptor
// carrying the endpoint, HTTP method, content-negotiation headers, request
// body, and the operation's action triad. No I/O happens here.
//
// A Descriptor is consumed by a dispatch mechanism (see package dispatch)
// which performs the HTTP call and raises exactly one of the triad's SUCCESS
// or FAILURE identifiers after the initial REQUEST. The triad identifiers are
// globally unique across the registry, so they are safe to use as message
// tags for routing state updates.
//
// Basic usage:
//
//	query := mdmapi.NewQuery().Filter("name", mdmapi.OpEqual, "fleet-1")
//	desc, err := mdmapi.DeviceGroups.Index(query)
//	if err != nil {
//		// construction error: malformed filter, never reaches the network
//	}
//	// hand desc to a dispatcher
package mdmapi
