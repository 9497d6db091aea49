package mdmapi

import "net/http"

// Descriptor is the declarative value describing one HTTP-backed operation.
// It is produced by a collection's verb methods and consumed by a dispatch
// mechanism; it performs no I/O itself and retains no state. Body is nil for
// methods that carry no payload.
type Descriptor struct {
	Endpoint string
	Method   string
	Types    Triad
	Headers  http.Header
	Body     []byte
}

func readHeaders() http.Header {
	return http.Header{
		"Accept": []string{ContentType},
	}
}

func writeHeaders() http.Header {
	return http.Header{
		"Accept":       []string{ContentType},
		"Content-Type": []string{ContentType},
	}
}
