package ports

import (
	"context"
	"encoding/json"
	"io"
)

// Envelope is the canonical response wrapper used by every JSON endpoint:
// {"data": ..., "message": ..., "error": ...}.
type Envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Decode unmarshals the data field into v. A missing data field leaves v
// untouched.
func (e *Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

// MultipartPayload is a request body passed through verbatim, with its own
// content type (file uploads). No JSON serialization is applied.
type MultipartPayload struct {
	ContentType string
	Body        io.Reader
}

// CallOptions shapes a single API call. When Multipart is set it wins over
// Body; otherwise Body, if non-nil, is serialized as JSON.
type CallOptions struct {
	Body      any
	Multipart *MultipartPayload
}

// Gateway wraps outbound calls to the backend: bearer auth injection,
// envelope decoding, and the shared busy signal.
type Gateway interface {
	// Call performs an HTTP request and returns the decoded envelope.
	// A non-2xx status yields a *domain.RequestError carrying the
	// envelope's message or error field.
	Call(ctx context.Context, method, path string, opts CallOptions) (*Envelope, error)

	// Download fetches a binary payload and saves it to the download
	// directory, preferring the filename from the content-disposition
	// header over fallbackFilename. It returns the saved path.
	Download(ctx context.Context, path, fallbackFilename string) (string, error)

	// Busy reports whether at least one call is currently in flight.
	Busy() bool
}
