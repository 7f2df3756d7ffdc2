package domain

import "encoding/json"

// Envelope is the upstream API's response shape. Catalog and order payloads
// are domain-specific and opaque to the storefront; they are passed through
// without interpretation.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Meta    json.RawMessage `json:"meta,omitempty"`
}
