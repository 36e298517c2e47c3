// Package api embeds the OpenAPI description of the MyRegistry HTTP interface.
package api

import _ "embed"

//go:embed my-registry.openapi.yaml
var openAPISpec []byte

// OpenAPISpec returns a copy of the embedded OpenAPI 3 document.
func OpenAPISpec() []byte {
	out := make([]byte, len(openAPISpec))
	copy(out, openAPISpec)
	return out
}
