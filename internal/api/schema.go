package api

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// requestSchema checks field types only. Presence is left to the
// recommendation service so missing fields are reported as incomplete.
//
//go:embed schema.json
var requestSchema []byte

var requestSchemaLoader = gojsonschema.NewBytesLoader(requestSchema)

// validateBody checks a raw request body against requestSchema.
func validateBody(body []byte) error {
	result, err := gojsonschema.Validate(requestSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("invalid request: %s", strings.Join(errs, "; "))
	}
	return nil
}
