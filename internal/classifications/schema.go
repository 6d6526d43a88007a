package classifications

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const requestSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"text": {"type": "string"},
		"pdf_base64": {"type": "string"},
		"model": {"type": "string"},
		"clause_types": {
			"type": "array",
			"items": {"type": "string"}
		}
	},
	"additionalProperties": false
}`

var compiledRequestSchema = jsonschema.MustCompileString("classify-request.json", requestSchema)

// validateRequest checks the raw request body against the request schema
// before any field-level decoding happens.
func validateRequest(body []byte) error {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if err := compiledRequestSchema.Validate(decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	return nil
}
