package catalog

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// groupSchema describes a topic-group document.
const groupSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["sections"],
  "additionalProperties": false,
  "properties": {
    "sections": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "title", "subsections"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string", "pattern": "^[a-z0-9][a-z0-9_-]*$"},
          "title": {"type": "string", "minLength": 1},
          "subsections": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["id", "title"],
              "additionalProperties": false,
              "anyOf": [
                {"required": ["content"], "properties": {"content": {"required": ["basico"]}}},
                {"required": ["content_files"], "properties": {"content_files": {"required": ["basico"]}}}
              ],
              "properties": {
                "id": {"type": "string", "pattern": "^[a-z0-9][a-z0-9_-]*$"},
                "title": {"type": "string", "minLength": 1},
                "keywords": {"type": "array", "items": {"type": "string"}},
                "content": {"$ref": "#/definitions/levels"},
                "content_files": {"$ref": "#/definitions/levels"}
              }
            }
          }
        }
      }
    }
  },
  "definitions": {
    "levels": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "basico": {"type": "string", "minLength": 1},
        "intermedio": {"type": "string", "minLength": 1},
        "avanzado": {"type": "string", "minLength": 1}
      }
    }
  }
}`

var groupSchemaLoader = gojsonschema.NewStringLoader(groupSchema)

// validateGroup checks a decoded YAML document against the topic-group schema.
func validateGroup(doc any) error {
	result, err := gojsonschema.Validate(groupSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validating schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema violations: %s", strings.Join(msgs, "; "))
}
