package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// analysisSchemaJSON is the JSON Schema for analyzer payloads.
// Embedded as a constant to avoid filesystem dependencies.
const analysisSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://chillax.ai/schemas/analysis.json",
  "type": "object",
  "required": ["modules"],
  "properties": {
    "root": { "type": "string" },
    "modules": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["path"],
        "properties": {
          "path": { "type": "string", "minLength": 1 },
          "functions": {
            "type": "array",
            "items": { "$ref": "#/$defs/member" }
          },
          "classes": {
            "type": "array",
            "items": { "$ref": "#/$defs/member" }
          },
          "imports": {
            "type": "array",
            "items": { "type": "string" }
          },
          "error": { "type": "string" }
        }
      }
    },
    "edges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["source", "target"],
        "properties": {
          "source": { "type": "string", "minLength": 1 },
          "target": { "type": "string", "minLength": 1 },
          "label": { "type": "string" }
        }
      }
    },
    "stats": {
      "type": "object",
      "properties": {
        "total_modules": { "type": "integer", "minimum": 0 },
        "total_functions": { "type": "integer", "minimum": 0 },
        "total_classes": { "type": "integer", "minimum": 0 }
      }
    }
  },
  "$defs": {
    "member": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": { "type": "string", "minLength": 1 },
        "start_line": { "type": "integer", "minimum": 0 },
        "end_line": { "type": "integer", "minimum": 0 },
        "args": { "type": "array", "items": { "type": "string" } },
        "docstring": { "type": "string" },
        "methods": { "type": "array" }
      }
    }
  }
}`

// traceSchemaJSON is the JSON Schema for execution-trace payloads.
const traceSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://chillax.ai/schemas/trace.json",
  "type": "object",
  "required": ["steps"],
  "properties": {
    "file": { "type": "string" },
    "steps": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "sid", "kind", "label"],
        "properties": {
          "id": { "type": "integer", "minimum": 1 },
          "sid": { "type": "string", "minLength": 1 },
          "parent": { "type": "integer", "minimum": 0 },
          "kind": {
            "type": "string",
            "enum": ["start", "import", "define", "class", "assign", "call", "return", "condition", "loop"]
          },
          "label": { "type": "string" },
          "detail": { "type": "string" },
          "line": { "type": "integer", "minimum": 0 },
          "color": { "type": "string" }
        }
      }
    }
  }
}`

// Validator validates analyzer payloads before any model is built from them.
// It is safe for concurrent use: compiled schemas are immutable after construction.
type Validator struct {
	analysisSchema *jsonschema.Schema
	traceSchema    *jsonschema.Schema
}

// NewValidator creates a Validator with both payload schemas pre-compiled.
func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat()

	analysis, err := compileSchema(c, "https://chillax.ai/schemas/analysis.json", analysisSchemaJSON)
	if err != nil {
		return nil, err
	}
	trace, err := compileSchema(c, "https://chillax.ai/schemas/trace.json", traceSchemaJSON)
	if err != nil {
		return nil, err
	}

	return &Validator{analysisSchema: analysis, traceSchema: trace}, nil
}

func compileSchema(c *jsonschema.Compiler, id, source string) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema %s: %w", id, err)
	}
	if err := c.AddResource(id, doc); err != nil {
		return nil, fmt.Errorf("add schema resource %s: %w", id, err)
	}
	compiled, err := c.Compile(id)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", id, err)
	}
	return compiled, nil
}

// ValidateAnalysis checks raw analyzer JSON against the analysis schema and
// decodes it. Returns VALIDATION_ERROR or DECODE_ERROR on failure.
func (v *Validator) ValidateAnalysis(raw []byte) (*AnalysisResult, error) {
	if err := v.validate(v.analysisSchema, raw, "analysis"); err != nil {
		return nil, err
	}
	var result AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, NewError(ErrCodeDecode, "failed to decode analysis payload").WithCause(err)
	}
	if result.Stats == (Stats{}) {
		result.Stats = result.ComputeStats()
	}
	return &result, nil
}

// ValidateTrace checks raw trace JSON against the trace schema, decodes it,
// and enforces the structural trace invariants (unique sids, earlier parents).
func (v *Validator) ValidateTrace(raw []byte) (*Trace, error) {
	if err := v.validate(v.traceSchema, raw, "trace"); err != nil {
		return nil, err
	}
	var trace Trace
	if err := json.Unmarshal(raw, &trace); err != nil {
		return nil, NewError(ErrCodeDecode, "failed to decode trace payload").WithCause(err)
	}
	if err := trace.CheckIntegrity(); err != nil {
		return nil, err
	}
	return &trace, nil
}

func (v *Validator) validate(s *jsonschema.Schema, raw []byte, what string) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return NewErrorf(ErrCodeDecode, "%s payload is not valid JSON", what).WithCause(err)
	}
	if err := s.Validate(doc); err != nil {
		return NewErrorf(ErrCodeValidation, "%s payload failed schema validation: %s", what, err.Error()).
			WithCause(err)
	}
	return nil
}
