// Package schema validates document payloads returned by the document service.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rumsan/docsctl/internal/models"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidPayload wraps every shape mismatch reported by Validate.
var ErrInvalidPayload = errors.New("document payload does not match schema")

const documentListSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["data"],
  "properties": {
    "data": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "orgId", "fileName", "url", "status", "createdAt"],
        "properties": {
          "id":        {"type": "string"},
          "orgId":     {"type": "string"},
          "fileName":  {"type": "string"},
          "url":       {"type": "string"},
          "status":    {"type": "string"},
          "createdAt": {"type": "string"}
        }
      }
    }
  }
}`

const documentListSchemaURL = "documents.json"

var (
	compileOnce  sync.Once
	documentList *jsonschema.Schema
	compileErr   error
)

// DocumentListSchema returns the compiled schema for GET /documents responses.
func DocumentListSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(documentListSchemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse document list schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(documentListSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		documentList, compileErr = compiler.Compile(documentListSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile document list schema: %w", compileErr)
		}
	})
	return documentList, compileErr
}

// DocumentListValidator checks a raw list response and returns its documents.
type DocumentListValidator struct{}

// NewDocumentListValidator creates a validator backed by the document list schema.
func NewDocumentListValidator() *DocumentListValidator {
	return &DocumentListValidator{}
}

// Validate checks raw against the document list schema. On success the
// documents are returned in server order.
func (v *DocumentListValidator) Validate(raw []byte) ([]models.Document, error) {
	sch, err := DocumentListSchema()
	if err != nil {
		return nil, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %v", ErrInvalidPayload, err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	var resp models.DocumentListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if resp.Data == nil {
		resp.Data = []models.Document{}
	}
	return resp.Data, nil
}
