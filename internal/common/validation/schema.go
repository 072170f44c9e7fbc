package validation

import (
	"fmt"
	"strings"

	"recruitment-workers/internal/common/errors"
	"recruitment-workers/pkg/registry"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validator checks job variables against the input schema of their task type.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles every input schema in the catalogue.
func NewValidator(reg *registry.ActivityRegistry) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(reg.Activities))}
	for _, activity := range reg.Activities {
		if len(activity.InputSchema) == 0 {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(activity.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %s: %w", activity.TaskType, err)
		}
		v.schemas[activity.TaskType] = schema
	}
	return v, nil
}

// ValidateJSON validates a raw variables document. Task types without a schema pass.
func (v *Validator) ValidateJSON(taskType, document string) *ValidationResult {
	schema, ok := v.schemas[taskType]
	if !ok {
		return &ValidationResult{Valid: true}
	}
	if strings.TrimSpace(document) == "" {
		document = "{}"
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(root)",
				Message: err.Error(),
				Code:    "MALFORMED_DOCUMENT",
			}},
		}
	}
	return toResult(result)
}

// ValidateInput validates already-decoded variables.
func (v *Validator) ValidateInput(taskType string, input map[string]interface{}) *ValidationResult {
	schema, ok := v.schemas[taskType]
	if !ok {
		return &ValidationResult{Valid: true}
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(input))
	if err != nil {
		return &ValidationResult{Valid: false, Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "MALFORMED_DOCUMENT"}}}
	}
	return toResult(result)
}

func toResult(result *gojsonschema.Result) *ValidationResult {
	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out
}

// AsError converts a failed result into a VALIDATION_ERROR, or nil when valid.
func (r *ValidationResult) AsError() error {
	if r.Valid {
		return nil
	}
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	stdErr := errors.NewValidationError(strings.Join(parts, "; "))
	stdErr.WithMetadata("violations", len(r.Errors))
	return stdErr
}
