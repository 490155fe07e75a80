// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/nodevision/internal/models"
)

// Issue types reported to clients.
const (
	IssueValidation = "validation"
	IssueJSONDecode = "json_decode"
)

// CodeValidationFailed is the API error code for rejected payloads.
const CodeValidationFailed = "VALIDATION_FAILED"

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError is a single failed rule.
type ValidationError struct {
	path    string
	tag     string
	param   string
	value   any
	message string
}

// Path returns the JSON path of the offending field, e.g. "nodes[1].id".
func (e *ValidationError) Path() string {
	return e.path
}

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string {
	return e.tag
}

// Param returns the tag parameter ("0" for "gte=0").
func (e *ValidationError) Param() string {
	return e.param
}

// Value returns the rejected value.
func (e *ValidationError) Value() any {
	return e.value
}

func (e *ValidationError) Error() string {
	return e.message
}

// Issue is the client facing form of one problem.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// RequestValidationError collects every failed rule of one value.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual failures.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(ve.errors))
	for i := range ve.errors {
		messages = append(messages, ve.errors[i].Error())
	}
	return strings.Join(messages, "; ")
}

// Issues converts the failures to client issues.
func (ve *RequestValidationError) Issues() []Issue {
	issues := make([]Issue, 0, len(ve.errors))
	for i := range ve.errors {
		issues = append(issues, Issue{
			Path:    ve.errors[i].path,
			Message: ve.errors[i].message,
			Type:    IssueValidation,
		})
	}
	return issues
}

// APIError mirrors the api package's error body without importing it.
type APIError struct {
	Code    string
	Message string
	Details map[string]any
}

// ToAPIError converts the failures to an API error carrying the issue list.
func (ve *RequestValidationError) ToAPIError() *APIError {
	if len(ve.errors) == 0 {
		return &APIError{Code: CodeValidationFailed, Message: "Validation failed"}
	}
	msg := ve.errors[0].message
	if len(ve.errors) > 1 {
		parts := make([]string, 0, len(ve.errors))
		for i := range ve.errors {
			parts = append(parts, fmt.Sprintf("%s: %s", ve.errors[i].path, ve.errors[i].message))
		}
		msg = strings.Join(parts, "; ")
	}
	return &APIError{
		Code:    CodeValidationFailed,
		Message: msg,
		Details: map[string]any{"issues": ve.Issues()},
	}
}

// GetValidator returns the singleton validator. Field names in errors are
// the JSON names.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)
	})
	return validate
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	default:
		return name
	}
}

// ValidateStruct validates s against its struct tags. It returns nil when s
// is valid.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			errors: []ValidationError{{path: "", tag: "unknown", message: err.Error()}},
		}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fe := range validationErrs {
		path := fieldPath(fe.Namespace())
		fieldErrors[i] = ValidationError{
			path:    path,
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translateError(fe, path),
		}
	}
	return &RequestValidationError{errors: fieldErrors}
}

// ValidateProject checks a project graph's struct rules and node id
// uniqueness.
func ValidateProject(p *models.ProjectGraph) *RequestValidationError {
	if p == nil {
		return &RequestValidationError{
			errors: []ValidationError{{path: "project", tag: "required", message: "project is required"}},
		}
	}
	verr := ValidateStruct(p)
	if dup := p.DuplicateNodeID(); dup != "" {
		if verr == nil {
			verr = &RequestValidationError{}
		}
		verr.errors = append(verr.errors, ValidationError{
			path:    "nodes",
			tag:     "unique",
			value:   dup,
			message: fmt.Sprintf("duplicate node id %q", dup),
		})
	}
	return verr
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"uuid":     "%s must be a valid UUID",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translateError(fe validator.FieldError, path string) string {
	tag, param := fe.Tag(), fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, path)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, path, param)
	}

	isString := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", path, param)
		}
		return fmt.Sprintf("%s must be at least %s", path, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", path, param)
		}
		return fmt.Sprintf("%s must be at most %s", path, param)
	default:
		return fmt.Sprintf("%s failed %s validation", path, tag)
	}
}
