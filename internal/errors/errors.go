package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput       = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON      = errors.New("invalid JSON format")
	ErrMultipleJSON     = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrRootNotContainer = errors.New("JSON document root must be an object or array")
	ErrDepthExceeded    = errors.New("maximum nesting depth exceeded")
	ErrAllocation       = errors.New("container growth refused")
	ErrTypeMismatch     = errors.New("value type mismatch")
	ErrSumOverflow      = errors.New("integer sum overflows int64")
	ErrFileNotFound     = errors.New("file not found")
	ErrFileEmpty        = errors.New("file is empty")
	ErrNoInput          = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath  = errors.New("invalid file path")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput      ErrorType = "input"
	ErrorTypeAllocation ErrorType = "allocation"
	ErrorTypeAnalysis   ErrorType = "analysis"
	ErrorTypeFormat     ErrorType = "format"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeOutput     ErrorType = "output"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewAnalysisError creates a new error related to walking a parsed tree
func NewAnalysisError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeAnalysis,
		Message: message,
		Err:     err,
	}
}

// NewFormatError creates a new error related to serialization
func NewFormatError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFormat,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return fmt.Sprintf("JSON syntax error: %s", lexErr.describe())
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return fmt.Sprintf("JSON structure error: %s", parseErr.describe())
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeAllocation:
			return fmt.Sprintf("Allocation error: %s", appErr.Message)
		case ErrorTypeAnalysis:
			return fmt.Sprintf("Analysis error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Formatting error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrDepthExceeded) {
		return "Error: The document is nested too deeply."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	return fmt.Sprintf("Error: %v", err)
}
