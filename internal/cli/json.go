package cli

import (
	stderrors "errors"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/gridsec/gridwatch/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeUnreachable    = "BACKEND_UNREACHABLE"
	ErrCodeHTTP           = "HTTP_ERROR"
	ErrCodeTimeout        = "HTTP_TIMEOUT"
	ErrCodeParse          = "PARSE_ERROR"
	ErrCodeBusy           = "BUSY"
	ErrCodeUnknown        = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: true, Data: data})
}

// WriteJSONError writes an error response to the writer.
func WriteJSONError(w io.Writer, code, message, suggestion string, details interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Error: &JSONError{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
			Details:    details,
		},
	})
}

// WriteJSONFromError converts err to a JSON error response. data is kept in
// the envelope so callers can report partial state alongside the failure.
func WriteJSONFromError(w io.Writer, err error, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{Data: data, Error: ErrorToJSON(err)})
}

func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var gwErr *errors.Error
	if !stderrors.As(err, &gwErr) {
		return &JSONError{Code: ErrCodeUnknown, Message: strings.TrimSpace(err.Error())}
	}

	out := &JSONError{
		Code:       mapErrorCode(gwErr),
		Message:    gwErr.Message,
		Suggestion: gwErr.Suggestion,
	}
	if status, ok := errors.HTTPStatus(err); ok {
		out.Details = map[string]interface{}{"status": status}
	}
	return out
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(e *errors.Error) string {
	switch e.Code {
	case errors.ErrConfig:
		msgLower := strings.ToLower(e.Message)
		if strings.Contains(msgLower, "not found") || strings.Contains(msgLower, "couldn't find") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrConnectivity:
		return ErrCodeUnreachable
	case errors.ErrHTTP:
		if e.Timeout {
			return ErrCodeTimeout
		}
		return ErrCodeHTTP
	case errors.ErrParse:
		return ErrCodeParse
	case errors.ErrBusy:
		return ErrCodeBusy
	}
	return ErrCodeUnknown
}
