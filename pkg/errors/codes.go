package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
// Codes are formatted as <MODULE>_<NNN>.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeFeatureDisabled    ErrorCode = "COMMON_015"
)

// Aliases used across the code base.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")

	CodeDatabaseError = ErrCodeDatabaseError
	CodeCacheError    = ErrCodeCacheError
)

// Drug catalog error codes
const (
	ErrCodeDrugNotFound       ErrorCode = "DRUG_001"
	ErrCodeDrugNameRequired   ErrorCode = "DRUG_002"
	ErrCodePropertiesNotFound ErrorCode = "DRUG_003"
	ErrCodeNoData             ErrorCode = "DRUG_004"
)

// Interaction network error codes
const (
	ErrCodeNoInteractions ErrorCode = "NET_001"
	ErrCodeLayoutFailed   ErrorCode = "NET_002"
	ErrCodeRenderFailed   ErrorCode = "NET_003"
	ErrCodeExportFailed   ErrorCode = "NET_004"
	ErrCodeGraphSinkError ErrorCode = "NET_005"
)

// Infrastructure error codes
const (
	ErrCodeConfigInvalid  ErrorCode = "INFRA_001"
	ErrCodeConfigMissing  ErrorCode = "INFRA_002"
	ErrCodeStorageError   ErrorCode = "INFRA_003"
	ErrCodeMigrationError ErrorCode = "INFRA_004"
	ErrCodeRetryExhausted ErrorCode = "INFRA_005"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeFeatureDisabled:    http.StatusNotImplemented,

	ErrCodeDrugNotFound:       http.StatusNotFound,
	ErrCodeDrugNameRequired:   http.StatusBadRequest,
	ErrCodePropertiesNotFound: http.StatusNotFound,
	ErrCodeNoData:             http.StatusOK,

	ErrCodeNoInteractions: http.StatusOK,
	ErrCodeLayoutFailed:   http.StatusInternalServerError,
	ErrCodeRenderFailed:   http.StatusInternalServerError,
	ErrCodeExportFailed:   http.StatusBadGateway,
	ErrCodeGraphSinkError: http.StatusBadGateway,

	ErrCodeConfigInvalid:  http.StatusInternalServerError,
	ErrCodeConfigMissing:  http.StatusInternalServerError,
	ErrCodeStorageError:   http.StatusBadGateway,
	ErrCodeMigrationError: http.StatusInternalServerError,
	ErrCodeRetryExhausted: http.StatusServiceUnavailable,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization error",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeFeatureDisabled:    "feature disabled",

	ErrCodeDrugNotFound:       "drug not found",
	ErrCodeDrugNameRequired:   "drug name is required",
	ErrCodePropertiesNotFound: "no properties recorded for drug",
	ErrCodeNoData:             "No data available",

	ErrCodeNoInteractions: "No interactions found",
	ErrCodeLayoutFailed:   "network layout failed",
	ErrCodeRenderFailed:   "network rendering failed",
	ErrCodeExportFailed:   "network export failed",
	ErrCodeGraphSinkError: "graph database error",

	ErrCodeConfigInvalid:  "invalid configuration",
	ErrCodeConfigMissing:  "missing configuration",
	ErrCodeStorageError:   "object storage error",
	ErrCodeMigrationError: "migration failed",
	ErrCodeRetryExhausted: "operation failed after retries",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
