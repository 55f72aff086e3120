package errors

// ErrorCode identifies an application error class in API responses and logs
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 200
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1002
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1003
	ErrorCode_NOT_FOUND        ErrorCode = 1004

	// Pipeline stages
	ErrorCode_VALIDATION_FAILED     ErrorCode = 2000
	ErrorCode_EXTRACTION_FAILED     ErrorCode = 2001
	ErrorCode_COMPRESSION_FAILED    ErrorCode = 2002
	ErrorCode_TRANSCRIPTION_FAILED  ErrorCode = 2003
	ErrorCode_TRANSLATION_FAILED    ErrorCode = 2004
	ErrorCode_FORMATTING_FAILED     ErrorCode = 2005
	ErrorCode_SUMMARIZATION_FAILED  ErrorCode = 2006
	ErrorCode_PARSE_FAILED          ErrorCode = 2007
	ErrorCode_MEDIA_FETCH_FAILED    ErrorCode = 2008
	ErrorCode_PROVIDER_UNCONFIGURED ErrorCode = 2009

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 3000
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 3001
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 3002
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_UNAUTHENTICATED:                 "UNAUTHENTICATED",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_VALIDATION_FAILED:               "VALIDATION_FAILED",
	ErrorCode_EXTRACTION_FAILED:               "EXTRACTION_FAILED",
	ErrorCode_COMPRESSION_FAILED:              "COMPRESSION_FAILED",
	ErrorCode_TRANSCRIPTION_FAILED:            "TRANSCRIPTION_FAILED",
	ErrorCode_TRANSLATION_FAILED:              "TRANSLATION_FAILED",
	ErrorCode_FORMATTING_FAILED:               "FORMATTING_FAILED",
	ErrorCode_SUMMARIZATION_FAILED:            "SUMMARIZATION_FAILED",
	ErrorCode_PARSE_FAILED:                    "PARSE_FAILED",
	ErrorCode_MEDIA_FETCH_FAILED:              "MEDIA_FETCH_FAILED",
	ErrorCode_PROVIDER_UNCONFIGURED:           "PROVIDER_UNCONFIGURED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
