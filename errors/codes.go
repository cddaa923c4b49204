package errors

// ErrorCode identifies a class of application error in API responses.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004

	// Video / transcript
	ErrorCode_VIDEO_INVALID_URL        ErrorCode = 2000
	ErrorCode_VIDEO_NOT_FOUND          ErrorCode = 2001
	ErrorCode_TRANSCRIPT_UNAVAILABLE   ErrorCode = 2002
	ErrorCode_TRANSCRIPT_FETCH_FAILED  ErrorCode = 2003
	ErrorCode_TRANSCRIPT_PARSE_FAILED  ErrorCode = 2004
	ErrorCode_VIDEO_METADATA_FAILED    ErrorCode = 2005
	ErrorCode_ANALYSIS_NOT_FOUND       ErrorCode = 2006
	ErrorCode_ANALYSIS_ALREADY_RUNNING ErrorCode = 2007

	// AI
	ErrorCode_AI_ANALYSIS_FAILED      ErrorCode = 3000
	ErrorCode_AI_SUMMARY_FAILED       ErrorCode = 3001
	ErrorCode_AI_QUIZ_FAILED          ErrorCode = 3002
	ErrorCode_AI_FLASHCARDS_FAILED    ErrorCode = 3003
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 3004
	ErrorCode_AI_QUOTA_EXCEEDED       ErrorCode = 3005
	ErrorCode_AI_RESPONSE_UNPARSEABLE ErrorCode = 3006

	// Study operations
	ErrorCode_QUIZ_NOT_FOUND       ErrorCode = 4000
	ErrorCode_EXPORT_FAILED        ErrorCode = 4001
	ErrorCode_EXPORT_BAD_FORMAT    ErrorCode = 4002
	ErrorCode_JOB_NOT_FOUND        ErrorCode = 4003
	ErrorCode_JOB_START_FAILED     ErrorCode = 4004
	ErrorCode_ANSWERS_INVALID_KEYS ErrorCode = 4005

	// Infrastructure
	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 5000
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 5001
	ErrorCode_CACHE_FAILED         ErrorCode = 5002
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                  "OK",
	ErrorCode_INTERNAL:                 "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:         "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:           "ALREADY_EXISTS",
	ErrorCode_INVALID_PAYLOAD:          "INVALID_PAYLOAD",
	ErrorCode_VIDEO_INVALID_URL:        "VIDEO_INVALID_URL",
	ErrorCode_VIDEO_NOT_FOUND:          "VIDEO_NOT_FOUND",
	ErrorCode_TRANSCRIPT_UNAVAILABLE:   "TRANSCRIPT_UNAVAILABLE",
	ErrorCode_TRANSCRIPT_FETCH_FAILED:  "TRANSCRIPT_FETCH_FAILED",
	ErrorCode_TRANSCRIPT_PARSE_FAILED:  "TRANSCRIPT_PARSE_FAILED",
	ErrorCode_VIDEO_METADATA_FAILED:    "VIDEO_METADATA_FAILED",
	ErrorCode_ANALYSIS_NOT_FOUND:       "ANALYSIS_NOT_FOUND",
	ErrorCode_ANALYSIS_ALREADY_RUNNING: "ANALYSIS_ALREADY_RUNNING",
	ErrorCode_AI_ANALYSIS_FAILED:       "AI_ANALYSIS_FAILED",
	ErrorCode_AI_SUMMARY_FAILED:        "AI_SUMMARY_FAILED",
	ErrorCode_AI_QUIZ_FAILED:           "AI_QUIZ_FAILED",
	ErrorCode_AI_FLASHCARDS_FAILED:     "AI_FLASHCARDS_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:   "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_QUOTA_EXCEEDED:        "AI_QUOTA_EXCEEDED",
	ErrorCode_AI_RESPONSE_UNPARSEABLE:  "AI_RESPONSE_UNPARSEABLE",
	ErrorCode_QUIZ_NOT_FOUND:           "QUIZ_NOT_FOUND",
	ErrorCode_EXPORT_FAILED:            "EXPORT_FAILED",
	ErrorCode_EXPORT_BAD_FORMAT:        "EXPORT_BAD_FORMAT",
	ErrorCode_JOB_NOT_FOUND:            "JOB_NOT_FOUND",
	ErrorCode_JOB_START_FAILED:         "JOB_START_FAILED",
	ErrorCode_ANSWERS_INVALID_KEYS:     "ANSWERS_INVALID_KEYS",
	ErrorCode_DB_CONNECTION_FAILED:     "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:          "DB_QUERY_FAILED",
	ErrorCode_CACHE_FAILED:             "CACHE_FAILED",
}

// String returns the symbolic name for the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
