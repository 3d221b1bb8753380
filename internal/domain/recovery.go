package domain

// DocumentEntryPath is the archive entry holding the main body of a .docx file
const DocumentEntryPath = "word/document.xml"

// Sentinel bodies returned in place of recovered text.
const (
	MessageFileNotFound     = "File not found"
	MessageServiceRejected  = "Dantools not ok"
	MessageSomethingWrong   = "Something went wrong"
	SanitizerStatusOK       = "OK"
	SanitizerFunctionStrip  = "strip-xml"
	DefaultSanitizerBaseURL = "https://www.cleancss.com/api.php"
)

// RecoveryOutcome is the terminal state of one recovery run
type RecoveryOutcome int

const (
	OutcomeRecovered RecoveryOutcome = iota
	OutcomeNotFound
	OutcomeServiceRejected
	OutcomeFailed
)

// String returns the outcome name used in logs and response headers
func (o RecoveryOutcome) String() string {
	switch o {
	case OutcomeRecovered:
		return "recovered"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeServiceRejected:
		return "service_rejected"
	default:
		return "failed"
	}
}

// RecoveryResult is either recovered text or one of the named failure outcomes
type RecoveryResult struct {
	Outcome RecoveryOutcome
	Text    string
}

// Body returns the recovered text, or the user-facing sentinel for a failure outcome
func (r RecoveryResult) Body() string {
	switch r.Outcome {
	case OutcomeRecovered:
		return r.Text
	case OutcomeNotFound:
		return MessageFileNotFound
	case OutcomeServiceRejected:
		return MessageServiceRejected
	default:
		return MessageSomethingWrong
	}
}

// Recovered wraps cleaned text in a successful result
func Recovered(text string) RecoveryResult {
	return RecoveryResult{Outcome: OutcomeRecovered, Text: text}
}

// Failure builds a result for a non-recovered outcome
func Failure(outcome RecoveryOutcome) RecoveryResult {
	return RecoveryResult{Outcome: outcome}
}

// SanitizationResult is the decoded answer of the cleanup service
type SanitizationResult struct {
	Text   string
	Status string
}

// OK reports whether the service accepted the input
func (r *SanitizationResult) OK() bool {
	return r != nil && r.Status == SanitizerStatusOK
}
