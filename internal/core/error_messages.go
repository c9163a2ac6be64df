package core

// error_messages.go maps technical errors to messages shown in the error
// banner. Each message carries a code users can quote when reporting a problem.
//
//	FILE001 - File too large        ("file too large", "request body too large")
//	FILE002 - Malformed CSV         (*ParseError; message is the parser's own)
//	FILE004 - No file selected      ("no file provided")
//	FILE005 - Empty file            ("empty file")
//	PRC001  - Processing failure    ("error processing file")
//	SORT001 - Bad sort direction    ("invalid sort direction")
//	SORT002 - Bad sort slot         ("sort key index out of range")
//	SORT003 - Bad sort key          ("invalid sort key")
//	EXP001  - Nothing to export     ("nothing to export")
//	UPL001  - Superseded upload     ("superseded")
//	UPL002  - System busy           ("too many uploads")
//	UPL004  - Request cancelled     ("context canceled")
//	UPL005  - Request timed out     ("context deadline exceeded")
//	SES001  - Session expired       ("session not found")
//	VAR001  - Unknown variant       ("unknown variant")
//	RATE001 - Rate limited          ("rate limit")
//	ERR000  - Anything else

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns are matched case-insensitively with strings.Contains; the
// first match wins, so specific patterns come first.
var errorPatterns = []errorPattern{
	{"file too large", UserMessage{"File exceeds the maximum upload size", "Split the file or remove unused columns", "FILE001"}},
	{"request body too large", UserMessage{"File exceeds the maximum upload size", "Split the file or remove unused columns", "FILE001"}},
	{"no file provided", UserMessage{"No file was selected", "Choose a CSV file to upload", "FILE004"}},
	{"empty file", UserMessage{"The uploaded file is empty", "Upload a CSV file with a header row", "FILE005"}},
	{"error processing file", UserMessage{"Error processing file", "Check the file contents and try again", "PRC001"}},
	{"invalid sort direction", UserMessage{"Unknown sort direction", "Use ascending or descending", "SORT001"}},
	{"invalid sort key", UserMessage{"Sort key is not valid", "Use column or column:asc / column:desc", "SORT003"}},
	{"sort key index out of range", UserMessage{"That sort slot does not exist", "Reload the page and pick the columns again", "SORT002"}},
	{"nothing to export", UserMessage{"There is no data to download", "Upload a file with at least one data row", "EXP001"}},
	{"superseded", UserMessage{"A newer upload replaced this one", "Wait for the latest upload to finish", "UPL001"}},
	{"too many uploads", UserMessage{"System is busy processing other uploads", "Please wait a moment and try again", "UPL002"}},
	{"context canceled", UserMessage{"Request was cancelled", "Please try again", "UPL004"}},
	{"context deadline exceeded", UserMessage{"Request timed out", "Try a smaller file", "UPL005"}},
	{"session not found", UserMessage{"Your session has expired", "Upload the file again", "SES001"}},
	{"unknown variant", UserMessage{"Unknown file type", "Pick one of the listed file types", "VAR001"}},
	{"rate limit", UserMessage{"Too many requests", "Please wait a moment before trying again", "RATE001"}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// A nil error maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var pe *ParseError
	if errors.As(err, &pe) {
		return UserMessage{pe.Error(), "Fix the file and upload it again", "FILE002"}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// BannerMessage returns the text shown to the user for err. Malformed input
// is reported with the parser's message verbatim; everything else goes
// through MapError.
func BannerMessage(err error) string {
	if err == nil {
		return ""
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	return FormatUserError(err)
}
