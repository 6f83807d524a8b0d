package core

// Error codes reference
//
// Users quote the code from an error banner; support looks it up here.
//
// Separator errors (SEP)
//
//	SEP001 - No separator could be detected in the pasted text
//	SEP002 - The chosen separator does not split the first line into three columns
//	SEP003 - The separator name is not one of auto, ;, ",", |, tab
//
// Row errors (ROW)
//
//	ROW001 - A previewed line is missing categories, phrase or translation
//
// Import errors (IMP)
//
//	IMP001 - Nothing to import
//	IMP002 - Too many imports running
//	IMP003 - Content exceeds the size limit
//	IMP004 - Request cancelled
//	IMP005 - Request timed out
//
// Language set errors (SET)
//
//	SET001 - Language set not found
//
// Database errors (DB)
//
//	DB001 - Duplicate key
//	DB002 - Unique constraint
//	DB003 - Foreign key
//	DB004 - Connection refused
//	DB005 - Connection reset
//	DB006 - Deadlock or database timeout
//
// Rate limiting (RATE)
//
//	RATE001 - Too many requests
//
// ERR000 is the fallback. Check the logs for the technical error.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bartekmp/osmosmjerka-sub000/internal/phrase"
)

// UserMessage is an error as shown to a user.
type UserMessage struct {
	Message string `json:"message"` // what happened
	Action  string `json:"action"`  // what to do about it
	Code    string `json:"code"`    // support reference
}

// sentinelMessages are matched with errors.Is before any text pattern.
var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{phrase.ErrNoSeparatorDetected, UserMessage{
		Message: "No separator detected",
		Action:  "Choose the separator explicitly or check that each line has three columns",
		Code:    "SEP001",
	}},
	{phrase.ErrSeparatorMismatch, UserMessage{
		Message: "The selected separator does not match the content",
		Action:  "Pick the separator used in the first line, or use auto-detect",
		Code:    "SEP002",
	}},
	{phrase.ErrUnknownSeparator, UserMessage{
		Message: "Unknown separator",
		Action:  "Use auto, ;, comma, | or tab",
		Code:    "SEP003",
	}},
	{phrase.ErrInvalidRow, UserMessage{
		Message: "Invalid row detected",
		Action:  "Every line needs categories, phrase and translation",
		Code:    "ROW001",
	}},
	{phrase.ErrEmptyContent, UserMessage{
		Message: "Nothing to import",
		Action:  "Paste at least one line of phrases",
		Code:    "IMP001",
	}},
	{ErrTooManyImports, UserMessage{
		Message: "The server is busy with other imports",
		Action:  "Please wait a moment and try again",
		Code:    "IMP002",
	}},
	{ErrContentTooLarge, UserMessage{
		Message: "The content is too large to import at once",
		Action:  "Split the list into smaller parts",
		Code:    "IMP003",
	}},
	{context.Canceled, UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "IMP004",
	}},
	{context.DeadlineExceeded, UserMessage{
		Message: "Request timed out",
		Action:  "Try importing fewer phrases or try again later",
		Code:    "IMP005",
	}},
	{ErrLanguageSetNotFound, UserMessage{
		Message: "Language set not found",
		Action:  "Select an existing language set",
		Code:    "SET001",
	}},
}

// errorPatterns are matched case-insensitively against the error text.
// The first match wins, so specific patterns come first.
var errorPatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"duplicate key", UserMessage{
		Message: "A phrase with these values already exists",
		Action:  "Remove the duplicate lines and try again",
		Code:    "DB001",
	}},
	{"unique constraint", UserMessage{
		Message: "This value must be unique but already exists",
		Action:  "Check the list for duplicate phrases",
		Code:    "DB002",
	}},
	{"violates unique", UserMessage{
		Message: "A duplicate value was found",
		Action:  "Check the list for duplicate phrases",
		Code:    "DB002",
	}},
	{"foreign key", UserMessage{
		Message: "Referenced record does not exist",
		Action:  "Make sure the language set still exists",
		Code:    "DB003",
	}},
	{"connection refused", UserMessage{
		Message: "Unable to connect to database",
		Action:  "Please try again in a few moments",
		Code:    "DB004",
	}},
	{"connection reset", UserMessage{
		Message: "Database connection was interrupted",
		Action:  "Please try again",
		Code:    "DB005",
	}},
	{"deadlock", UserMessage{
		Message: "Database was busy with conflicting operations",
		Action:  "Please try again",
		Code:    "DB006",
	}},
	{"timeout", UserMessage{
		Message: "Database operation timed out",
		Action:  "Please try again later",
		Code:    "DB006",
	}},
	{"rate limit", UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts err to a user message. Nil maps to the zero message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ue *UserError
	if errors.As(err, &ue) {
		return ue.User
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.err) {
			return s.msg
		}
	}

	text := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(text, p.pattern) {
			return p.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error (for logs) with its user message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string { return e.User.Message }

func (e *UserError) Unwrap() error { return e.Technical }

// NewUserError maps err. It returns nil for a nil err.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{Technical: err, User: MapError(err)}
}
