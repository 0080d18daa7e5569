// Package validate holds the pure input checks for score submissions.
package validate

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Code is a machine-readable validation error code.
type Code string

const (
	CodeMissingField      Code = "MISSING_FIELD"
	CodeUsernameLength    Code = "USERNAME_LENGTH"
	CodeUsernameCharset   Code = "USERNAME_CHARSET"
	CodeUsernameContent   Code = "USERNAME_CONTENT"
	CodeInvalidScore      Code = "INVALID_SCORE"
	CodeInvalidDifficulty Code = "INVALID_DIFFICULTY"
)

// Error is a rejected input. Reason is safe to return to the client.
type Error struct {
	Code   Code
	Reason string
}

func (e *Error) Error() string { return e.Reason }

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Substring match against the lowercased name, not whole-word:
// "administrator" and "testuser" are both rejected.
var deniedWords = []string{
	"admin", "root", "test", "null", "undefined", "bot",
	"fuck", "shit", "damn",
}

// Difficulties accepted for a submission, always stored lowercase.
var difficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// Username checks length, charset and the content denylist. Length counts
// characters, not bytes, so multi-byte names fall through to the charset
// check that actually rejects them.
func Username(name string) error {
	if n := utf8.RuneCountInString(name); n < 2 || n > 20 {
		return &Error{CodeUsernameLength, "username must be 2-20 characters long"}
	}
	if !usernamePattern.MatchString(name) {
		return &Error{CodeUsernameCharset, "username can only contain letters, numbers, underscores, and hyphens"}
	}
	lower := strings.ToLower(name)
	for _, word := range deniedWords {
		if strings.Contains(lower, word) {
			return &Error{CodeUsernameContent, "username contains inappropriate content"}
		}
	}
	return nil
}

// Submission checks a full score submission. The username is expected
// pre-trimmed; difficulty is matched case-insensitively.
func Submission(username string, score *float64, difficulty string) error {
	if username == "" || score == nil || strings.TrimSpace(difficulty) == "" {
		return &Error{CodeMissingField, "missing required fields"}
	}
	if err := Username(username); err != nil {
		return err
	}
	// The upper bound keeps the float64→int conversion exact; anything at
	// or past 2^63 would wrap negative in the ledger.
	if *score < 0 || *score != math.Trunc(*score) || *score >= math.MaxInt64 {
		return &Error{CodeInvalidScore, "score must be a non-negative integer"}
	}
	if !difficulties[NormalizeDifficulty(difficulty)] {
		return &Error{CodeInvalidDifficulty, "difficulty must be easy, medium, or hard"}
	}
	return nil
}

// NormalizeDifficulty lowercases and trims a difficulty value. It does not
// check membership; Submission does.
func NormalizeDifficulty(difficulty string) string {
	return strings.ToLower(strings.TrimSpace(difficulty))
}
