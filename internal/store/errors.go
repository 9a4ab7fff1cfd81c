package store

import (
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Messages shown to clients when a unique index rejects a write.
const (
	DuplicateUsernameMessage = "Duplicate Username!!"
	DuplicateEmailMessage    = "Duplicate Email!!"
	DuplicateValueMessage    = "Duplicate value!!"
)

// IsDuplicate reports whether err is a unique-index violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	return mongo.IsDuplicateKeyError(err) ||
		strings.Contains(strings.ToLower(err.Error()), "duplicate")
}

// ClassifyDuplicate maps a unique-index violation to a user-facing message
// naming the offending field, identified by substring inspection of the
// error text. It returns "" when err is not a duplicate-key failure, so
// callers fall through to their generic handling without ever serializing
// the raw driver error.
func ClassifyDuplicate(err error) string {
	if !IsDuplicate(err) {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "username"):
		return DuplicateUsernameMessage
	case strings.Contains(msg, "email"):
		return DuplicateEmailMessage
	default:
		return DuplicateValueMessage
	}
}
