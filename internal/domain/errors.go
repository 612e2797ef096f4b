package domain

import "errors"

// ErrNotFound is returned when the requested segment or item does not exist
// in the current collection, or when a storage key is absent.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule
// (e.g. missing title, unknown category).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidCost is wrapped together with ErrValidation when the cost field
// holds something other than a plain non-negative decimal number.
var ErrInvalidCost = errors.New("cost must be a number")

// ErrInvalidBackup is returned when an imported snapshot is not valid JSON or
// its top-level value is not an array. The current collection is untouched.
var ErrInvalidBackup = errors.New("invalid backup")

// ErrImportSuperseded is returned by an import that finished reading after a
// newer import had already started. Its data is discarded.
var ErrImportSuperseded = errors.New("import superseded by a newer import")

// ErrIntentNotFound is returned when confirming or declining an intent that
// never existed, has expired, or was already used.
var ErrIntentNotFound = errors.New("intent not found")
