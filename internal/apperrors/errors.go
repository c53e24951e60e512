package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found,
// or does not belong to the requesting user.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the operation conflicts with existing state,
// e.g. a duplicate category name or deleting an account with dependents.
var ErrConflict = errors.New("resource conflict")

// ErrComputation indicates an arithmetic precondition was violated.
// Input validation should make this unreachable.
var ErrComputation = errors.New("computation error")
