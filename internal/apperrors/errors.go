package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but does not own the resource.
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrUnsupportedFormat indicates an uploaded document was rejected before any
// network call, either for its content type or its size.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrNoCredential indicates no AI credential is configured for the selected
// provider; the intake pipeline skips analysis and falls back to manual entry.
var ErrNoCredential = errors.New("no AI credential configured")

// ErrAIParse indicates the AI reply contained no parseable JSON object.
var ErrAIParse = errors.New("no parseable JSON in AI reply")

// ErrIncompleteExtraction indicates the AI reply parsed but is missing one of
// beneficiary, amount or due date.
var ErrIncompleteExtraction = errors.New("incomplete extraction from AI reply")

// ErrRemoteRequest indicates a non-success response from an external HTTP API.
var ErrRemoteRequest = errors.New("remote request failed")

// ErrMissingRange indicates a report was requested without both date bounds.
var ErrMissingRange = errors.New("report range requires both start and end dates")
