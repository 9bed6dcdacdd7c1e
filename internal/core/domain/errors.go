package domain

import "errors"

// Common domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrDuplicateEntry  = errors.New("duplicate entry")
	ErrInvalidMonthTag = errors.New("invalid month tag, expected YYYY-MM")
)

// Agent errors
var (
	ErrAgentNotFound = errors.New("agent not found")
	ErrAgentInactive = errors.New("agent is inactive")
	ErrInvalidRole   = errors.New("invalid role")
	ErrEmailTaken    = errors.New("email already in use")
	ErrInvalidLogin  = errors.New("invalid credentials")
)

// Mission errors
var (
	ErrMissionNotFound      = errors.New("mission not found")
	ErrMissionInactive      = errors.New("mission is inactive")
	ErrInvalidMissionType   = errors.New("invalid mission type")
	ErrMissionNotApplicable = errors.New("mission does not apply to this agent's title")
)

// Ledger errors
var (
	ErrEntryNotFound        = errors.New("ledger entry not found")
	ErrDeletionNotConfirmed = errors.New("deletion must be explicitly confirmed")
	ErrNoteRequired         = errors.New("a note is required for penalties")
)

// Archive errors
var (
	ErrMonthClosed          = errors.New("month is already closed")
	ErrMonthAlreadyClosed   = errors.New("month has already been archived")
	ErrMonthClosingDisabled = errors.New("month closing is disabled")
	ErrArchiveNotFound      = errors.New("archive not found")
)
