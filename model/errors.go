package model

import "errors"

var (
	// ErrConfiguration marks invalid flags, settings or an unreadable credential store.
	ErrConfiguration = errors.New("configuration error")
	// ErrNoAccountsFound is returned when profile resolution yields nothing to scan.
	ErrNoAccountsFound = errors.New("no profiles found to process")
	// ErrInvocation means the scan job executable could not be started at all.
	ErrInvocation = errors.New("scan job could not be started")
	// ErrUsage marks unknown flags or malformed command lines.
	ErrUsage = errors.New("invalid usage")
)
