// Package model defines the data structures shared by the scan orchestrator.
package model

// AppName is the binary name used in usage text and storage paths.
const AppName = "docdb-multiscan"

// VersionInfo contains build-time metadata about the application.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}
