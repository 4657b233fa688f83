// Package quota decides whether a workspace may accept more documents.
package quota

import "errors"

// MaxDemoDocuments is the document cap for a personal (demo) workspace.
const MaxDemoDocuments = 2

// ErrQuotaExceeded is returned when an upload is attempted past the workspace limit.
var ErrQuotaExceeded = errors.New("document limit reached for personal workspace")

// CanUpload reports whether another document may be uploaded.
// Only personal workspaces are limited; every other workspace is unbounded here.
func CanUpload(isPersonalWorkspace bool, currentCount int) bool {
	if !isPersonalWorkspace {
		return true
	}
	return currentCount < MaxDemoDocuments
}

// Limit returns the document cap for the workspace and whether one applies.
func Limit(isPersonalWorkspace bool) (int, bool) {
	if !isPersonalWorkspace {
		return 0, false
	}
	return MaxDemoDocuments, true
}

// Check returns ErrQuotaExceeded when CanUpload is false.
func Check(isPersonalWorkspace bool, currentCount int) error {
	if !CanUpload(isPersonalWorkspace, currentCount) {
		return ErrQuotaExceeded
	}
	return nil
}
