package service

import (
	"errors"

	"github.com/minhasantafonte/santafonte-backend/internal/metrics"
	"github.com/minhasantafonte/santafonte-backend/internal/optimistic"
)

// ErrConfirmationRequired is returned by deletes that were not confirmed.
var ErrConfirmationRequired = errors.New("delete requires confirmation")

// SyncStatusProvider is implemented by every service backed by an
// optimistic collection.
type SyncStatusProvider interface {
	SyncStatus() optimistic.SyncState
}

func recordWrite(collection string, err error) {
	status := string(optimistic.StatusSaved)
	if err != nil {
		status = string(optimistic.StatusFailed)
	}
	metrics.RecordAdminWrite(collection, status)
}
