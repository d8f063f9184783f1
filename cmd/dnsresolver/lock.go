package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
)

// storeLockPath returns the lock file guarding a file-backed database, or "" when
// the store needs no cross-process lock.
func storeLockPath(dbURL string) string {
	var path string
	switch {
	case strings.HasPrefix(dbURL, "sqlite:"):
		path = strings.TrimPrefix(dbURL, "sqlite:")
	case strings.HasPrefix(dbURL, "sqlite3:"):
		path = strings.TrimPrefix(dbURL, "sqlite3:")
	default:
		return ""
	}
	if path == "" {
		path = "./dnsresolver.db"
	}
	if path == ":memory:" || strings.HasPrefix(path, "file::memory:") {
		return ""
	}
	return path + ".lock"
}

// lockStore takes an exclusive lock on the database for the duration of a mutating
// command, so processes sharing one SQLite file authorize and write one at a time.
func lockStore(ctx context.Context, cmd *cobra.Command) (func(), error) {
	path := storeLockPath(getDBURL(cmd))
	if path == "" {
		return func() {}, nil
	}
	fl := flock.New(path)
	ok, err := fl.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("lock %s: not acquired", path)
	}
	return func() { _ = fl.Unlock() }, nil
}
