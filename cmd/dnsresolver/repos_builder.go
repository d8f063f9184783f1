package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/kompox/dnsresolver/adapters/store/inmem"
	"github.com/kompox/dnsresolver/adapters/store/kvs"
	"github.com/kompox/dnsresolver/adapters/store/rdb"
	"github.com/kompox/dnsresolver/domain"
)

// reposCache caches repositories per db-url so every use case built within one
// process shares the same store. With the file: scheme the in-memory store is
// not persisted; mutations last for the process lifetime only.
var (
	reposCache   = map[string]*domain.Repositories{}
	reposCacheMu sync.Mutex
)

// buildRepos creates repositories based on db-url.
func buildRepos(cmd *cobra.Command) (*domain.Repositories, error) {
	dbURL := getDBURL(cmd)

	reposCacheMu.Lock()
	defer reposCacheMu.Unlock()
	if cached, ok := reposCache[dbURL]; ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	var repos *domain.Repositories
	switch {
	case dbURL == "memory:":
		repos = inmem.NewStore().Repositories()

	case strings.HasPrefix(dbURL, "file:"):
		filePath := strings.TrimPrefix(dbURL, "file:")
		if filePath == "" {
			return nil, fmt.Errorf("file path is required for file: URL")
		}
		store := inmem.NewStore()
		if err := store.LoadFromFile(ctx, filePath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", filePath, err)
		}
		repos = store.Repositories()

	case strings.HasPrefix(dbURL, "sqlite:") || strings.HasPrefix(dbURL, "sqlite3:"):
		db, err := rdb.OpenFromURL(dbURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, err
		}
		repos = &domain.Repositories{
			Zone:   rdb.NewZoneRepository(db),
			Record: rdb.NewRecordRepository(db),
		}

	case strings.HasPrefix(dbURL, "redis://") || strings.HasPrefix(dbURL, "rediss://"):
		db, err := kvs.OpenFromURL(ctx, dbURL)
		if err != nil {
			return nil, err
		}
		repos = &domain.Repositories{
			Zone:   kvs.NewZoneRepository(db),
			Record: kvs.NewRecordRepository(db),
		}

	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
	reposCache[dbURL] = repos
	return repos, nil
}
