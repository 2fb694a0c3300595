package repo

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Open picks a backend from the scheme of databaseURL and connects to it.
// Mongo seed lists ("host1,host2") are not valid net/url hosts, only the
// scheme is split off here.
func Open(ctx context.Context, databaseURL string, logger *zap.Logger) (Store, error) {
	scheme, _, ok := strings.Cut(databaseURL, "://")
	if !ok {
		return nil, fmt.Errorf("database url %q has no scheme", databaseURL)
	}

	var (
		store Store
		err   error
	)
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		store, err = NewPostgresRepo(ctx, databaseURL, logger.Named("postgres"))
	case "mongodb", "mongodb+srv":
		store, err = NewMongoRepo(ctx, databaseURL, logger.Named("mongo"))
	case "memory":
		store = NewMemoryRepo()
	default:
		return nil, fmt.Errorf("unsupported database url scheme %q", scheme)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
