package database

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/andesedu/eventos-api/pkg/config"
)

type instanceKey struct{}

// WithInstance records the per-request database instance on the context.
func WithInstance(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, instanceKey{}, name)
}

// InstanceFromContext returns the instance selected for the request, if any.
func InstanceFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(instanceKey{}).(string); ok {
		return name
	}
	return ""
}

// Registry holds the default database plus any per-campus instances that can
// be targeted per request. Instance management lives outside this service;
// the registry only resolves a name to an open connection pool.
type Registry struct {
	fallback  *sqlx.DB
	instances map[string]*sqlx.DB
}

// NewRegistry opens the default database and one pool per configured instance.
func NewRegistry(cfg config.DatabaseConfig) (*Registry, error) {
	fallback, err := NewPostgres(cfg, cfg.Name)
	if err != nil {
		return nil, err
	}

	instances := make(map[string]*sqlx.DB, len(cfg.Instances))
	for _, name := range cfg.Instances {
		db, err := NewPostgres(cfg, name)
		if err != nil {
			_ = fallback.Close()
			for _, open := range instances {
				_ = open.Close()
			}
			return nil, err
		}
		instances[name] = db
	}

	return &Registry{fallback: fallback, instances: instances}, nil
}

// NewRegistryFromDB wraps an existing connection as the default instance and
// registers it under each of the given names as well. Used by tests.
func NewRegistryFromDB(db *sqlx.DB, names ...string) *Registry {
	instances := make(map[string]*sqlx.DB, len(names))
	for _, name := range names {
		instances[name] = db
	}
	return &Registry{fallback: db, instances: instances}
}

// Has reports whether the named instance is configured.
func (r *Registry) Has(name string) bool {
	_, ok := r.instances[name]
	return ok
}

// Resolve returns the pool for the instance recorded on the context, falling
// back to the default database when none was selected.
func (r *Registry) Resolve(ctx context.Context) *sqlx.DB {
	if name := InstanceFromContext(ctx); name != "" {
		if db, ok := r.instances[name]; ok {
			return db
		}
	}
	return r.fallback
}

// Close releases every open pool.
func (r *Registry) Close() error {
	err := r.fallback.Close()
	for _, db := range r.instances {
		if closeErr := db.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}
