package main

import (
	"fmt"
	"log/slog"

	"github.com/hyperengineering/opsboard/internal/schema"
	"github.com/hyperengineering/opsboard/internal/schema/construction"
	"github.com/hyperengineering/opsboard/internal/schema/containers"
	"github.com/hyperengineering/opsboard/internal/schema/deals"
	"github.com/hyperengineering/opsboard/internal/schema/generic"
	"github.com/hyperengineering/opsboard/internal/schema/invoices"
)

// initSchemas registers the built-in dashboard kinds, then any schema files
// found in dir. A file may not redefine a kind that is already registered.
func initSchemas(dir string) error {
	g := generic.New()
	schema.SetGeneric(g)
	schema.Register(g)

	schema.Register(construction.New())
	schema.Register(invoices.New())
	schema.Register(deals.New())
	schema.Register(containers.New())

	if dir == "" {
		return nil
	}
	loaded, err := schema.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("load schemas: %w", err)
	}
	for _, s := range loaded {
		if _, exists := schema.Get(s.Kind()); exists {
			return fmt.Errorf("load schemas: %w: kind %q already registered", schema.ErrInvalidSchema, s.Kind())
		}
		schema.Register(s)
		slog.Debug("schema loaded", "component", "schema", "kind", s.Kind(), "dir", dir)
	}
	return nil
}
