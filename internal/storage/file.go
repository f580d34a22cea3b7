// Package storage persists the inventory store to a single flat JSON file.
// The file uses the shared wire format, so files written by the legacy
// clients load unchanged.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/expirytracker/expirytracker-backend/internal/consumable"
	pkgerrors "github.com/expirytracker/expirytracker-backend/pkg/errors"
	"github.com/expirytracker/expirytracker-backend/pkg/logger"
)

// Gateway loads the store from disk at startup and flushes it on demand.
type Gateway struct {
	path  string
	store *consumable.Store
	logg  *logger.Logger
}

// NewGateway wires a gateway over the given file path and store.
func NewGateway(path string, store *consumable.Store, logg *logger.Logger) *Gateway {
	return &Gateway{path: path, store: store, logg: logg}
}

// Path returns the backing file path.
func (g *Gateway) Path() string {
	return g.path
}

// Load replaces the store contents with the decoded file. A missing file is
// a first run: it is created empty and the store stays empty with no error.
// A file that cannot be decoded is reported as corrupt persistence; the
// store is left empty so the process can still start with a fresh inventory.
func (g *Gateway) Load(ctx context.Context) error {
	data, err := os.ReadFile(g.path)
	if errors.Is(err, os.ErrNotExist) {
		if g.logg != nil {
			g.logg.Info(g.logg.WithField(ctx, "path", g.path), "inventory file missing, creating empty one")
		}
		return g.writeFile(nil)
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeCorruptPersistence, err, "reading inventory file")
	}

	items, err := consumable.DecodeItems(data)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeCorruptPersistence, err, "decoding inventory file")
	}

	g.store.Replace(items)
	if g.logg != nil {
		ctx = g.logg.WithFields(ctx, map[string]any{"path": g.path, "items": len(items)})
		g.logg.Info(ctx, "inventory loaded")
	}
	return nil
}

// Save snapshots the store and writes the whole collection to the file.
func (g *Gateway) Save(ctx context.Context) error {
	items := g.store.List()
	if err := g.writeFile(items); err != nil {
		return err
	}
	if g.logg != nil {
		ctx = g.logg.WithFields(ctx, map[string]any{"path": g.path, "items": len(items)})
		g.logg.Info(ctx, "inventory saved")
	}
	return nil
}

func (g *Gateway) writeFile(items []consumable.Item) error {
	data, err := consumable.EncodeItems(items)
	if err != nil {
		return fmt.Errorf("encoding inventory: %w", err)
	}
	if err := os.WriteFile(g.path, data, 0o644); err != nil {
		return fmt.Errorf("writing inventory file %s: %w", g.path, err)
	}
	return nil
}
