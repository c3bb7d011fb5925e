package npc

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/npcready/internal/orchestration"
)

// CharacterDataName is the canonical name of the character data subsystem.
const CharacterDataName = "CharacterData"

// Loader loads one character data table.
type Loader struct {
	Table string
	Load  func(ctx context.Context) error
}

// CharacterData loads its tables concurrently and signals once: ready when
// every loader succeeded, failed with the first loader error otherwise.
type CharacterData struct {
	orchestration.Signal

	name    string
	loaders []Loader
}

// NewCharacterData creates the subsystem with the given loaders.
func NewCharacterData(name string, loaders ...Loader) *CharacterData {
	if name == "" {
		name = CharacterDataName
	}
	return &CharacterData{name: name, loaders: loaders}
}

// Name returns the subsystem name.
func (c *CharacterData) Name() string { return c.name }

// StartInit launches the loaders and returns immediately.
func (c *CharacterData) StartInit(ctx context.Context) {
	go func() {
		c.RaiseContext(ctx, c.name, c.load(ctx))
	}()
}

func (c *CharacterData) load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, l := range c.loaders {
		l := l
		g.Go(func() error {
			if err := l.Load(gctx); err != nil {
				return fmt.Errorf("load %s: %w", l.Table, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// DelayLoader returns a loader that completes after d on clock, or fails
// with ctx's error if ctx ends first. A non-nil fail is returned after d.
func DelayLoader(table string, d time.Duration, clock clockwork.Clock, fail error) Loader {
	return Loader{
		Table: table,
		Load: func(ctx context.Context) error {
			if d > 0 {
				select {
				case <-clock.After(d):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return fail
		},
	}
}
