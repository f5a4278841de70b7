package page

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/marquee/internal/library"
	"github.com/muurk/marquee/internal/nav"
)

// Factory resolves collections from a library and builds views for them.
// It implements nav.Resolver.
type Factory struct {
	lib    *library.Library
	stats  Stats
	opts   Options
	logger *zap.Logger
}

var _ nav.Resolver = (*Factory)(nil)

// NewFactory creates a factory. stats may be nil.
func NewFactory(lib *library.Library, stats Stats, opts Options, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{lib: lib, stats: stats, opts: opts, logger: logger}
}

// Resolve looks a collection up in the library.
func (f *Factory) Resolve(name string) (*library.Collection, error) {
	return f.lib.Resolve(name)
}

// NewView builds a view for c.
func (f *Factory) NewView(c *library.Collection, menuMode bool) (nav.CollectionView, error) {
	if c == nil {
		return nil, fmt.Errorf("cannot build view: %w", library.ErrInvalid)
	}
	v := NewView(c, menuMode, f.stats, f.opts)
	f.logger.Debug("Built view",
		zap.String("collection", c.Name),
		zap.String("layout", c.Layout),
		zap.Bool("menu_mode", menuMode))
	return v, nil
}

// SnapshotOf returns the snapshot of a view built by a Factory.
func SnapshotOf(v nav.CollectionView) (Snapshot, bool) {
	pv, ok := v.(*View)
	if !ok {
		return Snapshot{}, false
	}
	return pv.Snapshot(), true
}
