/*
Package quarantine is a library for extracting the sprites from the game
Quarantine.

The game stores its sprites in .spr containers of indexed color images with
the palettes held separately in .img files. Which palette belongs to which
container is not recorded anywhere so a default is used unless the
configuration says otherwise.
*/
package quarantine

import (
	"github.com/hashicorp/go-hclog"
)

// Extractor converts every sprite container found in an installation of the
// game.
type Extractor struct {
	config *Config
	db     *CatalogDB
	cache  *PaletteCache
	logger hclog.Logger
}

// New returns an Extractor for config. If db is not nil the outcome of each
// run is recorded in it. A nil logger discards all output.
func New(config *Config, db *CatalogDB, logger hclog.Logger) *Extractor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Extractor{
		config: config,
		db:     db,
		cache:  NewPaletteCache(),
		logger: logger,
	}
}
