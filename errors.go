package quarantine

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	// ErrMissingPalette is returned when no discovered palette file matches
	// the palette resolved for a sprite container
	ErrMissingPalette = errors.New("palette file not found")

	// ErrUnsupportedOutputFormat is returned for an unknown output file type
	ErrUnsupportedOutputFormat = errors.New("output file type not supported")

	errNoInstallation = errors.New("installation folder could not be found")
	errNoPalettes     = errors.New("no .img files containing palettes found")
	errNoSprites      = errors.New("no .spr files containing sprites found")
)

// Stage identifies the step of converting a sprite container that failed.
type Stage int

// The stages in the order they are attempted for each sprite container
const (
	StageResolve Stage = iota
	StagePalette
	StageDecode
	StageEmit
)

var stageNames = [...]string{
	StageResolve: "resolve",
	StagePalette: "palette",
	StageDecode:  "decode",
	StageEmit:    "emit",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// FileError records a failure converting a single sprite container.
type FileError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", filepath.Base(e.Path), e.Stage, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
