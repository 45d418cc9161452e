package quarantine

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bodgit/quarantine/palette"
	"github.com/bodgit/quarantine/spr"
	"github.com/nfnt/resize"
)

const (
	paletteExt = ".img"
	spriteExt  = ".spr"
)

// Result is the outcome of converting a single sprite container.
type Result struct {
	Path    string
	Palette string
	Sprites int
	// Outputs holds the file written for each sprite, or "" where a sprite
	// with no pixels could not be written in the output format
	Outputs []string
	Bytes   int64
	Err     error
}

// Failed reports whether the container could not be completely converted.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Report collects the results of a run in the order the sprite containers
// were discovered.
type Report struct {
	Results []Result
}

// Failed returns the number of sprite containers that failed.
func (r *Report) Failed() (n int) {
	for i := range r.Results {
		if r.Results[i].Failed() {
			n++
		}
	}
	return
}

// Succeeded returns the number of sprite containers converted.
func (r *Report) Succeeded() int {
	return len(r.Results) - r.Failed()
}

// Bytes returns the total size of all files written.
func (r *Report) Bytes() (n int64) {
	for i := range r.Results {
		n += r.Results[i].Bytes
	}
	return
}

func (r *Report) String() string {
	total := len(r.Results)
	return fmt.Sprintf("%d/%d FAILED. %d/%d SUCCESS.", r.Failed(), total, r.Succeeded(), total)
}

// Finds all palettes and sprite containers under root, both sorted by path
func findFiles(root string) ([]string, []string, error) {
	var palettes, sprites []string
	err := filepath.WalkDir(root, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Ignore any hidden files or directories
		if file != root && d.Name()[0] == '.' {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		switch strings.ToLower(filepath.Ext(file)) {
		case paletteExt:
			palettes = append(palettes, file)
		case spriteExt:
			sprites = append(sprites, file)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sort.Strings(palettes)
	sort.Strings(sprites)

	return palettes, sprites, nil
}

func outputName(file string, index int, ext string) string {
	base := filepath.Base(file)
	return fmt.Sprintf("%s_%d.%s", strings.TrimSuffix(base, filepath.Ext(base)), index, ext)
}

func decodeFile(file string) ([]spr.Sprite, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return spr.Decode(f)
}

func (e *Extractor) scale(m image.Image) image.Image {
	b := m.Bounds()
	if e.config.Scale <= 1 || b.Empty() {
		return m
	}
	return resize.Resize(uint(b.Dx()*e.config.Scale), uint(b.Dy()*e.config.Scale), m, resize.NearestNeighbor)
}

func (e *Extractor) emit(file string, emitter Emitter, m image.Image) (int64, error) {
	b := new(bytes.Buffer)
	if err := emitter.Encode(b, e.scale(m)); err != nil {
		return 0, err
	}
	if err := os.WriteFile(file, b.Bytes(), 0o644); err != nil {
		return 0, err
	}
	return int64(b.Len()), nil
}

func (e *Extractor) convert(file string, palettes []string, emitter Emitter) Result {
	r := Result{Path: file}

	fail := func(stage Stage, err error) Result {
		r.Err = &FileError{
			Path:  file,
			Stage: stage,
			Err:   err,
		}
		return r
	}

	name := ResolvePalette(filepath.Base(file), e.config.PaletteMappings, e.config.DefaultPalette)
	paletteFile, ok := findFile(palettes, name)
	if !ok {
		return fail(StageResolve, fmt.Errorf("%w: %q", ErrMissingPalette, name))
	}
	r.Palette = paletteFile

	p, err := e.cache.Load(paletteFile)
	if err != nil {
		return fail(StagePalette, err)
	}

	sprites, err := decodeFile(file)
	if err != nil {
		return fail(StageDecode, err)
	}
	r.Sprites = len(sprites)

	if emitter == nil {
		return fail(StageEmit, fmt.Errorf("%w: %q", ErrUnsupportedOutputFormat, e.config.OutputFileType))
	}

	var key *palette.RGB
	if e.config.BackgroundTransparent {
		key = &Background
	}

	for i := range sprites {
		if sprites[i].Area() == 0 && !encodesEmpty(emitter) {
			e.logger.Debug("skipping empty sprite", "file", filepath.Base(file), "sprite", i)
			r.Outputs = append(r.Outputs, "")
			continue
		}

		out := filepath.Join(e.config.OutputFolder, outputName(file, i, emitter.Extension()))
		n, err := e.emit(out, emitter, Rasterize(&sprites[i], p, key))
		if err != nil {
			return fail(StageEmit, fmt.Errorf("sprite %d: %w", i, err))
		}
		r.Outputs = append(r.Outputs, out)
		r.Bytes += n
	}

	return r
}

type job struct {
	index int
	file  string
}

type indexedResult struct {
	index int
	Result
}

func (e *Extractor) feedFiles(ctx context.Context, files []string) <-chan job {
	out := make(chan job)
	go func() {
		defer close(out)
		for i, file := range files {
			select {
			case out <- job{i, file}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (e *Extractor) fileWorker(in <-chan job, palettes []string, emitter Emitter) <-chan indexedResult {
	out := make(chan indexedResult)
	go func() {
		defer close(out)
		for j := range in {
			out <- indexedResult{j.index, e.convert(j.file, palettes, emitter)}
		}
	}()
	return out
}

func mergeResults(cs ...<-chan indexedResult) <-chan indexedResult {
	var wg sync.WaitGroup
	out := make(chan indexedResult, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan indexedResult) {
			for r := range c {
				out <- r
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Run converts every sprite container under the installation folder. An
// error is only returned if the run could not start at all, was cancelled,
// or could not be recorded; failures of individual sprite containers,
// including an unsupported output file type, are in the Report.
func (e *Extractor) Run(ctx context.Context) (*Report, error) {
	if err := e.config.Validate(); err != nil {
		return nil, err
	}

	// Every sprite container fails at the emit stage without an emitter
	emitter, err := NewEmitter(e.config.OutputFileType)
	if err != nil {
		e.logger.Error("cannot write sprites", "error", err)
	}

	root, err := filepath.Abs(e.config.InstallationFolder)
	if err != nil {
		return nil, err
	}

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", errNoInstallation, root)
	}

	palettes, sprites, err := findFiles(root)
	if err != nil {
		return nil, err
	}
	if len(palettes) == 0 {
		return nil, fmt.Errorf("%w: %s", errNoPalettes, root)
	}
	if len(sprites) == 0 {
		return nil, fmt.Errorf("%w: %s", errNoSprites, root)
	}
	e.logger.Info("found files", "palettes", len(palettes), "sprites", len(sprites))

	if err := os.MkdirAll(e.config.OutputFolder, 0o755); err != nil {
		return nil, err
	}

	var run int64
	if e.db != nil {
		if run, err = e.db.NewRun(time.Now()); err != nil {
			return nil, err
		}
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	jobs := e.feedFiles(ctx, sprites)

	workers := e.config.Workers
	if workers > len(sprites) {
		workers = len(sprites)
	}

	var cs []<-chan indexedResult
	for i := 0; i < workers; i++ {
		cs = append(cs, e.fileWorker(jobs, palettes, emitter))
	}

	report := &Report{
		Results: make([]Result, len(sprites)),
	}

	done := make([]bool, len(sprites))

	var dbErr error
	for r := range mergeResults(cs...) {
		report.Results[r.index] = r.Result
		done[r.index] = true

		if r.Failed() {
			fe, _ := r.Err.(*FileError)
			stage := ""
			if fe != nil {
				stage = fe.Stage.String()
			}
			e.logger.Warn("failed", "file", filepath.Base(r.Path), "stage", stage, "error", r.Err)
		} else {
			e.logger.Debug("converted", "file", filepath.Base(r.Path), "palette", filepath.Base(r.Palette), "sprites", r.Sprites)
		}

		if e.db != nil && dbErr == nil {
			if dbErr = e.db.AddResult(run, &r.Result); dbErr != nil {
				cancelFunc()
			}
		}
	}

	// Anything never handed to a worker is failed, not silently successful
	if err := ctx.Err(); err != nil {
		for i, file := range sprites {
			if !done[i] {
				report.Results[i] = Result{
					Path: file,
					Err: &FileError{
						Path:  file,
						Stage: StageResolve,
						Err:   err,
					},
				}
			}
		}
	}

	if dbErr != nil {
		return report, dbErr
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	return report, nil
}
