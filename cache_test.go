package quarantine

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bodgit/quarantine/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeTracker struct {
	io.Reader
	closed *int32
}

func (c closeTracker) Close() error {
	atomic.AddInt32(c.closed, 1)
	return nil
}

func countingCache(t *testing.T, data map[string][]byte) (*PaletteCache, *int32, *int32) {
	t.Helper()

	var opens, closes int32
	c := NewPaletteCache()
	c.open = func(file string) (io.ReadCloser, error) {
		atomic.AddInt32(&opens, 1)
		b, ok := data[file]
		if !ok {
			return nil, os.ErrNotExist
		}
		return closeTracker{bytes.NewReader(b), &closes}, nil
	}
	return c, &opens, &closes
}

func encodePalette(t *testing.T, p *palette.Palette) []byte {
	t.Helper()

	b := new(bytes.Buffer)
	require.NoError(t, palette.Encode(b, p))
	return b.Bytes()
}

func TestPaletteCacheLoad(t *testing.T) {
	p := testPalette()
	c, opens, closes := countingCache(t, map[string][]byte{
		"a.img": encodePalette(t, p),
	})

	got, err := c.Load("a.img")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	again, err := c.Load("./a.img")
	require.NoError(t, err)
	assert.Same(t, got, again)

	assert.Equal(t, int32(1), atomic.LoadInt32(opens))
	assert.Equal(t, int32(1), atomic.LoadInt32(closes))
	assert.Equal(t, 1, c.Len())
}

func TestPaletteCacheErrors(t *testing.T) {
	c, opens, closes := countingCache(t, map[string][]byte{
		"short.img": make([]byte, palette.Size-1),
	})

	_, err := c.Load("short.img")
	assert.Equal(t, palette.ErrTruncated, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(closes))

	_, err = c.Load("missing.img")
	assert.True(t, os.IsNotExist(err))

	// Failures are not cached
	_, err = c.Load("short.img")
	assert.Equal(t, palette.ErrTruncated, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(opens))
	assert.Equal(t, 0, c.Len())
}

func TestPaletteCacheConcurrent(t *testing.T) {
	data := map[string][]byte{
		"a.img": encodePalette(t, testPalette()),
		"b.img": encodePalette(t, new(palette.Palette)),
	}
	c, opens, _ := countingCache(t, data)

	var wg sync.WaitGroup
	results := make([]*palette.Palette, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			file := "a.img"
			if i%2 == 1 {
				file = "b.img"
			}
			p, err := c.Load(file)
			assert.NoError(t, err)
			results[i] = p
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(opens))
	assert.Equal(t, 2, c.Len())
	for i := range results {
		assert.Same(t, results[i%2], results[i])
	}
}

func TestPaletteCacheFilesystem(t *testing.T) {
	file := filepath.Join(t.TempDir(), "PAL.IMG")
	require.NoError(t, os.WriteFile(file, encodePalette(t, testPalette()), 0o644))

	c := NewPaletteCache()
	p, err := c.Load(file)
	require.NoError(t, err)
	assert.Equal(t, testPalette(), p)
}
