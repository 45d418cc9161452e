package quarantine

import (
	"path/filepath"
	"strings"
)

// PaletteMapping assigns the palette file Src to the sprite containers listed
// in Sprites. Both are file names without any directory.
type PaletteMapping struct {
	Src     string   `xml:"src"`
	Sprites []string `xml:"Sprites>string"`
}

func (pm *PaletteMapping) contains(name string) bool {
	for _, s := range pm.Sprites {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// ResolvePalette returns the name of the palette file to use for the sprite
// container name. The first mapping listing name wins, even if a later one
// also lists it; a matching mapping with an empty Src, or no match at all,
// yields def. Names are compared ignoring case.
func ResolvePalette(name string, mappings []PaletteMapping, def string) string {
	for i := range mappings {
		if mappings[i].contains(name) {
			if mappings[i].Src != "" {
				return mappings[i].Src
			}
			break
		}
	}
	return def
}

// findFile returns the first of files whose base name is name, ignoring case
func findFile(files []string, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, file := range files {
		if strings.EqualFold(filepath.Base(file), name) {
			return file, true
		}
	}
	return "", false
}
