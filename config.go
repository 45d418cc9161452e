package quarantine

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
)

const (
	defaultOutputFileType = "png"
	defaultScale          = 1
	defaultWorkers        = 10
	maxScale              = 16
)

// Config controls a run. It is read from the same Config.xml file used by
// the original Windows tool.
type Config struct {
	XMLName               xml.Name         `xml:"Config"`
	InstallationFolder    string           `xml:"QuarantineInstallationFolder"`
	OutputFolder          string           `xml:"OutputFolder"`
	OutputFileType        string           `xml:"OutputFileType"`
	DefaultPalette        string           `xml:"DefaultPalette"`
	BackgroundTransparent bool             `xml:"BackgroundTransparent"`
	PaletteMappings       []PaletteMapping `xml:"PaletteMappings>Palette"`

	// Scale is the factor each sprite is enlarged by before writing
	Scale int `xml:"Scale,omitempty"`
	// Workers is the number of sprite containers converted at once
	Workers int `xml:"Workers,omitempty"`
}

// LoadConfig reads an XML configuration from file.
func LoadConfig(file string) (*Config, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	c := new(Config)
	if err := xml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate fills in defaults for any unset optional fields and checks the
// rest.
func (c *Config) Validate() error {
	if c.InstallationFolder == "" {
		return errors.New("no installation folder")
	}
	if c.OutputFolder == "" {
		return errors.New("no output folder")
	}

	if c.OutputFileType == "" {
		c.OutputFileType = defaultOutputFileType
	}

	switch {
	case c.Scale == 0:
		c.Scale = defaultScale
	case c.Scale < 0, c.Scale > maxScale:
		return errors.New("scale out of range")
	}

	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}

	return nil
}
