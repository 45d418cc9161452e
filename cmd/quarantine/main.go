package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/quarantine"
	"github.com/bodgit/quarantine/spr"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"github.com/urfave/cli/v2"
)

const defaultConfig = "Config.xml"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) hclog.Logger {
	level := hclog.Info
	if l := os.Getenv("QUARANTINE_LOG_LEVEL"); l != "" {
		level = hclog.LevelFromString(l)
	}
	if c.Bool("verbose") {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "quarantine",
		Level:  level,
		Output: os.Stderr,
	})
}

// Flags override whatever was in the configuration file
func loadConfig(c *cli.Context) (*quarantine.Config, error) {
	config := new(quarantine.Config)
	if file := c.String("config"); file != "" {
		var err error
		if config, err = quarantine.LoadConfig(file); err != nil {
			if !os.IsNotExist(err) || c.IsSet("config") {
				return nil, err
			}
			config = new(quarantine.Config)
		}
	}

	if c.IsSet("install") {
		config.InstallationFolder = c.String("install")
	}
	if c.IsSet("output") {
		config.OutputFolder = c.String("output")
	}
	if c.IsSet("type") {
		config.OutputFileType = c.String("type")
	}
	if c.IsSet("palette") {
		config.DefaultPalette = c.String("palette")
	}
	if c.IsSet("transparent") {
		config.BackgroundTransparent = c.Bool("transparent")
	}
	if c.IsSet("scale") {
		config.Scale = c.Int("scale")
	}
	if c.IsSet("workers") {
		config.Workers = c.Int("workers")
	}

	return config, nil
}

func extract(c *cli.Context) error {
	logger := newLogger(c)

	config, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	var db *quarantine.CatalogDB
	if file := c.String("db"); file != "" {
		if db, err = quarantine.NewCatalogDB(file); err != nil {
			return cli.Exit(err, 1)
		}
		defer db.Close()
	}

	report, err := quarantine.New(config, db, logger).Run(context.Background())
	if err != nil {
		return cli.Exit(err, 1)
	}

	logger.Info(report.String(), "written", humanize.Bytes(uint64(report.Bytes())))

	return nil
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	for _, file := range c.Args().Slice() {
		if err := printInfo(file); err != nil {
			return cli.Exit(fmt.Errorf("%s: %w", file, err), 1)
		}
	}

	return nil
}

func printInfo(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}

	headers, err := spr.DecodeConfig(f)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d sprites (%s)\n", filepath.Base(file), len(headers), humanize.Bytes(uint64(fi.Size())))
	for i, h := range headers {
		fmt.Printf("  %3d: %dx%d\n", i, h.Width, h.Height)
	}

	return nil
}

func failures(c *cli.Context) error {
	if c.String("db") == "" {
		return cli.Exit("no catalog specified", 1)
	}

	db, err := quarantine.NewCatalogDB(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	run, err := db.LastRun()
	if err != nil {
		return cli.Exit(err, 1)
	}

	failures, err := db.Failures(run)
	if err != nil {
		return cli.Exit(err, 1)
	}

	for _, f := range failures {
		fmt.Printf("%s\t%s\t%s\n", f.Path, f.Stage, f.Error)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "quarantine"
	app.Usage = "Quarantine sprite extraction utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"QUARANTINE_DB"},
			Usage:   "path to catalog database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:  "extract",
			Usage: "Extract all sprites from a Quarantine installation",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "config",
					Aliases: []string{"c"},
					EnvVars: []string{"QUARANTINE_CONFIG"},
					Value:   defaultConfig,
					Usage:   "path to configuration",
				},
				&cli.StringFlag{
					Name:    "install",
					EnvVars: []string{"QUARANTINE_INSTALL"},
					Usage:   "Quarantine installation folder",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					EnvVars: []string{"QUARANTINE_OUTPUT"},
					Usage:   "output folder",
				},
				&cli.StringFlag{
					Name:  "type",
					Usage: "output file type (ppm, png, gif)",
				},
				&cli.StringFlag{
					Name:  "palette",
					Usage: "default palette file name",
				},
				&cli.BoolFlag{
					Name:  "transparent",
					Usage: "make the black background transparent",
				},
				&cli.IntFlag{
					Name:  "scale",
					Usage: "enlarge sprites by this factor",
				},
				&cli.IntFlag{
					Name:  "workers",
					Usage: "number of sprite files to convert at once",
				},
			},
			Action: extract,
		},
		{
			Name:      "info",
			Usage:     "List the sprites in .spr files",
			ArgsUsage: "FILE...",
			Action:    info,
		},
		{
			Name:   "failures",
			Usage:  "List the sprite files that failed during the last run",
			Action: failures,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
