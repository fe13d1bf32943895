package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/akyairhashvil/stoplicht/internal/config"
	"github.com/akyairhashvil/stoplicht/internal/logger"
)

// CLI holds the global flags and the commands.
type CLI struct {
	Config  string `short:"c" help:"Configuration file path (default: search ./ and the data directory)"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Run      RunCmd      `cmd:"" default:"1" help:"Run the traffic light in the terminal"`
	Board    BoardCmd    `cmd:"" help:"Serve the traffic light to a classroom screen"`
	Report   ReportCmd   `cmd:"" help:"Write the task sheet of the day as PDF"`
	Simulate SimulateCmd `cmd:"" help:"Print the display commands of a virtual countdown"`

	out io.Writer `kong:"-"`
}

func (c *CLI) stdout() io.Writer {
	if c.out != nil {
		return c.out
	}
	return os.Stdout
}

// load reads .env and the settings. --verbose overrides the log level.
func (c *CLI) load() (config.Settings, *config.Loader, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return config.Settings{}, nil, err
	}
	loader := config.NewLoader(c.Config)
	settings, err := loader.Load()
	if err != nil {
		return config.Settings{}, nil, err
	}
	if c.Verbose {
		settings.Log.Level = logger.DebugLevel
	}
	return settings, loader, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name(config.AppName),
		kong.Description("Classroom traffic-light timer."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(&cli); err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}
