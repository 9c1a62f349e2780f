// Command selva is a small terminal front-end for the multi-cursor buffer
// engine: it opens a file (or starts empty), paints every selection, and
// maps the keyboard onto the engine's operations.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/selva/buffer"
	"github.com/xonecas/selva/internal/config"
)

func main() {
	if err := setupFileLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to setup logging: %v\n", err)
	}

	flagConfig := flag.String("config", "selva.toml", "path to the TOML config")
	flag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	buf := buffer.Empty()
	path := flag.Arg(0)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
			os.Exit(1)
		}
		buf, err = buffer.FromReader(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	log.Info().Str("path", path).Int("lines", buf.LineCount()).Msg("buffer opened")

	p := tea.NewProgram(newModel(buf, cfg, path))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupFileLogging() error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	file, err := os.OpenFile("selva.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	log.Logger = log.Output(file)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	return nil
}
