// Package main provides the entry point for the CytoSeg application.
package main

import (
	"os"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"cytoseg/internal/app"
	"cytoseg/internal/version"
	"cytoseg/ui/viewer"
)

func main() {
	log := app.NewLogger(zerolog.InfoLevel)
	log.Info().Str("version", version.Version).Msg("starting CytoSeg")

	fyneApp := fyneapp.New()
	fyneApp.Settings().SetTheme(&app.CytoSegTheme{})

	state := app.NewState()
	win := viewer.New(fyneApp, state, log)

	if len(os.Args) > 1 {
		if err := state.LoadFrame(os.Args[1]); err != nil {
			log.Error().Err(err).Str("path", os.Args[1]).Msg("failed to load frame")
		} else {
			win.Refresh()
		}
	}

	win.ShowAndRun()
}
