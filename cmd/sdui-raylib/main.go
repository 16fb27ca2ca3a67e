// cmd/sdui-raylib/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/waozixyz/kryon-sdui/internal/app"
	"github.com/waozixyz/kryon-sdui/internal/source"
	"github.com/waozixyz/kryon-sdui/render/raylib"
)

// Example handlers for documents whose buttons use these action contexts.
func genericClickHandler(value string) {
	log.Println("INFO: A button was clicked (genericClickHandler).")
}

func refreshHandler(s *app.Session, location string) func(string) {
	return func(string) {
		log.Printf("INFO: refresh: reloading %s", location)
		if err := s.Open(location); err != nil {
			log.Printf("ERROR: refresh: %v", err)
		}
	}
}

func main() {
	execName := filepath.Base(os.Args[0])
	opts, err := app.ParseFlags(execName, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] -file <document>\n%v\n", execName, err)
		os.Exit(2)
	}
	if opts.Config.Render.Backend != "raylib" {
		log.Printf("WARN: %s always uses the raylib backend, ignoring %q", execName, opts.Config.Render.Backend)
		opts.Config.Render.Backend = "raylib"
	}

	closer, err := app.SetupLogging(opts.LogPath, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	location := opts.Location
	opts.Setup = func(s *app.Session) error {
		log.Println("Registering action routes...")
		s.Dispatcher.On("genericClick", genericClickHandler)
		// Open resolves files against the document's directory.
		if !source.IsRemote(location) {
			location = filepath.Base(location)
		}
		s.Dispatcher.On("refresh", refreshHandler(s, location))
		return nil
	}

	if err := app.Run(raylib.NewRaylibRenderer(), opts); err != nil {
		log.Printf("ERROR: %v", err)
		closer.Close()
		os.Exit(1)
	}
}
