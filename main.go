// main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/waozixyz/kryon-sdui/internal/app"
	"github.com/waozixyz/kryon-sdui/render"
	"github.com/waozixyz/kryon-sdui/render/raylib"
	"github.com/waozixyz/kryon-sdui/render/term"
)

func main() {
	execName := filepath.Base(os.Args[0])
	opts, err := app.ParseFlags(execName, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\nUsage: %s [flags] <document.json|document.yaml|url>\n", execName, err, execName)
		os.Exit(2)
	}

	// The terminal backend owns the screen, so its logs go to a file or nowhere.
	closer, err := app.SetupLogging(opts.LogPath, opts.Config.Render.Backend == "term")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	var renderer render.Renderer
	switch opts.Config.Render.Backend {
	case "term":
		renderer = term.NewTermRenderer()
	default:
		renderer = raylib.NewRaylibRenderer()
	}

	if err := app.Run(renderer, opts); err != nil {
		log.Printf("ERROR: %v", err)
		closer.Close()
		fmt.Fprintf(os.Stderr, "%s: %v\n", execName, err)
		os.Exit(1)
	}
}
