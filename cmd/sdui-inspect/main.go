// cmd/sdui-inspect/main.go

// Command sdui-inspect prints the element tree a document maps to, with the
// frames layout assigns at the configured window size. Output is colored when
// stdout is a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/waozixyz/kryon-sdui/internal/app"
	"github.com/waozixyz/kryon-sdui/internal/source"
	"github.com/waozixyz/kryon-sdui/render"
)

func main() {
	execName := filepath.Base(os.Args[0])
	opts, err := app.ParseFlags(execName, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", execName, err)
		os.Exit(2)
	}
	closer, err := app.SetupLogging(opts.LogPath, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	doc, err := source.New().LoadDocument(context.Background(), opts.Location)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	mapper := render.NewMapper(opts.Config.MapperOptions()...)
	root := mapper.Render(doc)
	defer root.Close()
	win := opts.Config.RenderWindow()
	render.PerformLayout(root, 0, 0, float32(win.Width), float32(win.Height), render.CellMeasurer{})

	styled := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	p := newPrinter(os.Stdout, styled)
	p.tree(root)
	p.summary(root, mapper)
	if p.err != nil {
		log.Fatalf("ERROR: write: %v", p.err)
	}
}
