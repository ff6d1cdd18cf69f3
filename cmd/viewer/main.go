//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"lifesim/internal/app"
	"lifesim/internal/core"
	"lifesim/internal/pattern"
	"lifesim/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	var doc pattern.Document
	if cfg.Load != "" {
		data, err := os.ReadFile(cfg.Load)
		if err != nil {
			log.Fatal(err)
		}
		if doc, err = pattern.Parse(data); err != nil {
			log.Fatalf("load %s: %v", cfg.Load, err)
		}
		cfg.FitDocument(flag.CommandLine, doc.GridSize)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}
	sess, ok := factory(cfg.Params()).(*session.Session)
	if !ok {
		log.Fatalf("sim %q cannot be driven by the viewer", cfg.Sim)
	}

	if cfg.Pattern != "" {
		if _, err := sess.PlaceCentered(cfg.Pattern); err != nil {
			log.Fatal(err)
		}
	}
	if cfg.Load != "" {
		if res := sess.Import(doc); !res.Success {
			log.Fatalf("import %s: %s", cfg.Load, res.Message)
		}
	}

	game := app.New(sess, cfg.Scale, cfg.Density)
	w, h := game.WindowSize()

	ebiten.SetWindowTitle("lifesim - " + sess.Name())
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
