package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/portfolio-backdrop/internal/animator"
	"github.com/iburimskiy/portfolio-backdrop/internal/config"
	"github.com/iburimskiy/portfolio-backdrop/internal/game"
	"github.com/iburimskiy/portfolio-backdrop/internal/logging"
	"github.com/iburimskiy/portfolio-backdrop/internal/section"
	"github.com/iburimskiy/portfolio-backdrop/internal/signal"
	"github.com/iburimskiy/portfolio-backdrop/internal/soundtrack"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logging.NewDefault("backdrop", cfg.Debug)
	if err := run(cfg, log); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log logging.Logger) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Debugf("seed %d", seed)

	if _, ok := section.Parse(cfg.Section); !ok {
		log.Warnf("unknown section %q, starting at %s", cfg.Section, section.Hero)
	}
	mapper := section.NewMapper(cfg.Particles, rng)
	anim := animator.New(mapper, cfg.Section, cfg.Stars, animator.DefaultParams(), rng)
	sec := signal.NewSection(cfg.Section)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.SectionFile != "" {
		fw, err := signal.WatchFile(cfg.SectionFile, sec, log)
		if err != nil {
			return err
		}
		go func() {
			if err := fw.Run(ctx); err != nil {
				log.Errorf("section watcher: %v", err)
			}
		}()
		log.Infof("watching %s for section changes", cfg.SectionFile)
	}

	player := soundtrack.NewPlayer(log)
	if cfg.Soundtrack != "" {
		if err := player.Load(cfg.Soundtrack); err != nil {
			log.Warnf("soundtrack: %v", err)
		}
	}

	g := game.New(anim, sec, player, log, cfg.Width, cfg.Height)
	defer func() {
		if err := g.Close(); err != nil {
			log.Warnf("close: %v", err)
		}
	}()
	if err := g.Mount(); err != nil {
		log.Warnf("backdrop disabled: %v", err)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Portfolio Backdrop - 1-4/Tab: section, O: soundtrack, Space: pause, Esc/Q: quit")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
