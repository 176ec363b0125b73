package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Particle cloud
	ParticleCount  = 3000
	MorphSpeed     = 0.012  // progress gained per frame while morphing
	FloatAmplitude = 0.002  // gentle floating motion amplitude
	MouseInfluence = 0.2    // how much the pointer pushes particles
	RotationSpeed  = 0.0008 // radians per frame around Y
	PointerTilt    = 0.15   // radians of X tilt at pointer y = ±1

	TransitionBlend = 0.08
	SettledBlend    = 0.05
	ColorBlend      = 0.03
	ScatterWeight   = 0.3
	ScatterRadius   = 3.0

	PointerReach  = 3.0 // pointer [-1,1] to model units
	PointerRadius = 2.0
	PointerPush   = 0.02 // displacement per frame at full influence, before MouseInfluence

	// Background stars
	StarCount         = 1200
	StarFieldSize     = 50.0
	StarRotationSpeed = -0.0003
	StarOpacity       = 0.4
	StarSize          = 0.08

	// Camera and shading
	CameraFOV       = 50.0
	CameraDistance  = 10.0
	CameraNear      = 0.1
	CameraFar       = 100.0
	FogDensity      = 0.015
	SizeAttenuation = 50.0
	MaxPixelRatio   = 2.0

	// Soundtrack
	VisualRingSize  = 8192
	SmoothingFactor = 0.6
)

// Config holds the values that can be changed from the command line.
type Config struct {
	Width       int
	Height      int
	Particles   int
	Stars       int
	Seed        int64
	Section     string
	SectionFile string
	Soundtrack  string
	Debug       bool
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Width:     WindowWidth,
		Height:    WindowHeight,
		Particles: ParticleCount,
		Stars:     StarCount,
		Section:   "hero",
	}
}

// Parse reads flags from args (without the program name).
func Parse(args []string, output io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("backdrop", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.Width, "width", cfg.Width, "window width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "window height")
	fs.IntVar(&cfg.Particles, "particles", cfg.Particles, "particle pool size")
	fs.IntVar(&cfg.Stars, "stars", cfg.Stars, "background star count")
	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed (0 = time based)")
	fs.StringVar(&cfg.Section, "section", cfg.Section, "initial section: hero, projects, about, contact")
	fs.StringVar(&cfg.SectionFile, "section-file", "", "file whose content selects the active section")
	fs.StringVar(&cfg.Soundtrack, "soundtrack", "", "audio file (wav, mp3, flac) to play in the background")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects sizes the scene cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Particles <= 0 {
		errs = append(errs, fmt.Errorf("particle count must be positive, got %d", c.Particles))
	}
	// 4 vertices per point, uint16 indices
	if 4*(c.Particles+c.Stars) > 1<<16 {
		errs = append(errs, fmt.Errorf("too many points: %d particles + %d stars", c.Particles, c.Stars))
	}
	if c.Stars < 0 {
		errs = append(errs, fmt.Errorf("star count must not be negative, got %d", c.Stars))
	}
	return errors.Join(errs...)
}
