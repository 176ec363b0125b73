// Package soundtrack plays an optional background track and reports how
// loud it is so the particle glow can pulse along.
package soundtrack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
	"github.com/iburimskiy/portfolio-backdrop/internal/logging"
)

const levelWindow = 2048

var ErrUnsupported = errors.New("unsupported audio file type")

// Decode opens path and picks a decoder from its extension. The caller
// owns the returned streamer, which also closes the file.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %q: %w", path, err)
	}
	return streamer, format, nil
}

// Player owns at most one playing track.
type Player struct {
	log logging.Logger

	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap
	paused   bool
	initDone bool
	level    float64
}

func NewPlayer(log logging.Logger) *Player {
	return &Player{log: log}
}

// PickAndLoad asks for a file with a native dialog and plays it.
// Cancelling the dialog is not an error.
func (p *Player) PickAndLoad() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return fmt.Errorf("select soundtrack: %w", err)
	}
	return p.Load(filename)
}

// Load replaces the current track with the one at path.
func (p *Player) Load(path string) error {
	streamer, format, err := Decode(path)
	if err != nil {
		return err
	}

	// streamer -> loop -> ctrl -> tap -> speaker
	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, streamer), Paused: false}
	tap := NewTap(ctrl, config.VisualRingSize)

	p.mu.Lock()
	defer p.mu.Unlock()

	bufferSize := format.SampleRate.N(time.Second / 20)
	if !p.initDone || p.format.SampleRate != format.SampleRate {
		if p.initDone {
			speaker.Clear()
		}
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	} else {
		speaker.Clear()
	}
	_ = p.closeStreamer()

	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = tap
	p.paused = false
	p.level = 0

	speaker.Play(tap)
	p.log.Infof("playing soundtrack %s (%d Hz)", filepath.Base(path), format.SampleRate)
	return nil
}

func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl != nil && !p.paused
}

// Level advances the smoothed loudness by one frame and returns it.
// It decays to zero while paused or when nothing is loaded.
func (p *Player) Level() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	var mag float64
	if p.tap != nil && !p.paused {
		mag = p.tap.Loudness(levelWindow)
	}
	p.level = config.SmoothingFactor*p.level + (1-config.SmoothingFactor)*mag
	return float32(p.level)
}

// Close stops playback and releases the track. Safe to call repeatedly.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initDone {
		speaker.Clear()
	}
	return p.closeStreamer()
}

func (p *Player) closeStreamer() error {
	if p.streamer == nil {
		return nil
	}
	err := p.streamer.Close()
	p.streamer = nil
	p.ctrl = nil
	p.tap = nil
	return err
}
