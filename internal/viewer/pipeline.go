// Package viewer wires scene state, the render scheduler, the engine and a
// display surface into the interactive render loop.
package viewer

import (
	"errors"
	"fmt"
	"time"

	"sphere-viewer/internal/logging"
	"sphere-viewer/internal/present"
	"sphere-viewer/internal/raytrace"
	"sphere-viewer/internal/scene"
)

// FrameStats describes the last completed render cycle.
type FrameStats struct {
	Request raytrace.Request
	Render  time.Duration // engine time
	Total   time.Duration // engine + convert + blit
	Frames  int           // cycles that reached the surface so far
}

// Pipeline performs one render cycle: snapshot, render, convert, blit.
// It is the single place engine and surface errors are handled.
type Pipeline struct {
	State     *scene.State
	Engine    raytrace.Engine
	Presenter *present.Presenter

	last FrameStats
}

// Snapshot builds the request for a cycle starting now, reading the surface
// size fresh.
func (p *Pipeline) Snapshot() raytrace.Request {
	w, h := p.Presenter.Surface.Size()
	return raytrace.Request{
		Width:      w,
		Height:     h,
		Brightness: p.State.Brightness,
		Position:   p.State.Position,
	}
}

// Cycle runs one render cycle and reports whether a new frame reached the
// surface.
//
// Invalid surface dimensions skip the cycle silently. Engine and blit
// failures are logged and leave the previous frame on screen. A frame whose
// length disagrees with the requested size is a broken engine contract and
// panics with an error wrapping present.ErrDimensionMismatch.
func (p *Pipeline) Cycle() bool {
	log := logging.Logger()
	req := p.Snapshot()
	if err := req.Validate(); err != nil {
		log.Debug("render skipped", "width", req.Width, "height", req.Height)
		return false
	}

	start := time.Now()
	frame, err := p.Engine.Render(req)
	if err != nil {
		if errors.Is(err, raytrace.ErrInvalidDimensions) {
			log.Debug("render skipped", "err", err)
		} else {
			log.Warn("render failed", "err", err)
		}
		return false
	}
	rendered := time.Since(start)

	if err := p.Presenter.Present(frame, req.Width, req.Height); err != nil {
		if errors.Is(err, present.ErrDimensionMismatch) {
			panic(fmt.Errorf("viewer: engine contract violated: %w", err))
		}
		log.Warn("blit failed", "err", err)
		return false
	}

	p.last = FrameStats{
		Request: req,
		Render:  rendered,
		Total:   time.Since(start),
		Frames:  p.last.Frames + 1,
	}
	log.Debug("frame",
		"width", req.Width, "height", req.Height,
		"brightness", req.Brightness,
		"render", rendered, "total", p.last.Total)
	return true
}

// Last returns statistics for the most recent successful cycle.
func (p *Pipeline) Last() FrameStats {
	return p.last
}
