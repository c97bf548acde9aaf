package viewer

import (
	"sphere-viewer/internal/present"
	"sphere-viewer/internal/raytrace"
	"sphere-viewer/internal/scene"
	"sphere-viewer/internal/schedule"
)

// Options configures a Controller.
type Options struct {
	Engine     raytrace.Engine
	Surface    present.Surface
	Clock      schedule.Clock // nil means the wall clock
	Brightness float64        // initial brightness
}

// Controller owns the single scene state of a viewer and turns input events
// into state mutations followed by exactly one render request each.
type Controller struct {
	State     *scene.State
	Pipeline  *Pipeline
	Scheduler *schedule.Scheduler
}

// New builds a controller with the scene at the origin.
func New(opts Options) *Controller {
	st := scene.New(opts.Brightness)
	p := &Pipeline{
		State:     st,
		Engine:    opts.Engine,
		Presenter: &present.Presenter{Surface: opts.Surface},
	}
	return &Controller{
		State:     st,
		Pipeline:  p,
		Scheduler: schedule.New(opts.Clock, func() { p.Cycle() }),
	}
}

// Start requests the initial frame.
func (c *Controller) Start() {
	c.Scheduler.Request()
}

// Handle applies an input action and requests one render. ActionNone is
// ignored.
func (c *Controller) Handle(a scene.Action) bool {
	if !c.State.Apply(a) {
		return false
	}
	c.Scheduler.Request()
	return true
}

// SetBrightness handles a brightness-field change and returns the stored
// (clamped, snapped) value for display.
func (c *Controller) SetBrightness(v float64) float64 {
	b := c.State.SetBrightness(v)
	c.Scheduler.Request()
	return b
}

// Resized handles a change of the surface dimensions. The new size itself is
// read from the surface when the cycle runs.
func (c *Controller) Resized() {
	c.Scheduler.Request()
}

// Tick advances the scheduler; see schedule.Scheduler.Tick.
func (c *Controller) Tick() bool {
	return c.Scheduler.Tick()
}
