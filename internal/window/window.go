// Package window presents the viewer in a desktop window and feeds keyboard
// input back into the controller.
package window

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sphere-viewer/internal/logging"
	"sphere-viewer/internal/present"
	"sphere-viewer/internal/raytrace"
	"sphere-viewer/internal/scene"
	"sphere-viewer/internal/viewer"
)

// keyRunes maps the polled keys onto the runes scene.ActionForKey knows.
var keyRunes = map[ebiten.Key]rune{
	ebiten.KeyW: 'w',
	ebiten.KeyS: 's',
	ebiten.KeyA: 'a',
	ebiten.KeyD: 'd',
	ebiten.KeyQ: 'q',
	ebiten.KeyE: 'e',
	ebiten.KeyX: 'x',
	ebiten.KeyZ: 'z',
}

// Surface is the window's render target. Its size is the window size divided
// by the display scale and changes whenever the user resizes the window.
type Surface struct {
	w, h int
	img  *ebiten.Image
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

// Blit uploads img to the GPU texture drawn every frame, reallocating the
// texture when the frame size changed.
func (s *Surface) Blit(img present.Image, w, h int) error {
	if s.img == nil || s.img.Bounds().Dx() != w || s.img.Bounds().Dy() != h {
		if s.img != nil {
			s.img.Deallocate()
		}
		s.img = ebiten.NewImage(w, h)
	}
	s.img.WritePixels(img)
	return nil
}

// Options configures Run.
type Options struct {
	Title      string
	Width      int // initial frame size in rendered pixels
	Height     int
	Scale      int // screen pixels per rendered pixel
	Brightness float64
	Engine     raytrace.Engine
	HUD        bool
}

// Run opens the window and blocks until it is closed or Esc is pressed.
func Run(opts Options) error {
	scale := max(opts.Scale, 1)
	surf := &Surface{w: opts.Width, h: opts.Height}
	g := &game{
		ctrl: viewer.New(viewer.Options{
			Engine:     opts.Engine,
			Surface:    surf,
			Brightness: opts.Brightness,
		}),
		surf:  surf,
		scale: scale,
		hud:   opts.HUD,
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width*scale, opts.Height*scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.DefaultTPS)

	logging.Logger().Info("window opened", "width", opts.Width, "height", opts.Height, "scale", scale)
	return ebiten.RunGame(g)
}

type game struct {
	ctrl    *viewer.Controller
	surf    *Surface
	scale   int
	hud     bool
	started bool

	outW, outH int
}

func (g *game) Update() error {
	if !g.started {
		g.ctrl.Start()
		g.started = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, r := range keyRunes {
		if inpututil.IsKeyJustPressed(key) {
			g.ctrl.Handle(scene.ActionForKey(r))
		}
	}
	for d := 0; d <= int(scene.MaxBrightness); d++ {
		if inpututil.IsKeyJustPressed(ebiten.KeyDigit0 + ebiten.Key(d)) {
			g.ctrl.SetBrightness(float64(d))
		}
	}
	g.ctrl.Tick()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.surf.img != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(g.scale), float64(g.scale))
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(g.surf.img, op)
	}
	if g.hud {
		st := g.ctrl.State
		last := g.ctrl.Pipeline.Last()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"pos %+.1f %+.1f %+.1f  brightness %.1f\n%dx%d  render %v  frames %d",
			st.Position[0], st.Position[1], st.Position[2], st.Brightness,
			last.Request.Width, last.Request.Height, last.Render.Round(100*time.Microsecond), last.Frames))
	}
}

// Layout treats a window size change as a dimension change of the surface.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.outW || outsideHeight != g.outH {
		g.outW, g.outH = outsideWidth, outsideHeight
		g.surf.w, g.surf.h = outsideWidth/g.scale, outsideHeight/g.scale
		if g.started {
			g.ctrl.Resized()
		}
	}
	return outsideWidth, outsideHeight
}
