package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"sphere-viewer/internal/config"
	"sphere-viewer/internal/logging"
	"sphere-viewer/internal/present"
	"sphere-viewer/internal/raytrace"
	"sphere-viewer/internal/scene"
	"sphere-viewer/internal/viewer"
)

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b

	// resizePoll is how often the terminal size is checked for changes.
	resizePoll = 100 * time.Millisecond
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	brightness := flag.Float64("brightness", config.NoBrightness, "Initial brightness 0-4 (default: 1)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 1)")
	workers := flag.Int("workers", 0, "Number of render goroutines (default: NumCPU)")
	logFile := flag.String("log", "", "Write debug log to this file")

	flag.Parse()

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "Error: termview needs an interactive terminal")
		os.Exit(1)
	}

	// The screen belongs to the image, so logs only go to a file.
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logging.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		Brightness:  *brightness,
		Supersample: *supersample,
		Workers:     *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(fd, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(fd int, cfg config.Config) error {
	old, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("termview: raw mode: %w", err)
	}
	defer term.Restore(fd, old)

	out := os.Stdout
	io.WriteString(out, ansi.SetModeAltScreenSaveCursor+ansi.HideCursor+ansi.EraseEntireScreen)
	defer io.WriteString(out, ansi.ResetStyle+ansi.ShowCursor+ansi.ResetModeAltScreenSaveCursor)

	size := func() (int, int, error) { return term.GetSize(int(out.Fd())) }
	surface := &present.TerminalSurface{Out: out, SizeFunc: size, Reserve: 1}
	ctrl := viewer.New(viewer.Options{
		Engine: &raytrace.Tracer{
			Workers:     cfg.Workers,
			Supersample: cfg.Supersample,
		},
		Surface:    surface,
		Brightness: cfg.StartBrightness(),
	})

	keys := make(chan []byte)
	go readKeys(os.Stdin, keys)

	cols, rows, _ := size()
	resize := time.NewTicker(resizePoll)
	defer resize.Stop()

	ctrl.Start()
	for {
		var wake <-chan time.Time
		if d, ok := ctrl.Scheduler.Wait(); ok {
			wake = time.After(d)
		}

		select {
		case chunk, ok := <-keys:
			if !ok || quit(chunk) {
				return nil
			}
			for _, b := range chunk {
				if b >= '0' && b <= '0'+byte(scene.MaxBrightness) {
					ctrl.SetBrightness(float64(b - '0'))
					continue
				}
				ctrl.Handle(scene.ActionForKey(rune(b)))
			}

		case <-resize.C:
			c, r, err := size()
			if err == nil && (c != cols || r != rows) {
				cols, rows = c, r
				io.WriteString(out, ansi.EraseEntireScreen)
				ctrl.Resized()
			}

		case <-wake:
			if ctrl.Tick() {
				surface.Status(status(ctrl))
			}
		}
	}
}

// quit reports whether a read holds Ctrl-C or a lone Escape. Escape
// sequences from arrow and function keys arrive as one longer read.
func quit(chunk []byte) bool {
	if len(chunk) == 1 && chunk[0] == keyEscape {
		return true
	}
	for _, b := range chunk {
		if b == keyCtrlC {
			return true
		}
	}
	return false
}

func readKeys(r io.Reader, keys chan<- []byte) {
	defer close(keys)
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			keys <- chunk
		}
		if err != nil {
			return
		}
	}
}

func status(ctrl *viewer.Controller) string {
	st := ctrl.State
	last := ctrl.Pipeline.Last()
	return fmt.Sprintf("pos %+.1f %+.1f %+.1f | brightness %.1f | %dx%d in %v | wsadqe move, xz/0-4 light, esc quit",
		st.Position[0], st.Position[1], st.Position[2], st.Brightness,
		last.Request.Width, last.Request.Height, last.Render.Round(time.Millisecond))
}
