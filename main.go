// Command dotfield renders a full-window field of faintly pulsing
// dots as a decorative background effect. The whole effect runs on a
// single GL thread: resize events rebuild the dot grid, a reduced
// motion marker pauses the animation, and every frame is one point
// draw call.
package main

import (
	"flag"
	"io"
	"math/rand"
	"runtime"
	"time"

	"go.uber.org/zap"

	"dotfield/config"
	"dotfield/core"
	"dotfield/motion"
	"dotfield/rendering/opengl"
)

func main() {
	runtime.LockOSThread()

	var (
		configPath = flag.String("config", "settings.json", "Path to settings file")
		width      = flag.Int("width", 0, "Window width (overrides settings)")
		height     = flag.Int("height", 0, "Window height (overrides settings)")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		settings = config.Default()
	}
	if *width > 0 {
		settings.Window.Width = *width
	}
	if *height > 0 {
		settings.Window.Height = *height
	}

	logger := newLogger(settings.Log.Level)
	defer logger.Sync()
	if err != nil {
		logger.Warn("settings load failed, using defaults", zap.Error(err))
	}

	renderer, err := opengl.NewDotRenderer(
		settings.Window.Width, settings.Window.Height, settings.Window.Title, logger)
	if err != nil {
		// Best-effort cosmetic layer: report and stay inert.
		logger.Error("renderer setup failed, dot field disabled", zap.Error(err))
		return
	}
	defer renderer.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rebuildGrid := func(w, h int) {
		grid := core.BuildGrid(w, h, core.DefaultCellSize, rng)
		renderer.SetGrid(grid)
	}
	surfaceWidth, surfaceHeight := renderer.Size()
	rebuildGrid(surfaceWidth, surfaceHeight)
	renderer.SetResizeHandler(rebuildGrid)

	motionSrc := newMotionSource(settings.Motion.MarkerFile, logger)
	if closer, ok := motionSrc.(io.Closer); ok {
		defer closer.Close()
	}

	sched := &frameScheduler{}
	driver := core.NewDriver(sched, renderer.Draw, motionSrc.Reduced(), logger)

	for !renderer.ShouldClose() {
		renderer.PollEvents()

		select {
		case reduced := <-motionSrc.Changes():
			driver.SetReducedMotion(reduced)
		default:
		}

		if step := sched.take(); step != nil {
			// One step per display refresh; Draw blocks on the
			// vsynced buffer swap.
			step()
		} else {
			renderer.WaitEventsTimeout(0.1)
		}
	}
}

// newMotionSource builds the reduced-motion signal source, degrading
// to a fixed "motion allowed" source when no watcher can be set up.
func newMotionSource(markerPath string, logger *zap.Logger) motion.Source {
	path := markerPath
	if path == "" {
		var err error
		path, err = motion.DefaultMarkerPath()
		if err != nil {
			logger.Warn("no user config dir, reduced motion detection disabled", zap.Error(err))
			return motion.Static(false)
		}
	}

	src, err := motion.NewFileSource(path, logger)
	if err != nil {
		logger.Warn("reduced motion watch unavailable", zap.Error(err))
		return motion.Static(false)
	}
	return src
}
