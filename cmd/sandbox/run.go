package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli"

	"github.com/hubastard/glhost/engine/assets"
	"github.com/hubastard/glhost/engine/colors"
	"github.com/hubastard/glhost/engine/core"
	glbackend "github.com/hubastard/glhost/engine/gfx/gl"
	"github.com/hubastard/glhost/engine/gfx/target"
	"github.com/hubastard/glhost/engine/host"
	"github.com/hubastard/glhost/engine/platform"
	"github.com/hubastard/glhost/engine/present"
	"github.com/hubastard/glhost/engine/profiler"
)

func configFromFlags(ctx *cli.Context) core.Config {
	cfg := core.DefaultConfig()
	cfg.ContextMajor = ctx.Int("gl-major")
	cfg.ContextMinor = ctx.Int("gl-minor")
	if ctx.Bool("gl-debug") {
		cfg.ContextFlags |= core.FlagDebug
	}
	cfg.TransferBuffers = ctx.Int("buffers")
	if ctx.Bool("hardware") {
		cfg.Path = core.PathHardware
	}
	if ctx.IsSet("debounce") {
		cfg.ResizeDebounce = ctx.Duration("debounce")
	}
	return cfg
}

// Render frames through the presenter.
func runFrames(ctx *cli.Context) error {
	setupLogging(ctx)
	profiler.Init(1 << 14)

	cfg := configFromFlags(ctx)
	width, height := ctx.Int("width"), ctx.Int("height")

	var resizeW, resizeH int
	if size := ctx.String("resize"); size != "" {
		var err error
		if resizeW, resizeH, err = parseSize(size); err != nil {
			return err
		}
	}

	img := host.NewImageHost(width, height)
	img.SetBackground(colors.Black.RGBA8())
	frames := core.NewTicker(nil, ctx.Int("fps"))
	drv := present.New(present.Host{
		Contexts: platform.GLFW{},
		Loader:   glbackend.Load,
		Frames:   frames,
		Surface:  img,
	})
	if err := drv.Start(cfg); err != nil {
		return err
	}
	defer platform.Terminate()

	drv.Push(&triangleLayer{major: cfg.ContextMajor, minor: cfg.ContextMinor, clear: colors.Slate})
	drv.Push(newFrameLogLayer(60))

	if err := drv.Load(width, height); err != nil {
		return err
	}
	defer drv.Unload()

	frame := 0
	unsubscribe := frames.Subscribe(func() {
		frame++
		if resizeW > 0 && frame == ctx.Int("resize-frame") {
			logger.Noticef("resizing layout to %dx%d", resizeW, resizeH)
			img.Resize(resizeW, resizeH)
			drv.Resize(resizeW, resizeH)
		}
		img.Compose(drv)
	})
	defer unsubscribe()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := frames.Run(runCtx, ctx.Int("frames")); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if out := ctx.String("out"); out != "" {
		if err := assets.SavePNG(out, img.Image()); err != nil {
			return err
		}
		logger.Noticef("wrote last frame to %s", out)
	}
	if path, err := profiler.Dump(os.TempDir()); err == nil && path != "" {
		logger.Noticef("speedscope dump: %s", path)
	}

	displayStats(cfg, drv.Stats(), img)
	if err := drv.Err(); core.IsFatal(err) {
		return err
	}
	return nil
}

// Create a context and one render target, then tear both down.
func probe(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg := configFromFlags(ctx)
	if err := cfg.Validate(); err != nil {
		return err
	}
	defer platform.Terminate()

	glctx, err := platform.GLFW{}.CreateContext(cfg.ContextMajor, cfg.ContextMinor, cfg.ContextFlags)
	if err != nil {
		return &core.ContextCreationError{Major: cfg.ContextMajor, Minor: cfg.ContextMinor, Err: err}
	}
	defer glctx.Destroy()
	if err := glctx.MakeCurrent(); err != nil {
		return err
	}
	api, err := glbackend.Load()
	if err != nil {
		return err
	}

	s, err := target.New(api, ctx.Int("width"), ctx.Int("height"), cfg.TransferBuffers)
	if err != nil {
		return err
	}
	defer s.Release()

	w, h := s.Size()
	logger.Noticef("framebuffer %d complete at %dx%d, transfer buffers %v", s.Framebuffer(), w, h, s.TransferBuffers())
	return nil
}

func parseSize(s string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q", s)
	}
	return w, h, nil
}
