package main

import (
	"os"
	"runtime"
	"time"

	"github.com/urfave/cli"

	"github.com/hubastard/glhost/engine/log"
)

var logger = log.New("sandbox")

func init() {
	// GLFW and the contexts it creates must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	app := cli.NewApp()
	app.Name = "glhost-sandbox"
	app.Usage = "render off-screen GL frames through the host presentation pipeline"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.BoolFlag{
			Name:  "q",
			Usage: "only log errors",
		},
	}
	contextFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 640,
			Usage: "initial layout width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 480,
			Usage: "initial layout height",
		},
		cli.IntFlag{
			Name:  "gl-major",
			Value: 3,
			Usage: "requested GL context major version",
		},
		cli.IntFlag{
			Name:  "gl-minor",
			Value: 3,
			Usage: "requested GL context minor version",
		},
		cli.BoolFlag{
			Name:  "gl-debug",
			Usage: "request a debug context",
		},
		cli.IntFlag{
			Name:  "buffers",
			Value: 3,
			Usage: "number of pixel transfer buffers",
		},
		cli.BoolFlag{
			Name:  "hardware",
			Usage: "select the zero-copy interop path (rejected: not supported)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "drive the presenter for a number of frames and print frame statistics",
			Description: `
Creates a hidden GL context, renders a spinning triangle into an off-screen
framebuffer on every tick and presents the read-back pixels through a
headless host surface. Optionally resizes the layout mid-run and writes the
last composed frame to a PNG file.`,
			Flags: append(contextFlags,
				cli.IntFlag{
					Name:  "frames",
					Value: 120,
					Usage: "number of frames to render (0 = until interrupted)",
				},
				cli.IntFlag{
					Name:  "fps",
					Value: 60,
					Usage: "frame clock rate",
				},
				cli.DurationFlag{
					Name:  "debounce",
					Value: time.Second,
					Usage: "quiet period after a resize before the target is rebuilt",
				},
				cli.StringFlag{
					Name:  "resize",
					Usage: "layout size to switch to mid-run, as WxH",
				},
				cli.IntFlag{
					Name:  "resize-frame",
					Value: 30,
					Usage: "frame at which --resize is applied",
				},
				cli.StringFlag{
					Name:  "out",
					Usage: "write the last composed frame to this PNG file",
				},
			),
			Action: runFrames,
		},
		{
			Name:   "probe",
			Usage:  "create a context and a render target once and report completeness",
			Flags:  contextFlags,
			Action: probe,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) {
	log.SetLevel(log.LevelFromFlags(ctx.GlobalBool("vv"), ctx.GlobalBool("v"), ctx.GlobalBool("q")))
}
