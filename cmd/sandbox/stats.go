package main

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/hubastard/glhost/engine/core"
	"github.com/hubastard/glhost/engine/host"
	"github.com/hubastard/glhost/engine/present"
)

// Display presenter statistics as a table.
func displayStats(cfg core.Config, stats present.Stats, img *host.ImageHost) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Value"})

	w, h := img.Size()
	table.AppendBulk([][]string{
		{"GL context", fmt.Sprintf("%d.%d (%s)", cfg.ContextMajor, cfg.ContextMinor, cfg.Ownership)},
		{"Transfer buffers", fmt.Sprintf("%d", cfg.TransferBuffers)},
		{"Layout", fmt.Sprintf("%dx%d", w, h)},
		{"Frames rendered", fmt.Sprintf("%d", stats.Ticks)},
		{"Frames skipped (resize)", fmt.Sprintf("%d", stats.Skipped)},
		{"Target rebuilds", fmt.Sprintf("%d", stats.Rebuilds)},
		{"Pixel transfers", fmt.Sprintf("%d", stats.Transfers)},
		{"Transient GL errors", fmt.Sprintf("%d", stats.TransientErrors)},
		{"Host invalidations", fmt.Sprintf("%d", img.Invalidations())},
		{"Host paints", fmt.Sprintf("%d", img.Paints())},
	})
	table.SetFooter([]string{"Last frame", stats.LastElapsed.String()})

	table.Render()
	logger.Noticef("presenter statistics\n%s", buf.String())
}
