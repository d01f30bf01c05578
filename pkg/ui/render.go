package ui

import (
	"fmt"
	"path"
	"strings"

	"github.com/rescp17/slideCaster/internal/style"
	"github.com/rescp17/slideCaster/pkg/viewer"
)

// Frame draws one frame of the show as a bordered surface: the current image
// front and center, a thumbnail strip underneath, and the backdrop line when
// one is set. It is a pure function of the frame so both modes render
// identically.
func Frame(frame viewer.RenderState, width int) string {
	if frame.Total == 0 {
		return style.SurfaceStyle.Render("(empty show)")
	}

	var b strings.Builder
	b.WriteString(style.CurrentStyle.Render(frame.Current))
	b.WriteString("\n")
	b.WriteString(style.HelpStyle.Render(frame.CurrentLabel))
	b.WriteString("\n\n")
	b.WriteString(thumbnailStrip(frame))

	if frame.Background != "" {
		b.WriteString("\n\n")
		b.WriteString(style.BackgroundStyle.Render("backdrop: " + path.Base(frame.Background)))
	}

	surface := style.SurfaceStyle
	if width > 8 {
		surface = surface.Width(width - 4)
	}
	return surface.Render(b.String())
}

func thumbnailStrip(frame viewer.RenderState) string {
	thumbs := make([]string, 0, len(frame.Thumbnails))
	for i, image := range frame.Thumbnails {
		name := fmt.Sprintf("[%s]", path.Base(image))
		if i == frame.Index {
			thumbs = append(thumbs, style.ActiveThumb.Render(name))
		} else {
			thumbs = append(thumbs, style.ThumbStyle.Render(name))
		}
	}
	return strings.Join(thumbs, " ")
}
