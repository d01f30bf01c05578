package viewer

import (
	"fmt"
)

// RenderState is everything a renderer needs to draw one frame of the show.
type RenderState struct {
	Background   string
	Current      string
	CurrentLabel string
	Thumbnails   []string
	Index        int
	Total        int
}

// Renderer draws a frame. Drawing is asynchronous I/O-bound work and may
// fail; a failed render is surfaced to the caller but leaves the session
// usable for the next attempt.
type Renderer interface {
	Render(RenderState) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(RenderState) error

func (f RendererFunc) Render(rs RenderState) error { return f(rs) }

func snapshot(s *State) RenderState {
	rs := RenderState{
		Background: s.Background,
		Index:      s.Index,
		Total:      len(s.Images),
		Thumbnails: append([]string(nil), s.Images...),
	}
	if len(s.Images) > 0 {
		rs.Current = s.Images[s.Index]
		rs.CurrentLabel = fmt.Sprintf("%d/%d", s.Index+1, len(s.Images))
	}
	return rs
}
