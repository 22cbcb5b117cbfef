package menu

import (
	"fmt"
)

// SlotResolver materializes one slot: variant resolution plus item build for
// the given spec under rc. ok=false means the slot could not be resolved and
// stays empty; a per-slot failure never aborts the surrounding render.
type SlotResolver func(rc *Context, spec *ItemSpec) (DisplayItem, []string, bool)

// Renderer turns resolved items plus layout metadata into a Surface. Menu
// kinds select a renderer through Supports, never through type inspection.
type Renderer interface {
	Supports(kind string) bool
	Render(rc *Context, idx *LayoutIndex, resolve SlotResolver) (*Surface, error)
}

// Registry holds the renderer candidates in registration order; Pick returns
// the first whose Supports holds, mirroring variant resolution.
type Registry struct {
	renderers []Renderer
}

func NewRegistry(renderers ...Renderer) *Registry {
	return &Registry{renderers: renderers}
}

func (r *Registry) Register(rend Renderer) { r.renderers = append(r.renderers, rend) }

func (r *Registry) Pick(kind string) (Renderer, bool) {
	for _, rend := range r.renderers {
		if rend.Supports(kind) {
			return rend, true
		}
	}
	return nil, false
}

// StaticRenderer lays out exactly what the definition declares.
type StaticRenderer struct{}

func (StaticRenderer) Supports(kind string) bool { return kind == KindStatic }

func (StaticRenderer) Render(rc *Context, idx *LayoutIndex, resolve SlotResolver) (*Surface, error) {
	s, err := newSurface(rc, idx)
	if err != nil {
		return nil, err
	}
	fillStatic(s, rc, idx, resolve, false)
	return s, nil
}

// PagedRenderer fills the content region from dynamic data rows, one row per
// content slot, honoring the session's current page. Static framing slots
// render exactly as in a static menu.
type PagedRenderer struct{}

func (PagedRenderer) Supports(kind string) bool { return kind == KindPaged }

func (PagedRenderer) Render(rc *Context, idx *LayoutIndex, resolve SlotResolver) (*Surface, error) {
	s, err := newSurface(rc, idx)
	if err != nil {
		return nil, err
	}
	perPage := idx.PageSize()
	if perPage == 0 {
		return nil, fmt.Errorf("menu %s: paged layout has no content slots", rc.Def.Name)
	}

	rows := rc.Data.Rows
	s.PageCount = (len(rows) + perPage - 1) / perPage
	if s.PageCount == 0 {
		s.PageCount = 1
	}
	// Clamp without mutating the session; renders are read-only.
	s.Page = rc.Session.Page
	if s.Page >= s.PageCount {
		s.Page = s.PageCount - 1
	}
	if s.Page < 0 {
		s.Page = 0
	}

	fillStatic(s, rc, idx, resolve, true)

	contentSpec := rc.Def.Items[rc.Def.Content]
	if contentSpec == nil {
		return s, nil
	}
	for pos, slot := range idx.Content {
		ri := s.Page*perPage + pos
		if ri >= len(rows) {
			continue
		}
		if d, _, ok := resolve(rc.withRow(rows[ri]), contentSpec); ok {
			s.Slots[slot] = d
		}
	}
	return s, nil
}

func newSurface(rc *Context, idx *LayoutIndex) (*Surface, error) {
	title, err := expand(rc.Def.Title, rc)
	if err != nil {
		return nil, fmt.Errorf("menu %s title: %w", rc.Def.Name, err)
	}
	return &Surface{
		Menu:      rc.Def.Name,
		Title:     title,
		Width:     idx.Width,
		Slots:     make([]DisplayItem, idx.Size()),
		PageCount: 1,
	}, nil
}

// fillStatic resolves every populated non-content slot. Content slots are
// the paged renderer's business.
func fillStatic(s *Surface, rc *Context, idx *LayoutIndex, resolve SlotResolver, skipContent bool) {
	it := idx.Populated.Iterator()
	for it.HasNext() {
		slot := it.Next()
		sym, _ := idx.Symbol(int(slot))
		if skipContent && sym == rc.Def.Content {
			continue
		}
		spec := rc.Def.Items[sym]
		if spec == nil {
			continue
		}
		if d, _, ok := resolve(rc, spec); ok {
			s.Slots[slot] = d
		}
	}
}
