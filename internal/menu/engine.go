package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agnivade/levenshtein"
	billy "github.com/go-git/go-billy/v5"

	"github.com/postwarps/postwarps/internal/cache"
	"github.com/postwarps/postwarps/internal/condition"
	"github.com/postwarps/postwarps/internal/provider"
)

// ErrNotPermitted signals that the menu's open requirement rejected the
// actor. The caller maps it to a user-facing notification.
var ErrNotPermitted = errors.New("menu not permitted")

// Built-in paging actions, interpreted by the engine instead of being handed
// to the action executor. Both translate to a refresh the caller performs by
// reopening the menu.
const (
	actionPageNext = "page:next"
	actionPagePrev = "page:prev"
	actionRefresh  = "menu:refresh"
)

// Options wires the engine's collaborators.
type Options struct {
	Auth         provider.Authorizer
	Providers    []provider.DataProvider
	Renderers    *Registry // nil gets the bundled static + paged pair
	FetchTimeout time.Duration
	DerivedTTL   time.Duration
	Log          *slog.Logger
}

// Engine is the menu pipeline: build context, fetch dynamic data, resolve
// every declared item, render, return the surface. All shared state lives in
// the two cache spaces; everything per-call is built fresh, so concurrent
// opens for different actors never contend beyond the cache locks.
type Engine struct {
	loader       *Loader
	spaces       *cache.Spaces[*Definition, *LayoutIndex]
	eval         *condition.Evaluator
	providers    []provider.DataProvider
	renderers    *Registry
	sessions     *SessionRegistry
	log          *slog.Logger
	fetchTimeout time.Duration
}

func NewEngine(fsys billy.Filesystem, dir string, opts Options) *Engine {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 2 * time.Second
	}
	if opts.DerivedTTL <= 0 {
		opts.DerivedTTL = 10 * time.Minute
	}
	if opts.Renderers == nil {
		opts.Renderers = NewRegistry(StaticRenderer{}, PagedRenderer{})
	}
	spaces := cache.NewSpaces[*Definition, *LayoutIndex](opts.DerivedTTL)
	loader := NewLoader(fsys, dir, spaces.Definitions, log)
	loader.onReplace = func(name string) { spaces.Derived.Remove(name) }
	return &Engine{
		loader:       loader,
		spaces:       spaces,
		eval:         condition.New(opts.Auth, log),
		providers:    opts.Providers,
		renderers:    opts.Renderers,
		sessions:     NewSessionRegistry(),
		log:          log,
		fetchTimeout: opts.FetchTimeout,
	}
}

// LoadAll performs the initial load of the menu directory.
func (e *Engine) LoadAll() (int, error) { return e.loader.LoadAll() }

// ReloadAll fully replaces all menu data: both cache spaces are cleared
// before reparsing, so no later render can mix old and new definitions.
func (e *Engine) ReloadAll() (int, error) {
	e.spaces.Derived.Clear()
	return e.loader.ReloadAll()
}

// Invalidate drops one menu from both cache spaces after a single file
// changed; follow with LoadAll to reparse the directory.
func (e *Engine) Invalidate(name string) { e.spaces.Invalidate(name) }

// CacheStats snapshots both cache spaces.
func (e *Engine) CacheStats() cache.StatsAll { return e.spaces.Stats() }

// Loader exposes load/reload bookkeeping to the CLI.
func (e *Engine) Loader() *Loader { return e.loader }

// Sessions exposes the per-actor session registry.
func (e *Engine) Sessions() *SessionRegistry { return e.sessions }

// OpenSurface runs the render pipeline for one actor and menu. A nil sess
// uses the registry session for the actor, creating one. The only externally
// visible failures are an unknown menu, a rejected open requirement and a
// renderer error; everything per-item or per-fetch degrades instead.
func (e *Engine) OpenSurface(ctx context.Context, actor provider.Actor, menuName string, sess *SessionState) (*Surface, error) {
	def, ok := e.loader.Get(menuName)
	if !ok {
		return nil, e.unknownMenu(menuName)
	}
	if def.OpenRequirement != "" {
		probe := NewContext(actor, def, sess)
		if !e.eval.Eval(def.OpenRequirement, actor, probe) {
			e.log.Debug("open requirement rejected", "menu", menuName, "actor", actor.Name)
			return nil, ErrNotPermitted
		}
	}

	if sess == nil {
		sess = e.sessions.Open(actor.ID, menuName)
	} else {
		if sess.Menu != menuName {
			sess.Page = 0
			sess.Facts = nil
		}
		sess.Menu = menuName
	}

	rc := NewContext(actor, def, sess)
	rc.Data = e.fetchData(ctx, actor, menuName)

	idx, err := e.layoutIndex(def)
	if err != nil {
		return nil, err
	}

	renderer, ok := e.renderers.Pick(def.Kind)
	if !ok {
		return nil, fmt.Errorf("menu %s: no renderer supports kind %q", menuName, def.Kind)
	}
	surface, err := renderer.Render(rc, idx, e.resolveSlot)
	if err != nil {
		e.log.Error("render failed", "menu", menuName, "err", err)
		return nil, fmt.Errorf("render %s: %w", menuName, err)
	}
	sess.Page = surface.Page
	return surface, nil
}

// HandleClick maps slot back to the ItemSpec under the currently rendered
// layout (page-dependent for content slots), re-resolves that one item
// against fresh facts and returns its action list. Out-of-range or empty
// slots return no actions, never an error.
func (e *Engine) HandleClick(ctx context.Context, actor provider.Actor, slot int, sess *SessionState) []string {
	if sess == nil {
		var ok bool
		if sess, ok = e.sessions.Get(actor.ID); !ok {
			return nil
		}
	}
	def, ok := e.loader.Get(sess.Menu)
	if !ok {
		return nil
	}
	idx, err := e.layoutIndex(def)
	if err != nil {
		return nil
	}
	sym, ok := idx.Symbol(slot)
	if !ok {
		return nil
	}
	spec := def.Items[sym]
	if spec == nil {
		return nil
	}
	rc := NewContext(actor, def, sess)

	if def.Content != "" && sym == def.Content {
		pos, _ := idx.ContentPosition(slot)
		rc.Data = e.fetchData(ctx, actor, sess.Menu)
		ri := sess.Page*idx.PageSize() + pos
		if ri >= len(rc.Data.Rows) {
			return nil
		}
		rc = rc.withRow(rc.Data.Rows[ri])
	}

	_, actions, ok := e.resolveSlot(rc, spec)
	if !ok {
		return nil
	}
	return e.applyPaging(sess, actions)
}

// resolveSlot is the per-slot half of the pipeline: variant resolution then
// item build. Failures leave the slot empty and log at debug level only.
func (e *Engine) resolveSlot(rc *Context, spec *ItemSpec) (DisplayItem, []string, bool) {
	variant := ResolveVariant(e.eval, spec.Variants, rc.Actor, rc)
	d, actions, err := BuildItem(spec, variant, rc)
	if err != nil {
		e.log.Debug("slot left empty", "menu", rc.Def.Name, "item", spec.Symbol, "err", err)
		return DisplayItem{}, nil, false
	}
	return d, actions, true
}

// fetchData is the pipeline's one suspension point. It is bounded by the
// fetch timeout and degrades to empty data on any failure: fewer items beat
// no menu at all.
func (e *Engine) fetchData(ctx context.Context, actor provider.Actor, menuName string) provider.Data {
	for _, p := range e.providers {
		if !p.Supports(menuName) {
			continue
		}
		fctx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
		data, err := p.Fetch(fctx, actor, menuName)
		cancel()
		if err != nil {
			e.log.Warn("dynamic data fetch failed, rendering degraded",
				"menu", menuName, "err", err)
			return provider.Data{}
		}
		return data
	}
	return provider.Data{}
}

// applyPaging interprets the built-in page actions against the actor's own
// session and rewrites them to a single refresh for the caller. All other
// actions pass through untouched.
func (e *Engine) applyPaging(sess *SessionState, actions []string) []string {
	out := make([]string, 0, len(actions))
	paged := false
	for _, a := range actions {
		switch a {
		case actionPageNext:
			sess.Page++
			paged = true
		case actionPagePrev:
			if sess.Page > 0 {
				sess.Page--
			}
			paged = true
		default:
			out = append(out, a)
		}
	}
	if paged {
		out = append(out, actionRefresh)
	}
	return out
}

func (e *Engine) layoutIndex(def *Definition) (*LayoutIndex, error) {
	return e.spaces.Derived.GetOrCreate(def.Name, func() (*LayoutIndex, error) {
		return BuildLayoutIndex(def), nil
	})
}

// unknownMenu builds the not-found error, with a did-you-mean suggestion
// when a loaded name is within edit distance two.
func (e *Engine) unknownMenu(name string) error {
	best, bestDist := "", 3
	for _, candidate := range e.loader.Names() {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if best != "" {
		return fmt.Errorf("unknown menu %q (did you mean %q?)", name, best)
	}
	return fmt.Errorf("unknown menu %q", name)
}
