package menu

import (
	"strconv"
	"sync"

	"github.com/postwarps/postwarps/internal/provider"
	"github.com/postwarps/postwarps/internal/value"
)

// Context is the per-render fact bag: static definition, actor identity,
// session sub-map and any dynamic data rows. Built fresh for every render
// and click, never shared across calls.
type Context struct {
	Actor   provider.Actor
	Def     *Definition
	Session *SessionState
	Data    provider.Data

	facts map[string]value.Value
	// row overlays facts for one content-slot resolution.
	row map[string]value.Value
}

// NewContext merges the static definition, the actor and the session sub-map
// into one fact lookup. This step cannot fail.
func NewContext(actor provider.Actor, def *Definition, sess *SessionState) *Context {
	rc := &Context{
		Actor:   actor,
		Def:     def,
		Session: sess,
		facts: map[string]value.Value{
			"player": value.Of(actor.Name),
			"menu":   value.Of(def.Name),
		},
	}
	if sess != nil {
		rc.facts["page"] = value.OfInt(int64(sess.Page))
		rc.facts["shift"] = value.OfBool(sess.Shift)
		for k, v := range sess.Facts {
			rc.facts[k] = v
		}
	}
	return rc
}

// Put adds or replaces one fact.
func (rc *Context) Put(name string, v value.Value) { rc.facts[name] = v }

// Fact implements condition.Facts. Row facts from the content slot being
// resolved shadow render facts.
func (rc *Context) Fact(name string) value.Value {
	if rc.row != nil {
		if v, ok := rc.row[name]; ok {
			return v
		}
	}
	if v, ok := rc.facts[name]; ok {
		return v
	}
	return value.None
}

// withRow returns a shallow view of rc with row facts overlaid; rc itself is
// untouched so concurrent slot resolutions never observe each other's rows.
func (rc *Context) withRow(row map[string]value.Value) *Context {
	clone := *rc
	clone.row = row
	return &clone
}

// templateData flattens the visible facts for text/template rendering.
func (rc *Context) templateData() map[string]any {
	out := make(map[string]any, len(rc.facts)+len(rc.row))
	for k, v := range rc.facts {
		out[k] = v.StrOr("")
	}
	for k, v := range rc.row {
		out[k] = v.StrOr("")
	}
	return out
}

// SessionState is the per-actor transient state tied to one open menu:
// which menu is open, the current page, and click-modifier flags. It is
// owned by the actor's interaction flow; the engine only ever mutates the
// session passed into the call.
type SessionState struct {
	Menu  string
	Page  int
	Shift bool
	Facts map[string]value.Value
}

// SetFact records a transient session fact (e.g. a pending selection).
func (s *SessionState) SetFact(name string, v value.Value) {
	if s.Facts == nil {
		s.Facts = make(map[string]value.Value)
	}
	s.Facts[name] = v
}

func (s *SessionState) String() string {
	return s.Menu + "#" + strconv.Itoa(s.Page)
}

// SessionRegistry owns the per-actor sessions: created on open, dropped on
// close or disconnect. Registry access is the only cross-actor touch point,
// so it carries the lock; each SessionState itself belongs to one actor's
// flow.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*SessionState
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*SessionState)}
}

// Open returns the actor's session for menuName, creating or re-targeting it
// as needed. Re-targeting resets the page and transient facts.
func (r *SessionRegistry) Open(actorID, menuName string) *SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[actorID]
	if !ok || s.Menu != menuName {
		s = &SessionState{Menu: menuName}
		r.sessions[actorID] = s
	}
	return s
}

// Get returns the actor's live session, if any.
func (r *SessionRegistry) Get(actorID string) (*SessionState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[actorID]
	return s, ok
}

// Close drops the actor's session.
func (r *SessionRegistry) Close(actorID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, actorID)
}
