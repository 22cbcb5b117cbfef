// Package provider declares the collaborator interfaces the menu engine
// consumes. The engine resolves menus against these boundaries; it never
// executes actions, paints widgets or talks to the permission plugin itself.
package provider

import (
	"context"

	"github.com/postwarps/postwarps/internal/value"
)

// Actor identifies the player a menu is being resolved for.
type Actor struct {
	ID   string
	Name string
}

// Authorizer answers capability and group queries for an actor.
type Authorizer interface {
	HasCapability(actor Actor, capability string) bool
	GroupsOf(actor Actor) []string
}

// Data is the result of one dynamic fetch: an ordered list of rows, each a
// flat fact map consumed by paged renderers and placeholder expansion.
type Data struct {
	Rows []map[string]value.Value
}

// DataProvider supplies dynamic rows for menus that declare a data source.
// Fetch may perform I/O; callers bound it with a context deadline.
type DataProvider interface {
	Supports(menuName string) bool
	Fetch(ctx context.Context, actor Actor, menuName string) (Data, error)
}

// ActionExecutor runs the action strings attached to a clicked slot. The
// engine produces action lists and hands them to the caller; only the caller
// executes them.
type ActionExecutor interface {
	Execute(actor Actor, actions []string) error
}

// StaticAuthorizer is a fixed capability set, used by tests and the CLI's
// offline render mode.
type StaticAuthorizer struct {
	Capabilities map[string]bool
	Groups       []string
}

func (a StaticAuthorizer) HasCapability(_ Actor, capability string) bool {
	return a.Capabilities[capability]
}

func (a StaticAuthorizer) GroupsOf(Actor) []string { return a.Groups }
