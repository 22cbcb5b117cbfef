package provider

import (
	"context"
	"fmt"
	"strconv"

	"github.com/postwarps/postwarps/internal/store"
	"github.com/postwarps/postwarps/internal/value"
)

// Menu names served by WarpProvider. They match the bundled menu files.
const (
	MenuOwnWarps    = "warps"
	MenuPublicWarps = "public-warps"
)

// WarpProvider adapts the warp store to the dynamic-data boundary: the
// "warps" menu lists the actor's own warps, "public-warps" lists every
// public one. Row facts feed the content item's templates and conditions.
type WarpProvider struct {
	store store.Store
}

func NewWarpProvider(s store.Store) *WarpProvider {
	return &WarpProvider{store: s}
}

func (p *WarpProvider) Supports(menuName string) bool {
	return menuName == MenuOwnWarps || menuName == MenuPublicWarps
}

func (p *WarpProvider) Fetch(ctx context.Context, actor Actor, menuName string) (Data, error) {
	var (
		warps []store.Warp
		err   error
	)
	switch menuName {
	case MenuOwnWarps:
		warps, err = p.store.ListByOwner(ctx, actor.ID)
	case MenuPublicWarps:
		warps, err = p.store.ListPublic(ctx)
	default:
		return Data{}, fmt.Errorf("warp provider does not serve %s", menuName)
	}
	if err != nil {
		return Data{}, fmt.Errorf("list warps for %s: %w", menuName, err)
	}

	rows := make([]map[string]value.Value, len(warps))
	for i, w := range warps {
		rows[i] = map[string]value.Value{
			"id":     value.OfInt(w.ID),
			"warp":   value.Of(w.Name),
			"owner":  value.Of(w.Owner),
			"world":  value.Of(w.World),
			"x":      value.Of(strconv.FormatFloat(w.X, 'f', 1, 64)),
			"y":      value.Of(strconv.FormatFloat(w.Y, 'f', 1, 64)),
			"z":      value.Of(strconv.FormatFloat(w.Z, 'f', 1, 64)),
			"public": value.OfBool(w.Public),
		}
	}
	return Data{Rows: rows}, nil
}
