package menu

import (
	"context"
	"fmt"

	"github.com/bz888/nopickles/internal/logger"
)

// Fetcher reads the current menu from the server.
type Fetcher interface {
	FetchMenu(ctx context.Context) (Menu, error)
}

// View renders menu entries. The terminal UI implements it.
type View interface {
	ClearMenu()
	AddMenuItem(name, price string)
}

// LoadError reports a menu that could not be fetched or decoded.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load menu: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load fetches the menu once and renders one block per entry. On failure the
// error is logged, the view is left untouched and a *LoadError is returned.
func Load(ctx context.Context, f Fetcher, v View) error {
	localLogger := logger.NewLogger("menu")

	m, err := f.FetchMenu(ctx)
	if err != nil {
		localLogger.Error("Error loading menu: ", err)
		return &LoadError{Err: err}
	}

	v.ClearMenu()
	for _, e := range m.Prices {
		v.AddMenuItem(e.Name, FormatPrice(e.Price))
	}
	localLogger.Info("Menu loaded: ", len(m.Prices), " items")
	return nil
}
