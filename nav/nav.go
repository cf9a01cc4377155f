// Package nav holds the dashboard's page state.
package nav

import (
	"strings"
	"sync"

	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
)

// Page is one of the dashboard views.
type Page int

// Pages, in sidebar order.
const (
	Introduction Page = iota
	EDA
	Prediction
	Conclusion
)

var pageNames = [...]string{"Introduction", "EDA", "Prediction", "Conclusion"}

// Pages lists every page in sidebar order.
func Pages() []Page {
	return []Page{Introduction, EDA, Prediction, Conclusion}
}

func (p Page) String() string {
	if p < Introduction || p > Conclusion {
		return "Unknown"
	}
	return pageNames[p]
}

// Slug is the page's URL path segment.
func (p Page) Slug() string {
	return strings.ToLower(p.String())
}

// ParsePage accepts a page name or slug, case-insensitively.
func ParsePage(name string) (Page, error) {
	for _, p := range Pages() {
		if strings.EqualFold(name, p.String()) {
			return p, nil
		}
	}
	return Introduction, kcalErrors.NewValueError("nav.ParsePage", "unknown page "+name)
}

// Controller tracks the page one session is looking at. The zero value is
// a controller on Introduction.
type Controller struct {
	mu      sync.Mutex
	current Page
}

// NewController returns a controller on Introduction.
func NewController() *Controller {
	return &Controller{current: Introduction}
}

// Current returns the selected page.
func (c *Controller) Current() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Select moves to p. Any page is reachable from any other.
func (c *Controller) Select(p Page) error {
	if p < Introduction || p > Conclusion {
		return kcalErrors.NewValueError("Controller.Select", "unknown page")
	}
	c.mu.Lock()
	c.current = p
	c.mu.Unlock()
	return nil
}

// SelectName parses name and selects it. An unknown name leaves the
// controller where it was.
func (c *Controller) SelectName(name string) (Page, error) {
	p, err := ParsePage(name)
	if err != nil {
		return c.Current(), err
	}
	return p, c.Select(p)
}
