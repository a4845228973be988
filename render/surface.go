// Package render draws shaped charts onto the named regions of a dashboard.
package render

import (
	"errors"
	"fmt"
	"sync"

	"edaboard/api/models"
)

var (
	ErrUnknownRegion = errors.New("unknown region")
	ErrRegionDrawn   = errors.New("region already drawn")
)

// Drawing is the output of one render call for one region.
type Drawing struct {
	Region      string
	Kind        models.ChartKind
	ContentType string
	Content     []byte
}

// Surface is the set of named regions of one dashboard run. Every region is
// drawn at most once, by the visualization that owns it.
type Surface struct {
	mu       sync.Mutex
	order    []string
	drawings map[string]*Drawing
}

func NewSurface(regions ...string) *Surface {
	s := &Surface{drawings: make(map[string]*Drawing, len(regions))}
	for _, r := range regions {
		if _, dup := s.drawings[r]; dup {
			continue
		}
		s.order = append(s.order, r)
		s.drawings[r] = nil
	}
	return s
}

func (s *Surface) Draw(d Drawing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.drawings[d.Region]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRegion, d.Region)
	}
	if existing != nil {
		return fmt.Errorf("%w: %q", ErrRegionDrawn, d.Region)
	}
	s.drawings[d.Region] = &d
	return nil
}

// Get returns the drawing of a region, if it has been drawn.
func (s *Surface) Get(region string) (Drawing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.drawings[region]
	if d == nil {
		return Drawing{}, false
	}
	return *d, true
}

// Regions lists every declared region in declaration order.
func (s *Surface) Regions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// Drawings lists the drawn regions in declaration order.
func (s *Surface) Drawings() []Drawing {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Drawing, 0, len(s.order))
	for _, r := range s.order {
		if d := s.drawings[r]; d != nil {
			out = append(out, *d)
		}
	}
	return out
}
