// Package surface holds the read-only projection of the board that clients render.
// The engine writes to it; transports read views from it and never feed them back.
package surface

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

const (
	ColorHumanWin    = "#66CC66"
	ColorComputerWin = "#ef5959"

	// DecorationActive is the label style of the player whose move is awaited.
	DecorationActive = "bold underline"

	subscriberBuffer = 4
)

type View struct {
	Cells       [entity.BoardSize]string   `json:"cells"`
	Highlights  [entity.BoardSize]string   `json:"highlights"`
	Decorations map[entity.Identity]string `json:"decorations"`
}

type subscriber struct {
	ch        chan View
	closeOnce sync.Once
}

func (that *subscriber) close() {
	that.closeOnce.Do(func() { close(that.ch) })
}

type Projection struct {
	mu sync.Mutex

	cells      [entity.BoardSize]entity.Mark
	highlights [entity.BoardSize]entity.Highlight
	active     map[entity.Identity]bool

	subs map[*subscriber]struct{}
}

func New() *Projection {
	return &Projection{
		active: make(map[entity.Identity]bool),
		subs:   make(map[*subscriber]struct{}),
	}
}

func (that *Projection) SetCellText(index int, mark entity.Mark) {
	if !validIndex(index) {
		return
	}

	that.mu.Lock()
	that.cells[index] = mark
	that.publishLocked()
	that.mu.Unlock()
}

func (that *Projection) SetCellHighlight(index int, highlight entity.Highlight) {
	if !validIndex(index) {
		return
	}

	that.mu.Lock()
	that.highlights[index] = highlight
	that.publishLocked()
	that.mu.Unlock()
}

func (that *Projection) SetActivePlayerDecoration(identity entity.Identity, active bool) {
	that.mu.Lock()
	that.active[identity] = active
	that.publishLocked()
	that.mu.Unlock()
}

func (that *Projection) CellText(index int) string {
	if !validIndex(index) {
		return ""
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return that.cells[index].String()
}

func (that *Projection) CellHighlight(index int) string {
	if !validIndex(index) {
		return ""
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return highlightColor(that.highlights[index])
}

// ActivePlayerDecoration returns the decoration of identity's label, empty when not active.
func (that *Projection) ActivePlayerDecoration(identity entity.Identity) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return decoration(that.active[identity])
}

func (that *Projection) View() View {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.viewLocked()
}

// Subscribe streams a view after every change. The channel is closed by the returned
// func or when ctx ends. A subscriber that falls behind misses intermediate views.
func (that *Projection) Subscribe(ctx context.Context) (<-chan View, func()) {
	sub := &subscriber{ch: make(chan View, subscriberBuffer)}

	that.mu.Lock()
	that.subs[sub] = struct{}{}
	that.mu.Unlock()

	var unsubOnce sync.Once
	unsubscribe := func() {
		unsubOnce.Do(func() {
			that.mu.Lock()
			delete(that.subs, sub)
			that.mu.Unlock()
			sub.close()
		})
	}

	go func() {
		<-ctx.Done()
		unsubscribe()
	}()

	return sub.ch, unsubscribe
}

func (that *Projection) publishLocked() {
	if len(that.subs) == 0 {
		return
	}

	view := that.viewLocked()
	for sub := range that.subs {
		select {
		case sub.ch <- view:
		default:
		}
	}
}

func (that *Projection) viewLocked() View {
	view := View{
		Decorations: map[entity.Identity]string{
			entity.Human:    decoration(that.active[entity.Human]),
			entity.Computer: decoration(that.active[entity.Computer]),
		},
	}

	for i := range that.cells {
		view.Cells[i] = that.cells[i].String()
		view.Highlights[i] = highlightColor(that.highlights[i])
	}

	return view
}

func highlightColor(highlight entity.Highlight) string {
	switch highlight {
	case entity.HighlightHumanWin:
		return ColorHumanWin
	case entity.HighlightComputerWin:
		return ColorComputerWin
	default:
		return ""
	}
}

func decoration(active bool) string {
	if active {
		return DecorationActive
	}
	return ""
}

func validIndex(index int) bool {
	return index >= 0 && index < entity.BoardSize
}
