package core

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CollectionConfig holds the injectable policies of a Collection. Every field
// is optional; zero values fall back to production defaults. Tests inject
// deterministic sources.
type CollectionConfig struct {
	// Rand picks a number in [0,n); used for the random board color.
	Rand func(n int) int
	// NewID generates board and media identifiers.
	NewID func() string
	// Now supplies media position timestamps.
	Now func() time.Time
	// OnChange is invoked after every successful mutation, outside the
	// collection lock. The flush scheduler observes mutations through it.
	OnChange func(kind ChangeKind)
}

// Collection owns the in-memory application state: the boards in creation
// order, the active-board pointer, and the global text style. It is the only
// writer of that state; external callers receive copies and must route all
// changes through its operations.
//
// Invariants enforced on every operation:
//   - at least one board exists at all times
//   - the active pointer always resolves to an existing board
type Collection struct {
	mu       sync.RWMutex
	boards   []Board
	activeID string
	style    TextStyle

	rand     func(n int) int
	newID    func() string
	now      func() time.Time
	onChange func(ChangeKind)
}

// NewCollection creates an empty collection and seeds it with one default
// board so the invariants hold from the first read.
func NewCollection(cfg CollectionConfig) *Collection {
	c := &Collection{
		rand:     cfg.Rand,
		newID:    cfg.NewID,
		now:      cfg.Now,
		onChange: cfg.OnChange,
		style:    DefaultTextStyle(),
	}
	if c.rand == nil {
		c.rand = rand.Intn
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.seedLocked()
	return c
}

// notify runs the change hook. Callers must not hold c.mu.
func (c *Collection) notify(kind ChangeKind) {
	if c.onChange != nil {
		c.onChange(kind)
	}
}

// SetOnChange replaces the change hook. Used by the composition root to wire
// the scheduler after the collection has been loaded.
func (c *Collection) SetOnChange(fn func(ChangeKind)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// seedLocked appends a default board and points the active pointer at it.
// Caller must hold c.mu (or own c exclusively during construction).
func (c *Collection) seedLocked() Board {
	b := Board{
		ID:      c.newID(),
		Title:   fmt.Sprintf("Board %d", len(c.boards)+1),
		Content: DefaultBoardContent,
		Color:   Palette[c.rand(len(Palette))],
		Media:   []MediaItem{},
	}
	c.boards = append(c.boards, b)
	c.activeID = b.ID
	return b
}

// repairLocked restores the invariants after a load or a deletion: an empty
// collection is reseeded, and a dangling active pointer is reset to the first
// board. Caller must hold c.mu.
func (c *Collection) repairLocked() {
	if len(c.boards) == 0 {
		c.seedLocked()
		return
	}
	if _, ok := c.indexLocked(c.activeID); !ok {
		c.activeID = c.boards[0].ID
	}
}

func (c *Collection) indexLocked(id string) (int, bool) {
	for i := range c.boards {
		if c.boards[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// NewBoard appends a freshly created board and makes it active. It always
// succeeds and returns a copy of the new board.
func (c *Collection) NewBoard() Board {
	c.mu.Lock()
	b := c.seedLocked()
	c.mu.Unlock()

	c.notify(ChangeBoards)
	c.notify(ChangeActive)
	return b.clone()
}

// Remove deletes the board with the given id. Deleting the last remaining
// board, or an unknown id, is a no-op and returns false. If the removed board
// was active, the pointer is reassigned to the first remaining board.
func (c *Collection) Remove(id string) bool {
	c.mu.Lock()
	if len(c.boards) <= 1 {
		c.mu.Unlock()
		return false
	}
	i, ok := c.indexLocked(id)
	if !ok {
		c.mu.Unlock()
		return false
	}
	c.boards = append(c.boards[:i], c.boards[i+1:]...)
	activeMoved := c.activeID == id
	c.repairLocked()
	c.mu.Unlock()

	c.notify(ChangeBoards)
	if activeMoved {
		c.notify(ChangeActive)
	}
	return true
}

// Select moves the active pointer. Unknown ids are rejected as a no-op.
func (c *Collection) Select(id string) bool {
	c.mu.Lock()
	if _, ok := c.indexLocked(id); !ok {
		c.mu.Unlock()
		return false
	}
	changed := c.activeID != id
	c.activeID = id
	c.mu.Unlock()

	if changed {
		c.notify(ChangeActive)
	}
	return true
}

// SetContent replaces the content of one board, leaving every other field and
// board untouched.
func (c *Collection) SetContent(id, content string) bool {
	return c.updateBoard(id, func(b *Board) { b.Content = content })
}

// SetTitle replaces the title of one board.
func (c *Collection) SetTitle(id, title string) bool {
	return c.updateBoard(id, func(b *Board) { b.Title = title })
}

// SetColor assigns a palette color to one board. Colors outside the palette
// are rejected.
func (c *Collection) SetColor(id string, color Color) bool {
	if !ValidColor(color) {
		return false
	}
	return c.updateBoard(id, func(b *Board) { b.Color = color })
}

func (c *Collection) updateBoard(id string, fn func(*Board)) bool {
	c.mu.Lock()
	i, ok := c.indexLocked(id)
	if !ok {
		c.mu.Unlock()
		return false
	}
	fn(&c.boards[i])
	c.mu.Unlock()

	c.notify(ChangeBoards)
	return true
}

// AddMedia appends an attachment to the target board's gallery. A missing
// item id is generated; the position is always assigned here and is strictly
// greater than every prior position on the board, so gallery order is
// deterministic even for items added within the same clock tick. Returns the
// stored item.
func (c *Collection) AddMedia(boardID string, item MediaItem) (MediaItem, bool) {
	c.mu.Lock()
	i, ok := c.indexLocked(boardID)
	if !ok {
		c.mu.Unlock()
		return MediaItem{}, false
	}
	if item.ID == "" {
		item.ID = c.newID()
	}
	item.Position = c.nextPositionLocked(&c.boards[i])
	c.boards[i].Media = append(c.boards[i].Media, item)
	c.mu.Unlock()

	c.notify(ChangeBoards)
	return item, true
}

// nextPositionLocked returns a monotonic position for the board: the current
// clock, bumped past the last media position when the clock has not advanced.
func (c *Collection) nextPositionLocked(b *Board) int64 {
	pos := c.now().UnixMilli()
	if n := len(b.Media); n > 0 && pos <= b.Media[n-1].Position {
		pos = b.Media[n-1].Position + 1
	}
	return pos
}

// RemoveMedia filters an attachment out of a board. Unknown board or media
// ids are a no-op.
func (c *Collection) RemoveMedia(boardID, mediaID string) bool {
	removed := false
	ok := c.updateBoard(boardID, func(b *Board) {
		for i := range b.Media {
			if b.Media[i].ID == mediaID {
				b.Media = append(b.Media[:i], b.Media[i+1:]...)
				removed = true
				return
			}
		}
	})
	return ok && removed
}

// SetStyle replaces the global text style.
func (c *Collection) SetStyle(style TextStyle) {
	c.mu.Lock()
	c.style = style
	c.mu.Unlock()

	c.notify(ChangeStyle)
}

// UpdateStyle applies a partial mutation to the global text style.
func (c *Collection) UpdateStyle(fn func(*TextStyle)) {
	c.mu.Lock()
	fn(&c.style)
	c.mu.Unlock()

	c.notify(ChangeStyle)
}

// Style returns the global text style.
func (c *Collection) Style() TextStyle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.style
}

// Boards returns a copy of all boards in creation order.
func (c *Collection) Boards() []Board {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Board, len(c.boards))
	for i, b := range c.boards {
		out[i] = b.clone()
	}
	return out
}

// Board returns a copy of one board.
func (c *Collection) Board(id string) (Board, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i, ok := c.indexLocked(id); ok {
		return c.boards[i].clone(), true
	}
	return Board{}, false
}

// ActiveID returns the id of the active board.
func (c *Collection) ActiveID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeID
}

// Active returns a copy of the active board.
func (c *Collection) Active() Board {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, _ := c.indexLocked(c.activeID)
	return c.boards[i].clone()
}

// Len returns the number of boards.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.boards)
}

// Snapshot returns a deep copy of the full state for persistence.
func (c *Collection) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := State{
		Boards:        c.boards,
		ActiveBoardID: c.activeID,
		Style:         c.style,
	}
	return s.Clone()
}

// Restore replaces the in-memory state with a loaded snapshot, then repairs
// it: an empty board list is reseeded and a dangling active pointer is reset
// to the first board. It does not notify the scheduler; loading is not a
// mutation.
func (c *Collection) Restore(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s = s.Clone()
	c.boards = s.Boards
	c.activeID = s.ActiveBoardID
	c.style = s.Style
	for i := range c.boards {
		if c.boards[i].Media == nil {
			c.boards[i].Media = []MediaItem{}
		}
	}
	c.repairLocked()
}
