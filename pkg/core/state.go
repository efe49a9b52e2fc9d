package core

// State is a snapshot of the whole application state: the board collection in
// creation order, the active-board pointer, and the global text style. It is
// what the persistence layer reads and writes; the Collection owns the live
// version.
type State struct {
	Boards        []Board   `json:"boards" yaml:"boards"`
	ActiveBoardID string    `json:"activeBoardId" yaml:"activeBoardId"`
	Style         TextStyle `json:"style" yaml:"style"`
}

// Clone returns a deep copy of the snapshot.
func (s State) Clone() State {
	out := s
	if s.Boards != nil {
		out.Boards = make([]Board, len(s.Boards))
		for i, b := range s.Boards {
			out.Boards[i] = b.clone()
		}
	}
	return out
}

// ChangeKind classifies a mutation for the flush scheduler: board and style
// changes are debounced, active-pointer changes flush immediately.
type ChangeKind int

const (
	// ChangeBoards covers any mutation of the board collection or one of its
	// boards (create, delete, field updates, media add/remove).
	ChangeBoards ChangeKind = iota
	// ChangeActive covers mutations of the active-board pointer.
	ChangeActive
	// ChangeStyle covers mutations of the global text style.
	ChangeStyle
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeBoards:
		return "boards"
	case ChangeActive:
		return "active"
	case ChangeStyle:
		return "style"
	}
	return "unknown"
}

// Persisted record keys. The durable stores hold three independent records.
const (
	KeyBoards    = "boards"
	KeyActive    = "active-board-id"
	KeyTextStyle = "text-style"
)
