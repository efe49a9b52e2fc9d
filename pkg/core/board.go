package core

// Color references one of the fixed background themes a board can use.
type Color string

// Palette is the fixed set of board background themes. Board creation picks
// one of these at random; callers may only assign colors from this set.
var Palette = []Color{
	ColorSnow,
	ColorLemon,
	ColorMint,
	ColorLavender,
	ColorBlush,
	ColorSky,
}

const (
	ColorSnow     Color = "snow"
	ColorLemon    Color = "lemon"
	ColorMint     Color = "mint"
	ColorLavender Color = "lavender"
	ColorBlush    Color = "blush"
	ColorSky      Color = "sky"
)

// ValidColor reports whether c belongs to the palette.
func ValidColor(c Color) bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}

// MediaKind discriminates the two attachment variants.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaLink  MediaKind = "link"
)

// MediaItem is an attachment embedded in a board. It is exclusively owned by
// its board: removing the board removes its media.
type MediaItem struct {
	ID       string    `json:"id" yaml:"id"`
	Kind     MediaKind `json:"kind" yaml:"kind"`
	URL      string    `json:"url" yaml:"url"`
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Favicon  string    `json:"favicon,omitempty" yaml:"favicon,omitempty"`
	Position int64     `json:"position" yaml:"position"`
}

// Board is a single user note: a writing surface with a background theme and
// an ordered gallery of attached media.
type Board struct {
	ID      string      `json:"id" yaml:"id"`
	Title   string      `json:"title" yaml:"title"`
	Content string      `json:"content" yaml:"content"`
	Color   Color       `json:"color" yaml:"color"`
	Media   []MediaItem `json:"media" yaml:"media"`
}

// clone returns a deep copy so callers never alias collection-owned state.
func (b Board) clone() Board {
	out := b
	if b.Media != nil {
		out.Media = make([]MediaItem, len(b.Media))
		copy(out.Media, b.Media)
	}
	return out
}

// Alignment is the horizontal alignment of the writing surface.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// ValidAlignment reports whether a is one of the fixed alignments.
func ValidAlignment(a Alignment) bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

// FontSizes is the enumerated set of selectable font sizes.
var FontSizes = []int{14, 16, 18, 20, 24, 28, 32}

// FontFamilies is the enumerated set of selectable font families.
var FontFamilies = []string{"sans", "serif", "mono", "hand"}

// TextColors is the enumerated palette for text color.
var TextColors = []string{"ink", "slate", "crimson", "forest", "navy"}

// ValidFontSize reports whether size belongs to FontSizes.
func ValidFontSize(size int) bool {
	for _, s := range FontSizes {
		if s == size {
			return true
		}
	}
	return false
}

// ValidFontFamily reports whether family belongs to FontFamilies.
func ValidFontFamily(family string) bool {
	for _, f := range FontFamilies {
		if f == family {
			return true
		}
	}
	return false
}

// ValidTextColor reports whether color belongs to TextColors.
func ValidTextColor(color string) bool {
	for _, c := range TextColors {
		if c == color {
			return true
		}
	}
	return false
}

// TextStyle is the global presentation preference for the active writing
// surface. It is not per-board and is persisted independently of boards.
type TextStyle struct {
	FontSize   int       `json:"fontSize" yaml:"fontSize"`
	FontFamily string    `json:"fontFamily" yaml:"fontFamily"`
	Align      Alignment `json:"align" yaml:"align"`
	Bold       bool      `json:"bold" yaml:"bold"`
	Italic     bool      `json:"italic" yaml:"italic"`
	Underline  bool      `json:"underline" yaml:"underline"`
	Color      string    `json:"color" yaml:"color"`
}

// DefaultTextStyle is the built-in style used when nothing has been persisted.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontSize:   16,
		FontFamily: "sans",
		Align:      AlignLeft,
		Color:      "ink",
	}
}

// DefaultBoardContent is the placeholder text a freshly created board starts
// with.
const DefaultBoardContent = "Start writing..."
