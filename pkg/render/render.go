// Package render provides the text-grid draw primitives screens use. The
// panel is a fixed character grid: a title row, content rows, and a status
// row. Draw calls are not synchronized; only the main loop may call them.
package render

import (
	"github.com/gdamore/tcell/v2"
)

// Panel geometry, matching the handheld's 30x8 text grid
const (
	Cols       = 30
	Rows       = 8
	TitleRow   = 0
	StatusRow  = Rows - 1
	ContentTop = 1
)

// Style selects one of the panel's fixed color classes
type Style int

const (
	StyleText Style = iota
	StyleTitle
	StyleHighlight
	StyleDimmed
	StyleBorder
	StyleSuccess
)

// Surface is the draw-primitive port screens render through
type Surface interface {
	// Clear erases the whole panel
	Clear()
	// Title draws the title row
	Title(text string)
	// Print draws text at a column/row, clipped to the panel width
	Print(col, row int, text string, style Style)
	// PrintCentered draws text horizontally centered on a row
	PrintCentered(row int, text string, style Style)
	// Status draws the status/help bar on the bottom row
	Status(text string)
	// MenuItem draws one selectable row with selection and check markers
	MenuItem(row int, label string, selected, enabled, checked bool)
	// Size returns the panel dimensions in characters
	Size() (cols, rows int)
	// Flush makes all drawing since the last flush visible
	Flush()
}

// TcellSurface renders the panel centered on a tcell screen with a box
// border around it.
type TcellSurface struct {
	screen tcell.Screen
	x, y   int
}

// NewTcellSurface creates a surface on an initialized tcell screen
func NewTcellSurface(screen tcell.Screen) *TcellSurface {
	s := &TcellSurface{screen: screen}
	s.reposition()
	return s
}

// reposition centers the panel for the current terminal size
func (s *TcellSurface) reposition() {
	w, h := s.screen.Size()
	s.x = (w - Cols - 2) / 2
	s.y = (h - Rows - 2) / 2
	if s.x < 0 {
		s.x = 0
	}
	if s.y < 0 {
		s.y = 0
	}
}

// Resize recenters the panel after a terminal resize event
func (s *TcellSurface) Resize() {
	s.screen.Clear()
	s.reposition()
	s.drawBorder()
}

func styleFor(st Style) tcell.Style {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	switch st {
	case StyleTitle:
		return base.Foreground(tcell.ColorYellow).Bold(true)
	case StyleHighlight:
		return base.Foreground(tcell.ColorWhite).Bold(true)
	case StyleDimmed:
		return base.Foreground(tcell.ColorGray)
	case StyleBorder:
		return base.Foreground(tcell.ColorRed)
	case StyleSuccess:
		return base.Foreground(tcell.ColorGreen)
	default:
		return base.Foreground(tcell.ColorSilver)
	}
}

// Clear erases the panel interior and redraws the border
func (s *TcellSurface) Clear() {
	fill := styleFor(StyleText)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			s.screen.SetContent(s.x+1+col, s.y+1+row, ' ', nil, fill)
		}
	}
	s.drawBorder()
}

func (s *TcellSurface) drawBorder() {
	style := styleFor(StyleBorder)

	s.screen.SetContent(s.x, s.y, '┌', nil, style)
	s.screen.SetContent(s.x+Cols+1, s.y, '┐', nil, style)
	s.screen.SetContent(s.x, s.y+Rows+1, '└', nil, style)
	s.screen.SetContent(s.x+Cols+1, s.y+Rows+1, '┘', nil, style)
	for col := 1; col <= Cols; col++ {
		s.screen.SetContent(s.x+col, s.y, '─', nil, style)
		s.screen.SetContent(s.x+col, s.y+Rows+1, '─', nil, style)
	}
	for row := 1; row <= Rows; row++ {
		s.screen.SetContent(s.x, s.y+row, '│', nil, style)
		s.screen.SetContent(s.x+Cols+1, s.y+row, '│', nil, style)
	}
}

// Title draws the title row centered in the title style
func (s *TcellSurface) Title(text string) {
	s.PrintCentered(TitleRow, text, StyleTitle)
}

// Print draws text clipped to the panel width
func (s *TcellSurface) Print(col, row int, text string, style Style) {
	if row < 0 || row >= Rows {
		return
	}
	st := styleFor(style)
	for i, ch := range text {
		if col+i >= Cols {
			break
		}
		if col+i < 0 {
			continue
		}
		s.screen.SetContent(s.x+1+col+i, s.y+1+row, ch, nil, st)
	}
}

// PrintCentered draws text horizontally centered on a row
func (s *TcellSurface) PrintCentered(row int, text string, style Style) {
	col := (Cols - len(text)) / 2
	if col < 0 {
		col = 0
	}
	s.Print(col, row, text, style)
}

// Status draws the bottom help bar in the dimmed style
func (s *TcellSurface) Status(text string) {
	s.Print(0, StatusRow, text, StyleDimmed)
}

// MenuItem draws one selectable row: a '>' cursor for the selection and a
// '*' marker for the currently applied option.
func (s *TcellSurface) MenuItem(row int, label string, selected, enabled, checked bool) {
	style := StyleText
	if !enabled {
		style = StyleDimmed
	} else if selected {
		style = StyleHighlight
	}

	cursor := "  "
	if selected {
		cursor = "> "
	}
	mark := " "
	if checked {
		mark = "*"
	}

	s.Print(0, row, cursor+label, style)
	s.Print(Cols-2, row, mark, style)
}

// Size returns the panel dimensions
func (s *TcellSurface) Size() (int, int) {
	return Cols, Rows
}

// Flush pushes the buffered drawing to the terminal
func (s *TcellSurface) Flush() {
	s.screen.Show()
}
