package core

// DrawOverlay draws a boxed message centered on the screen. The first line
// is the title; the rest follow after a blank row.
func (s *Screen) DrawOverlay(c Color, lines ...string) {
	if len(lines) == 0 {
		return
	}
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 3
	if len(lines) == 1 {
		boxH = 3
	}
	box := NewRect((s.width-boxW)/2, (s.height-boxH)/2, boxW, boxH)

	s.DrawRect(NewRect(box.X+1, box.Y+1, box.W-2, box.H-2), ' ')
	s.DrawBoxColored(box, c)

	s.DrawTextCenteredColored(box.Y+1, lines[0], c)
	for i, l := range lines[1:] {
		s.DrawTextCentered(box.Y+3+i, l)
	}
}

// DrawHUD writes a status line on row 0 and a separator on row 1.
func (s *Screen) DrawHUD(text string, c Color) {
	s.DrawTextColored(0, 0, text, c)
	for x := range s.width {
		s.SetColored(x, 1, '─', ColorDarkGray)
	}
}
