package screen

// NewScreenSize adapts every window to a backend of height x width cells
// and redraws the screen. Sizes below one cell are ignored.
func (s *Session) NewScreenSize(height, width int) error {
	if !s.open {
		return ErrNotOpen
	}
	if height < 1 || width < 1 {
		return nil
	}

	for _, i := range s.set.Resize(height, width) {
		s.wrappers[i].SetWidth(s.set.Get(i).TextWidth())
	}
	s.upper.resize(width)

	s.log.Debug("screen resized", "height", height, "width", width,
		"lower", s.set.Get(0).Height)
	return s.RefreshScreen()
}

// checkResize follows a resize left over from an interrupted pause.
func (s *Session) checkResize() error {
	if !s.winchFound {
		return nil
	}
	height, width := s.be.Size()
	err := s.NewScreenSize(height, width)
	s.winchFound = false
	return err
}
