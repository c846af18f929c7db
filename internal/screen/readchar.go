package screen

import (
	"errors"

	"github.com/Gaurav-Gosain/monoscreen/internal/backend"
)

// Codes ReadChar returns for keys without a printable rune.
const (
	CharStop      rune = 0
	CharBackspace rune = 8
	CharNewline   rune = '\n'
	CharDelete    rune = 127
	CharUp        rune = 129
	CharDown      rune = 130
	CharLeft      rune = 131
	CharRight     rune = 132
)

// CharRequest describes one ReadChar call.
type CharRequest struct {
	TenthSeconds int
	Verify       VerifyFunc
}

// ReadChar waits for a single key. Paging keys scroll the lower window and
// are not returned. CharStop is returned when the verification routine ends
// the read, together with ErrQuit when it asked for a quit.
func (s *Session) ReadChar(req CharRequest) (rune, error) {
	if err := s.prepareRead(); err != nil {
		return CharStop, err
	}
	defer s.dropCursor()
	if err := s.checkResize(); err != nil {
		return CharStop, err
	}

	timeout, timed := s.readTimeout(req.TenthSeconds, req.Verify)

	w := s.set.Get(s.active)
	s.applyOutputColours(w)
	s.applyOutputStyle(w)
	s.gotoCursor(w)
	s.be.Update()

	tenths := 0
	for {
		ev, err := s.be.NextEvent(timeout)
		if err != nil {
			return CharStop, err
		}

		switch ev.Type {
		case backend.EventPageUp, backend.EventPageDown:
			if err := s.page(ev.Type); err != nil {
				return CharStop, err
			}
			continue
		case backend.EventTimeout:
			if !timed {
				continue
			}
			tenths++
			if tenths != req.TenthSeconds {
				continue
			}
			tenths = 0
			stop, verr := req.Verify()
			if errors.Is(verr, ErrQuit) {
				return CharStop, ErrQuit
			}
			if verr != nil {
				return CharStop, verr
			}
			if stop {
				return CharStop, nil
			}
			continue
		}

		if err := s.leaveScrollback(); err != nil {
			return CharStop, err
		}

		switch ev.Type {
		case backend.EventInput:
			switch ev.Rune {
			case '\r', '\n':
				return CharNewline, nil
			case ctrlL:
				if err := s.RefreshScreen(); err != nil {
					return CharStop, err
				}
			case ctrlR:
				// Ctrl-R is reserved for a forced resize while reading a line.
			default:
				return ev.Rune, nil
			}
		case backend.EventUp:
			return CharUp, nil
		case backend.EventDown:
			return CharDown, nil
		case backend.EventLeft:
			return CharLeft, nil
		case backend.EventRight:
			return CharRight, nil
		case backend.EventBackspace:
			return CharBackspace, nil
		case backend.EventDelete:
			return CharDelete, nil
		case backend.EventResize:
			height, width := s.be.Size()
			if err := s.NewScreenSize(height, width); err != nil {
				return CharStop, err
			}
		}
	}
}
