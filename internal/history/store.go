package history

import (
	"strings"

	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

// DefaultMaxParagraphs is used when a store is created without a limit.
const DefaultMaxParagraphs = 10000

type itemKind int

const (
	itemText itemKind = iota
	itemStyle
	itemColour
)

type item struct {
	kind   itemKind
	text   string
	style  style.Style
	fg, bg style.Colour
}

type paragraph struct {
	items      []item
	terminated bool
}

func (p *paragraph) replay(t Target, paint bool) {
	for _, it := range p.items {
		switch it.kind {
		case itemText:
			t.Output(it.text)
		case itemStyle:
			if paint {
				t.SetTextStyle(it.style)
			}
		case itemColour:
			if paint {
				t.SetColour(it.fg, it.bg)
			}
		}
	}
}

func (p *paragraph) text() string {
	var sb strings.Builder
	for _, it := range p.items {
		if it.kind == itemText {
			sb.WriteString(it.text)
		}
	}
	return sb.String()
}

// Store is an in-memory paragraph log backed by a ring buffer. When the ring
// is full the oldest paragraph is overwritten.
type Store struct {
	paragraphs    []*paragraph
	maxParagraphs int
	// head is the index of the oldest paragraph in the ring
	head int
	// tail is the index where the next paragraph will be inserted
	tail int
	full bool

	// open is set while the newest paragraph has not seen its newline.
	open bool
	// lead holds metadata recorded while no paragraph was open.
	lead []item

	generation uint64
}

// NewStore creates a log holding at most maxParagraphs paragraphs. If
// maxParagraphs is 0 or negative, DefaultMaxParagraphs is used.
func NewStore(maxParagraphs int) *Store {
	if maxParagraphs <= 0 {
		maxParagraphs = DefaultMaxParagraphs
	}
	return &Store{
		paragraphs:    make([]*paragraph, maxParagraphs),
		maxParagraphs: maxParagraphs,
	}
}

// Append records text. Every newline terminates the current paragraph.
func (s *Store) Append(text string) {
	if text == "" {
		return
	}
	s.generation++

	for {
		nl := strings.IndexByte(text, '\n')
		segment := text
		if nl >= 0 {
			segment = text[:nl]
		}

		p := s.current()
		if segment != "" {
			p.items = append(p.items, item{kind: itemText, text: segment})
		}
		if nl < 0 {
			return
		}
		p.terminated = true
		s.open = false
		text = text[nl+1:]
		if text == "" {
			return
		}
	}
}

// Output implements Target so a host can mirror its output into the log.
func (s *Store) Output(text string) {
	s.Append(text)
}

// SetTextStyle records a style change at the current position.
func (s *Store) SetTextStyle(st style.Style) {
	s.record(item{kind: itemStyle, style: st})
}

// SetColour records a colour change at the current position.
func (s *Store) SetColour(fg, bg style.Colour) {
	s.record(item{kind: itemColour, fg: fg, bg: bg})
}

func (s *Store) record(it item) {
	s.generation++
	if s.open {
		p := s.at(s.Len() - 1)
		p.items = append(p.items, it)
		return
	}
	s.lead = append(s.lead, it)
}

// current returns the open paragraph, starting a new one if needed.
func (s *Store) current() *paragraph {
	if s.open {
		return s.at(s.Len() - 1)
	}
	p := &paragraph{items: s.lead}
	s.lead = nil
	s.push(p)
	s.open = true
	return p
}

func (s *Store) push(p *paragraph) {
	s.paragraphs[s.tail] = p
	s.tail = (s.tail + 1) % s.maxParagraphs
	if s.full {
		s.head = (s.head + 1) % s.maxParagraphs
	}
	if s.tail == s.head {
		s.full = true
	}
}

func (s *Store) at(index int) *paragraph {
	return s.paragraphs[(s.head+index)%s.maxParagraphs]
}

// Len returns the number of paragraphs, counting an unterminated newest one.
func (s *Store) Len() int {
	if s.full {
		return s.maxParagraphs
	}
	if s.tail >= s.head {
		return s.tail - s.head
	}
	return s.maxParagraphs - s.head + s.tail
}

// Text returns the text of paragraph index, oldest first, without its
// newline. It returns "" for an index out of range.
func (s *Store) Text(index int) string {
	if index < 0 || index >= s.Len() {
		return ""
	}
	return s.at(index).text()
}

// Terminated reports whether paragraph index ended with a newline.
func (s *Store) Terminated(index int) bool {
	if index < 0 || index >= s.Len() {
		return false
	}
	return s.at(index).terminated
}

// MaxParagraphs returns the ring capacity.
func (s *Store) MaxParagraphs() int {
	return s.maxParagraphs
}

// SetMaxParagraphs changes the capacity, keeping the newest paragraphs.
func (s *Store) SetMaxParagraphs(maxParagraphs int) {
	if maxParagraphs <= 0 {
		maxParagraphs = DefaultMaxParagraphs
	}
	if maxParagraphs == s.maxParagraphs {
		return
	}

	oldLen := s.Len()
	newLen := min(oldLen, maxParagraphs)
	kept := make([]*paragraph, maxParagraphs)
	for i := range newLen {
		kept[i] = s.at(oldLen - newLen + i)
	}

	s.paragraphs = kept
	s.maxParagraphs = maxParagraphs
	s.head = 0
	s.tail = newLen % maxParagraphs
	s.full = newLen == maxParagraphs
	if newLen == 0 {
		s.open = false
	}
	s.generation++
}

// Clear removes every paragraph.
func (s *Store) Clear() {
	for i := range s.paragraphs {
		s.paragraphs[i] = nil
	}
	s.head, s.tail = 0, 0
	s.full = false
	s.open = false
	s.lead = nil
	s.generation++
}

// NewCursor returns a cursor at the newest edge.
func (s *Store) NewCursor() Cursor {
	return &storeCursor{store: s, index: s.Len(), generation: s.generation}
}

type storeCursor struct {
	store      *Store
	index      int
	generation uint64
	closed     bool
}

func (c *storeCursor) valid() error {
	if c.closed || c.generation != c.store.generation {
		return ErrStale
	}
	return nil
}

func (c *storeCursor) Rewind() (bool, error) {
	if err := c.valid(); err != nil {
		return false, err
	}
	if c.index == 0 {
		return false, ErrStart
	}
	c.index--
	return c.store.at(c.index).terminated, nil
}

func (c *storeCursor) Repeat(t Target, count int, advance, paint bool) error {
	if err := c.valid(); err != nil {
		return err
	}

	k := c.index
	n := c.store.Len()
	var err error
	for range count {
		if k >= n {
			err = ErrEnd
			break
		}
		p := c.store.at(k)
		p.replay(t, paint)
		k++
		if !p.terminated {
			err = ErrEnd
			break
		}
	}

	if advance {
		c.index = k
	}
	return err
}

func (c *storeCursor) AtNewest() bool {
	return c.index >= c.store.Len()
}

func (c *storeCursor) Close() {
	c.closed = true
}
