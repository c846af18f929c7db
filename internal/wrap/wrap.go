// Package wrap implements the streaming word-wrap pipeline that turns a run
// of text into physical rows.
//
// A Wrapper buffers text until the position of the next row break is known.
// Completed rows are handed to the output function terminated by '\n'; the
// trailing partial row stays pending until more text arrives or Flush is
// called. Style and colour changes are queued as metadata callbacks pinned to
// the offset in the pending text where they take effect, so they reach the
// output exactly between the glyphs they separate.
package wrap

import (
	"github.com/Gaurav-Gosain/monoscreen/internal/pool"
)

// SoftHyphen marks an optional break point inside a word.
const SoftHyphen = '\u00ad'

// Output receives emitted text. A row ends with '\n'.
type Output func(text string)

type mark struct {
	at int
	fn func()
}

// Wrapper is the per-window wrap state.
type Wrapper struct {
	width     int
	hyphenate bool
	out       Output

	pending []rune
	marks   []mark
	// index is the number of columns already emitted on the current row.
	index int
}

// New returns a wrapper breaking rows at width columns.
func New(width int, hyphenate bool, out Output) *Wrapper {
	return &Wrapper{
		width:     max(width, 1),
		hyphenate: hyphenate,
		out:       out,
	}
}

// Width returns the configured row width.
func (w *Wrapper) Width() int { return w.width }

// SetWidth changes the row width for text not yet emitted.
func (w *Wrapper) SetWidth(width int) {
	w.width = max(width, 1)
}

// SetHyphenation toggles hyphenation for text not yet emitted.
func (w *Wrapper) SetHyphenation(enabled bool) {
	w.hyphenate = enabled
}

// LineIndex returns the columns already used on the current row.
func (w *Wrapper) LineIndex() int { return w.index }

// SetLineIndex tells the wrapper how many columns of the current row are
// already occupied, for example by an input line or a replayed paragraph.
func (w *Wrapper) SetLineIndex(index int) {
	w.index = max(index, 0)
}

// Pending reports whether text or metadata is buffered.
func (w *Wrapper) Pending() bool {
	return len(w.pending) > 0 || len(w.marks) > 0
}

// Wrap appends text and emits every row whose break is decided.
func (w *Wrapper) Wrap(text string) {
	if text == "" {
		return
	}
	for _, r := range text {
		w.pending = append(w.pending, r)
	}
	w.breakRows()
}

// InsertMetadata queues fn at the current end of the pending text. With
// nothing pending it runs immediately.
func (w *Wrapper) InsertMetadata(fn func()) {
	if len(w.pending) == 0 {
		fn()
		return
	}
	w.marks = append(w.marks, mark{at: len(w.pending), fn: fn})
}

// Flush emits all pending text without a row break.
func (w *Wrapper) Flush() {
	n := len(w.pending)
	used := Columns(w.pending)
	w.emit(n, 0, "")
	w.index += used
}

// Reset drops pending text and metadata without emitting them.
func (w *Wrapper) Reset() {
	w.pending = w.pending[:0]
	w.marks = w.marks[:0]
	w.index = 0
}

func (w *Wrapper) breakRows() {
	for len(w.pending) > 0 {
		avail := w.width - w.index

		nl := -1
		for i, r := range w.pending {
			if r == '\n' {
				nl = i
				break
			}
		}

		seg := w.pending
		if nl >= 0 {
			seg = w.pending[:nl]
		}

		if Columns(seg) <= avail {
			if nl < 0 {
				return
			}
			w.emit(nl, 1, "\n")
			w.index = 0
			continue
		}

		cut, drop, suffix := w.findBreak(seg, avail)
		w.emit(cut, drop, suffix)
		w.index = 0
	}
}

// findBreak decides where a segment too wide for the rest of the row is cut.
// It returns the number of runes to emit, the runes dropped after them, and
// the text closing the row.
func (w *Wrapper) findBreak(seg []rune, avail int) (cut, drop int, suffix string) {
	cut = -1
	col := 0
	for i, r := range seg {
		switch {
		case r == ' ' && col <= avail:
			cut, drop, suffix = i, 1, "\n"
		case r == SoftHyphen && w.hyphenate && col+1 <= avail:
			cut, drop, suffix = i, 1, "-\n"
		}
		col += runeColumns(r)
		if col > avail {
			break
		}
	}
	if cut >= 0 {
		return cut, drop, suffix
	}

	// Nothing fits: move the word to a fresh row, or cut it when it is wider
	// than a whole row.
	if w.index > 0 {
		return 0, 0, "\n"
	}
	if w.hyphenate && avail >= 2 {
		return max(Fit(seg, avail-1), 1), 0, "-\n"
	}
	return max(Fit(seg, avail), 1), 0, "\n"
}

// emit outputs the first n pending runes, running queued metadata at its
// offset, then suffix, and finally discards drop further runes. The consumed
// runes leave the buffer before any output, so a Flush from inside the output
// function sees only the rest.
func (w *Wrapper) emit(n, drop int, suffix string) {
	consumed := n + drop

	head := pool.GetRuneSlice()
	defer pool.PutRuneSlice(head)
	*head = append(*head, w.pending[:n]...)

	split := len(w.marks)
	for i, m := range w.marks {
		if m.at > consumed {
			split = i
			break
		}
	}
	due := append([]mark(nil), w.marks[:split]...)
	rest := w.marks[:0]
	for _, m := range w.marks[split:] {
		m.at -= consumed
		rest = append(rest, m)
	}
	w.marks = rest
	w.pending = append(w.pending[:0], w.pending[consumed:]...)

	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)
	flush := func() {
		if sb.Len() > 0 {
			w.out(sb.String())
			sb.Reset()
		}
	}

	pos, mi := 0, 0
	for ; mi < len(due) && due[mi].at <= n; mi++ {
		m := due[mi]
		writeRunes(sb, (*head)[pos:m.at])
		pos = m.at
		flush()
		m.fn()
	}
	writeRunes(sb, (*head)[pos:])
	sb.WriteString(suffix)
	flush()

	for ; mi < len(due); mi++ {
		due[mi].fn()
	}
}

func writeRunes(sb interface{ WriteRune(rune) (int, error) }, rs []rune) {
	for _, r := range rs {
		if r != SoftHyphen {
			_, _ = sb.WriteRune(r)
		}
	}
}
