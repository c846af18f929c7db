// Package screen implements the text-window engine: output routing through
// the wrap pipeline, the line painter, the scrollback reconciler, the input
// line editor and the status line.
//
// A Session is single-threaded. Every exported method must be called from
// the goroutine that drives the host; the only suspension point is the
// backend's NextEvent.
package screen

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/monoscreen/internal/backend"
	"github.com/Gaurav-Gosain/monoscreen/internal/history"
	"github.com/Gaurav-Gosain/monoscreen/internal/locale"
	"github.com/Gaurav-Gosain/monoscreen/internal/style"
	"github.com/Gaurav-Gosain/monoscreen/internal/window"
	"github.com/Gaurav-Gosain/monoscreen/internal/wrap"
)

// Package-level logger
var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "screen",
		Level:           log.WarnLevel,
	})
}

// SetLogLevel sets the logging level for the screen package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// SetLogOutput redirects the package logger.
func SetLogOutput(l *log.Logger) {
	if l != nil {
		logger = l.WithPrefix("screen")
	}
}

var (
	// ErrNotOpen is returned by operations that need an open session.
	ErrNotOpen = errors.New("screen: session is not open")
	// ErrHistoryDiverged is returned when the paragraph log fails while the
	// replay cursor is away from its newest edge. The window bookkeeping no
	// longer matches the log and the session cannot continue.
	ErrHistoryDiverged = errors.New("screen: history diverged from screen")
	// ErrUnknownConfigKey is returned for configuration keys the engine does
	// not know.
	ErrUnknownConfigKey = errors.New("screen: unknown configuration key")
	// ErrInvalidConfigValue is returned for values that cannot be parsed.
	ErrInvalidConfigValue = errors.New("screen: invalid configuration value")
	// ErrUnsupportedVersion is returned by Open for versions outside 1..8.
	ErrUnsupportedVersion = errors.New("screen: unsupported story version")
	// ErrQuit is returned by a verification routine that asks the
	// interpreter to quit.
	ErrQuit = errors.New("screen: quit requested")
)

// Configuration keys understood by ParseConfig.
const (
	KeyLeftMargin         = "left-margin"
	KeyRightMargin        = "right-margin"
	KeyDisableHyphenation = "disable-hyphenation"
	KeyDisableColor       = "disable-color"
	KeyEnableColor        = "enable-color"
	KeyDisableMorePrompt  = "disable-more-prompt"
)

var configKeys = []string{
	KeyLeftMargin,
	KeyRightMargin,
	KeyDisableHyphenation,
	KeyDisableColor,
	KeyEnableColor,
	KeyDisableMorePrompt,
}

const (
	configTrue  = "true"
	configFalse = "false"
)

// CommandHistory is the read-only view of previously entered commands used
// for recall. Index 0 is the newest command.
type CommandHistory interface {
	Len() int
	Command(i int) string
}

// Options holds the collaborators of a session.
type Options struct {
	// Log is the paragraph log replayed on scrollback and refresh.
	Log history.Log
	// Commands feeds Up/Down recall in ReadLine. May be nil.
	Commands CommandHistory
	// Translator supplies the prompt strings. Defaults to the built-in
	// catalog.
	Translator locale.Translator
	// Logger overrides the package logger.
	Logger *log.Logger
}

// Session is the engine context: the windows of one screen, their wrap
// state, the backend and the replay cursor into the paragraph log.
type Session struct {
	be       backend.Backend
	hist     history.Log
	commands CommandHistory
	tr       locale.Translator
	log      *log.Logger
	id       string

	version  int
	open     bool
	set      *window.Set
	wrappers []*wrap.Wrapper
	active   int

	leftMargin     int
	rightMargin    int
	hyphenate      bool
	colourDisabled bool
	moreDisabled   bool

	usingColour bool
	defaultFg   style.Colour
	defaultBg   style.Colour
	curStyle    style.Style
	curFg       style.Colour
	curBg       style.Colour

	// refreshing suppresses the pacing prompt while history is replayed.
	refreshing bool
	winchFound bool
	// deferred holds a backend error hit inside the painter, which has no
	// error return. It surfaces on the next read.
	deferred       error
	outputOccurred bool

	morePrompt string
	scoreLabel string
	turnsLabel string

	cursor     history.Cursor
	screenLine int
	hitTop     bool
	rightmostX int
	replay     *replayContext

	input  *inputLine
	upper  *retained
	status statusLine
}

// New returns a closed session painting through be.
func New(be backend.Backend, opts Options) *Session {
	s := &Session{
		be:        be,
		hist:      opts.Log,
		commands:  opts.Commands,
		tr:        opts.Translator,
		id:        uuid.NewString(),
		hyphenate: true,
		active:    -1,
	}
	if s.hist == nil {
		s.hist = history.NewStore(history.DefaultMaxParagraphs)
	}
	if s.tr == nil {
		s.tr = locale.Default()
	}
	base := opts.Logger
	if base == nil {
		base = logger
	}
	s.log = base.With("session", s.id)
	return s
}

// ID returns the session identifier used in log records.
func (s *Session) ID() string {
	return s.id
}

// Open allocates the windows for a story of the given version and clears
// the screen.
func (s *Session) Open(version int) error {
	if version < 1 || version > 8 {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	s.version = version
	s.usingColour = version >= 5 && !s.colourDisabled && s.be.ColourAvailable()
	s.defaultFg, s.defaultBg = s.be.DefaultColours()

	height, width := s.be.Size()
	s.set = window.Allocate(version, height, width, window.Defaults{
		Fg:          s.defaultFg,
		Bg:          s.defaultBg,
		LeftMargin:  s.leftMargin,
		RightMargin: s.rightMargin,
	})

	s.wrappers = make([]*wrap.Wrapper, s.set.Len())
	for i, w := range s.set.All() {
		n := i
		s.wrappers[i] = wrap.New(w.TextWidth(), s.hyphenate, func(text string) {
			s.emit(n, text)
		})
	}

	s.active = 0
	s.curStyle = style.Roman
	s.curFg, s.curBg = s.defaultFg, s.defaultBg
	if s.usingColour {
		s.be.SetColour(s.defaultFg, s.defaultBg)
	}
	s.be.ClearArea(1, 1, width, height)

	s.morePrompt = "[" + s.tr.Translate(locale.MorePrompt) + "]"
	s.scoreLabel = s.tr.Translate(locale.Score)
	s.turnsLabel = s.tr.Translate(locale.Turns)

	s.upper = newRetained(width)
	s.status = statusLine{}
	s.dropCursor()
	s.gotoCursor(s.set.Get(s.active))
	s.open = true

	s.log.Debug("session opened", "version", version, "height", height,
		"width", width, "windows", s.set.Len(), "colour", s.usingColour)
	return nil
}

// Reset asks the backend to reinitialise itself.
func (s *Session) Reset() {
	s.be.Reset()
}

// Close ends the session. Without an error message the user is asked to
// press a key first.
func (s *Session) Close(message string) error {
	if message == "" && s.open {
		if err := s.checkResize(); err != nil {
			s.log.Warn("redraw before close failed", "err", err)
		}
		s.write("[" + s.tr.Translate(locale.PressAnyKeyToQuit) + "]")
		s.flushWindow(s.active)
		s.be.Update()

		for {
			ev, err := s.be.NextEvent(0)
			if err != nil || ev.Type != backend.EventResize {
				break
			}
		}
	}

	s.be.Close(message)
	s.dropCursor()
	s.open = false
	s.log.Debug("session closed", "message", message)
	return nil
}

// ParseConfig applies one engine configuration value. Boolean keys treat an
// empty value or "true" as set.
func (s *Session) ParseConfig(key, value string) error {
	switch strings.ToLower(key) {
	case KeyLeftMargin, KeyRightMargin:
		if value == "" {
			return fmt.Errorf("%w: %s needs a value", ErrInvalidConfigValue, key)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfigValue, key, value)
		}
		left, right := s.leftMargin, s.rightMargin
		if strings.EqualFold(key, KeyLeftMargin) {
			left = n
		} else {
			right = n
		}
		if !s.SetMargins(left, right) {
			return fmt.Errorf("%w: %s=%q leaves no room for text", ErrInvalidConfigValue, key, value)
		}
	case KeyDisableHyphenation:
		s.hyphenate = !configBool(value)
		for _, w := range s.wrappers {
			w.SetHyphenation(s.hyphenate)
		}
	case KeyDisableColor:
		s.colourDisabled = configBool(value)
	case KeyEnableColor:
		s.colourDisabled = !configBool(value)
	case KeyDisableMorePrompt:
		s.moreDisabled = configBool(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}
	return nil
}

// ConfigValue returns the current value of key in ParseConfig syntax.
func (s *Session) ConfigValue(key string) (string, error) {
	switch strings.ToLower(key) {
	case KeyLeftMargin:
		return strconv.Itoa(s.leftMargin), nil
	case KeyRightMargin:
		return strconv.Itoa(s.rightMargin), nil
	case KeyDisableHyphenation:
		return boolValue(!s.hyphenate), nil
	case KeyDisableColor:
		return boolValue(s.colourDisabled), nil
	case KeyEnableColor:
		return boolValue(!s.colourDisabled), nil
	case KeyDisableMorePrompt:
		return boolValue(s.moreDisabled), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
}

// ConfigKeys lists the keys ParseConfig accepts.
func (s *Session) ConfigKeys() []string {
	return append([]string(nil), configKeys...)
}

// SetMargins sets the custom margins of the lower window. Negative values
// clamp to 0. On an open session the change applies to text not yet
// emitted; call RefreshScreen to re-layout what is on screen. It reports
// false when the margins leave no room for text.
func (s *Session) SetMargins(left, right int) bool {
	left, right = max(left, 0), max(right, 0)
	if s.set != nil {
		if !s.set.SetMargins(left, right) {
			return false
		}
		s.wrappers[0].SetWidth(s.set.Get(0).TextWidth())
	}
	s.leftMargin, s.rightMargin = left, right
	return true
}

func configBool(value string) bool {
	return value == "" || value == configTrue
}

func boolValue(b bool) string {
	if b {
		return configTrue
	}
	return configFalse
}

func (s *Session) diverged(call string, err error) error {
	msg := s.tr.Translate(locale.FunctionCallAbortedDueToError, call)
	s.log.Error("history diverged", "call", call, "err", err,
		"screen_line", s.screenLine)
	return fmt.Errorf("%w: %s: %w", ErrHistoryDiverged, msg, err)
}
