// Package app is a small interactive host that drives a screen session the
// way a story interpreter does: it writes the transcript, keeps the paragraph
// log in step with it, and reads one command per turn.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/monoscreen/internal/backend"
	"github.com/Gaurav-Gosain/monoscreen/internal/config"
	"github.com/Gaurav-Gosain/monoscreen/internal/history"
	"github.com/Gaurav-Gosain/monoscreen/internal/locale"
	"github.com/Gaurav-Gosain/monoscreen/internal/screen"
	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

// Package-level logger
var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "app",
		Level:           log.WarnLevel,
	})
}

// SetLogLevel sets the logging level for the app package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// SetLogOutput redirects the package logger.
func SetLogOutput(l *log.Logger) {
	if l != nil {
		logger = l.WithPrefix("app")
	}
}

// Version is printed in the banner.
var Version = "dev"

const (
	// maxCommandLength bounds one line of input.
	maxCommandLength = 120
	// commandHistorySize is the number of commands kept for recall.
	commandHistorySize = 100
	// interruptTenths is how often a cancellable read checks its context.
	interruptTenths = 5
)

// Options configures a Host.
type Options struct {
	// Config supplies the engine settings and the story version. Defaults
	// to config.DefaultConfig.
	Config *config.Config
	// ConfigPath is watched for changes while the host runs when set.
	ConfigPath string
	// Translator overrides the built-in message catalog.
	Translator locale.Translator
	// Logger receives engine and host records.
	Logger *log.Logger
}

// Host owns a screen session and the collaborators an interpreter would
// provide: the paragraph log, the command history and the game state shown
// on the status line.
type Host struct {
	session  *screen.Session
	store    *history.Store
	commands *history.Commands
	tr       locale.Translator
	cfg      *config.Config
	cfgPath  string
	version  int

	world *world
	room  int
	score int
	turns int
	split int

	mu      sync.Mutex
	pending *config.Config
}

// New creates a host painting through be. The session is opened by Run.
func New(be backend.Backend, opts Options) (*Host, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	tr := opts.Translator
	if tr == nil {
		tr = locale.Default()
	}
	if opts.Logger != nil {
		SetLogOutput(opts.Logger)
	}

	h := &Host{
		store:    history.NewStore(cfg.Runtime.HistorySize),
		commands: history.NewCommands(commandHistorySize),
		tr:       tr,
		cfg:      cfg,
		cfgPath:  opts.ConfigPath,
		version:  cfg.Runtime.Version,
		world:    newWorld(),
	}
	h.session = screen.New(be, screen.Options{
		Log:        h.store,
		Commands:   h.commands,
		Translator: tr,
		Logger:     opts.Logger,
	})

	for _, kv := range cfg.EngineSettings() {
		if err := h.session.ParseConfig(kv.Key, kv.Value); err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", kv.Key, err)
		}
	}
	return h, nil
}

// Session returns the engine session.
func (h *Host) Session() *screen.Session {
	return h.session
}

// Transcript returns the paragraph log the host writes.
func (h *Host) Transcript() *history.Store {
	return h.store
}

// Commands returns the command history.
func (h *Host) Commands() *history.Commands {
	return h.commands
}

// Run opens the session and plays turns until the player quits, presses
// Escape or the input ends. A context that can be cancelled is polled while
// a command is typed.
func (h *Host) Run(ctx context.Context) error {
	if err := h.session.Open(h.version); err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	logger.Debug("host started", "session", h.session.ID(), "version", h.version)

	if h.cfgPath != "" {
		go func() {
			if err := config.Watch(ctx, h.cfgPath, h.queueConfig); err != nil {
				logger.Warn("config watch stopped", "err", err)
			}
		}()
	}

	h.banner()
	h.describe()

	for {
		if err := h.applyPendingConfig(); err != nil {
			return h.fail(err)
		}
		h.drawStatus()
		h.print("\n>")

		res, err := h.session.ReadLine(h.lineRequest(ctx))
		switch {
		case errors.Is(err, backend.ErrNoInput):
			logger.Debug("input exhausted")
			return h.finish()
		case err != nil:
			return h.fail(err)
		case res.Size == screen.SizeAborted:
			logger.Debug("read aborted by escape")
			return h.finish()
		case res.Quit:
			h.session.Close(context.Cause(ctx).Error())
			return context.Cause(ctx)
		}

		h.print(res.Text + "\n")
		h.commands.Add(res.Text)
		h.turns++

		if quit := h.execute(res.Text); quit {
			return h.finish()
		}
	}
}

// lineRequest builds the read of one command. Reads poll ctx only when it
// can be cancelled, so a scripted backend never spins on timeouts.
func (h *Host) lineRequest(ctx context.Context) screen.LineRequest {
	req := screen.LineRequest{
		Max:          maxCommandLength,
		EscapeAborts: true,
	}
	if ctx.Done() != nil {
		req.TenthSeconds = interruptTenths
		req.Verify = func() (bool, error) {
			if ctx.Err() != nil {
				return true, screen.ErrQuit
			}
			return false, nil
		}
	}
	return req
}

// finish ends the session after the press-any-key prompt.
func (h *Host) finish() error {
	h.print("\n")
	return h.session.Close("")
}

// fail ends the session with err as its closing message.
func (h *Host) fail(err error) error {
	logger.Error("session failed", "err", err)
	h.session.Close(err.Error())
	return err
}

// print writes text to the active window. Lower window text is mirrored
// into the paragraph log so scrollback and refresh can replay it.
func (h *Host) print(text string) {
	if h.session.ActiveWindow() == 0 {
		h.store.Append(text)
	}
	h.session.Output(text)
}

// setStyle changes the text style on screen and in the log.
func (h *Host) setStyle(st style.Style) {
	h.store.SetTextStyle(st)
	h.session.SetTextStyle(st)
}

// setColour changes the lower window colours on screen and in the log.
func (h *Host) setColour(fg, bg style.Colour) {
	h.store.SetColour(fg, bg)
	h.session.SetColour(fg, bg, 0)
}

// queueConfig records a reloaded configuration. It runs on the watcher
// goroutine; the change is applied between turns.
func (h *Host) queueConfig(cfg *config.Config) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = cfg
}

// applyPendingConfig applies a queued configuration: engine settings go
// through ParseConfig and a margin change re-lays the screen out.
func (h *Host) applyPendingConfig() error {
	h.mu.Lock()
	cfg := h.pending
	h.pending = nil
	h.mu.Unlock()
	if cfg == nil {
		return nil
	}

	marginsChanged := cfg.Layout.LeftMargin != h.cfg.Layout.LeftMargin ||
		cfg.Layout.RightMargin != h.cfg.Layout.RightMargin
	for _, kv := range cfg.EngineSettings() {
		if err := h.session.ParseConfig(kv.Key, kv.Value); err != nil {
			logger.Warn("ignoring setting", "key", kv.Key, "err", err)
		}
	}
	h.cfg = cfg
	logger.Info("configuration applied", "left_margin", cfg.Layout.LeftMargin,
		"right_margin", cfg.Layout.RightMargin)

	if !marginsChanged {
		return nil
	}
	if !h.session.SetMargins(cfg.Layout.LeftMargin, cfg.Layout.RightMargin) {
		logger.Warn("margins leave no room for text")
		return nil
	}
	return h.session.RefreshScreen()
}
