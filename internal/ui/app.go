// Package ui is the Fyne front end: the board widget, its toolbar, the
// journal sidebar and the window that holds them.
package ui

import (
	"context"

	engine "VisionBoard/internal/canvas"
	"VisionBoard/internal/config"
	"VisionBoard/internal/gesture"
	"VisionBoard/internal/journal"
	"VisionBoard/internal/state"
	palette "VisionBoard/internal/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"
)

const sidebarOffset = 0.75

// shell owns the window and everything in it.
type shell struct {
	app fyne.App
	win fyne.Window
	cfg *config.Config

	store *state.Store
	ctrl  *engine.Controller
	board *BoardWidget

	journal *journalPanel
	status  *statusBar
	split   *container.Split
	body    *fyne.Container
	full    bool

	menu    *widget.PopUp
	variant state.Variant

	pending    map[int]context.CancelFunc
	nextImport int
}

func newShell(a fyne.App, cfg *config.Config) *shell {
	s := &shell{
		app:     a,
		cfg:     cfg,
		variant: state.VariantRect,
		pending: make(map[int]context.CancelFunc),
	}
	s.win = a.NewWindow("Vision Board")
	s.win.Resize(fyne.NewSize(cfg.App.WindowWidth, cfg.App.WindowHeight))

	s.store = state.NewStore(cfg.Canvas.MinItemSize)
	s.ctrl = engine.NewController(s.store, engine.NewViewport(cfg.Geometry()), gesture.NewRouter())

	pal := palette.Lookup(cfg.ThemeName())
	a.Settings().SetTheme(palette.Fyne(pal))
	s.board = NewBoardWidget(s.ctrl, pal)
	s.board.OnBackground = s.closeMenu

	s.status = newStatusBar()
	s.board.OnStatus = s.status.Update

	s.journal = newJournalPanel(journal.New(journal.NewPrefsStore(a.Preferences())))

	s.split = container.NewHSplit(s.board, s.journal.Object())
	s.split.Offset = sidebarOffset
	s.body = container.NewStack(s.split)

	s.win.SetContent(container.NewBorder(s.toolbar(), s.status.Object(), nil, nil, s.body))
	s.win.Canvas().Focus(s.board)
	s.win.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.Key0, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { s.board.ResetView() })

	a.Lifecycle().SetOnExitedForeground(s.board.Cancel)
	s.win.SetOnDropped(s.dropFiles)
	s.win.SetOnClosed(s.close)
	return s
}

// toggleFull swaps between the board alone and the board beside the
// journal.
func (s *shell) toggleFull() {
	s.full = !s.full
	if s.full {
		s.split.Leading = layout.NewSpacer()
		s.body.Objects = []fyne.CanvasObject{s.board}
	} else {
		s.split.Leading = s.board
		s.body.Objects = []fyne.CanvasObject{s.split}
	}
	s.split.Refresh()
	s.body.Refresh()
}

func (s *shell) close() {
	for _, cancel := range s.pending {
		cancel()
	}
	clear(s.pending)
	s.ctrl.Close()
	log.Info("board closed")
}

// RunApp opens the board window and blocks until it is closed.
func RunApp(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	a := app.NewWithID(cfg.App.AppID)
	s := newShell(a, cfg)
	log.WithFields(log.Fields{
		"theme": cfg.App.Theme,
		"grid":  cfg.Canvas.GridSize,
	}).Info("starting board")
	s.win.ShowAndRun()
	return nil
}
