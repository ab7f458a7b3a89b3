package scenes

import (
	"fmt"
	"strings"

	"github.com/cbodonnell/seafarer/client/async"
	"github.com/cbodonnell/seafarer/client/engine"
	"github.com/cbodonnell/seafarer/client/fonts"
	"github.com/cbodonnell/seafarer/client/input"
	"github.com/cbodonnell/seafarer/client/session"
	"github.com/cbodonnell/seafarer/pkg/repositories/models"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	PanelWidth = 160
	// maxListedSaves is the number of saves shown in the save browser
	maxListedSaves = 6
)

// PlayScene shows the game canvas next to a panel of session actions, and
// the save browser over the canvas while it is open.
type PlayScene struct {
	*BaseScene

	opts        PlaySceneOptions
	browserOpen bool
}

// PlaySceneOptions are the intents of the play scene. None of them may block.
type PlaySceneOptions struct {
	View          func() session.View
	Canvas        *engine.Canvas
	OnStart       func()
	OnTogglePause func()
	OnToggleSound func()
	OnRestart     func()
	OnSave        func()
	// OnOpenSaves is called when the save browser opens.
	OnOpenSaves   func()
	OnApplySave   func(id string)
	OnDeleteSave  func(id string)
	OnLogin       func()
	OnLogout      func()
}

var _ Scene = &PlayScene{}

func NewPlayScene(opts PlaySceneOptions) *PlayScene {
	s := &PlayScene{opts: opts}
	s.BaseScene = NewBaseScene(s.render)
	return s
}

func (s *PlayScene) Update() error {
	view := s.opts.View()

	if input.IsPauseJustPressed() {
		if s.browserOpen {
			s.browserOpen = false
		} else if view.HasGame {
			s.opts.OnTogglePause()
		}
	}
	if input.IsMuteJustPressed() {
		s.opts.OnToggleSound()
	}

	s.opts.Canvas.Update(input.Diver())

	s.Refresh(s.key(s.opts.View()))
	return s.BaseScene.Update()
}

func (s *PlayScene) Draw(screen *ebiten.Image) {
	s.opts.Canvas.Draw(screen, 0, 0)
	s.BaseScene.Draw(screen)
}

// key covers everything the panel and the save browser display.
func (s *PlayScene) key(view session.View) string {
	ids := make([]string, 0, len(view.Saves.Records))
	for _, save := range view.Saves.Records {
		ids = append(ids, save.ID)
	}
	return fmt.Sprintf("%s|%t|%t|%s|%d|%s|%s|%s|%s|%s|%s|%s|%s|%t",
		view.Status, view.SoundEnabled, view.Identity.IsAuthenticated, view.Identity.Email, view.Identity.TotalScore,
		view.Save.Phase, view.Save.Err,
		view.Saves.Condition(), view.Saves.Err, strings.Join(ids, ","),
		view.Delete.Phase, view.Delete.Err,
		view.LoadError, s.browserOpen)
}

func (s *PlayScene) render() *widget.Container {
	view := s.opts.View()
	w, h := s.opts.Canvas.Size()

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
		)),
	)

	stage := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(w, h)),
	)
	if !view.HasGame {
		stage.AddChild(s.renderStart())
	} else if s.browserOpen {
		stage.AddChild(s.renderBrowser(view))
	}
	root.AddChild(stage)
	root.AddChild(s.renderPanel(view, h))

	return root
}

func (s *PlayScene) renderStart() *widget.Container {
	c := verticalContainer(12, widget.NewInsetsSimple(20),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	)
	c.AddChild(newLabel("Collect the pearls", fonts.TitleFont, textColor))
	c.AddChild(newButton("Start", false, s.opts.OnStart))
	return c
}

func (s *PlayScene) renderPanel(view session.View, height int) *widget.Container {
	panel := verticalContainer(8, widget.NewInsetsSimple(8),
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(PanelWidth, height)),
	)

	if view.Identity.IsAuthenticated {
		panel.AddChild(newLabel(view.Identity.Email, fonts.TTFSmallFont, textColor))
		panel.AddChild(newLabel(fmt.Sprintf("Best total %d", view.Identity.TotalScore), fonts.TTFSmallFont, textColor))
	} else {
		panel.AddChild(newLabel("Guest", fonts.TTFSmallFont, textColor))
	}

	pauseLabel := "Pause"
	if view.Paused {
		pauseLabel = "Resume"
	}
	panel.AddChild(newButton(pauseLabel, !view.HasGame, s.opts.OnTogglePause))
	panel.AddChild(newButton("New game", !view.HasGame, s.opts.OnRestart))

	soundLabel := "Sound off"
	if !view.SoundEnabled {
		soundLabel = "Sound on"
	}
	panel.AddChild(newButton(soundLabel, false, s.opts.OnToggleSound))

	if view.Identity.IsAuthenticated {
		saving := view.Save.Phase == async.Loading
		saveLabel := "Save"
		if saving {
			saveLabel = "Saving..."
		}
		panel.AddChild(newButton(saveLabel, saving || !view.HasGame, s.opts.OnSave))
		switch view.Save.Phase {
		case async.Failed:
			panel.AddChild(newLabel(view.Save.Err, fonts.TTFSmallFont, errorColor))
		case async.Succeeded:
			panel.AddChild(newLabel("Saved", fonts.TTFSmallFont, textColor))
		}

		panel.AddChild(newButton("Load", false, func() {
			s.browserOpen = true
			s.opts.OnOpenSaves()
		}))
		panel.AddChild(newButton("Logout", false, s.opts.OnLogout))
	} else {
		panel.AddChild(newLabel("Log in to save", fonts.TTFSmallFont, disabledColor))
		panel.AddChild(newButton("Log in", false, s.opts.OnLogin))
	}

	return panel
}

func (s *PlayScene) renderBrowser(view session.View) *widget.Container {
	browser := verticalContainer(8, widget.NewInsetsSimple(16),
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	)
	browser.AddChild(newLabel("Saves", fonts.TTFLargeFont, textColor))

	switch view.Saves.Condition() {
	case session.SavesIdle, session.SavesLoading:
		browser.AddChild(newLabel("Loading...", fonts.TTFNormalFont, textColor))
	case session.SavesFailed:
		browser.AddChild(newLabel(view.Saves.Err, fonts.TTFSmallFont, errorColor))
		browser.AddChild(newButton("Retry", false, s.opts.OnOpenSaves))
	case session.SavesEmpty:
		browser.AddChild(newLabel("No saves", fonts.TTFNormalFont, textColor))
	case session.SavesAvailable:
		deleting := view.Delete.Phase == async.Loading
		for _, save := range newestFirst(view.Saves.Records, maxListedSaves) {
			browser.AddChild(s.renderSave(save, view.HasGame, deleting))
		}
	}

	if view.Delete.Phase == async.Failed {
		browser.AddChild(newLabel(view.Delete.Err, fonts.TTFSmallFont, errorColor))
	}
	if view.LoadError != "" {
		browser.AddChild(newLabel(view.LoadError, fonts.TTFSmallFont, errorColor))
	}

	browser.AddChild(newButton("Close", false, func() {
		s.browserOpen = false
	}))
	return browser
}

func (s *PlayScene) renderSave(save *models.Save, canApply bool, deleting bool) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
	)
	id := save.ID
	row.AddChild(newLabel(save.CreatedAt.Local().Format("Jan 2 15:04:05"), fonts.TTFNormalFont, textColor))
	row.AddChild(newButton("Load", !canApply, func() {
		s.browserOpen = false
		s.opts.OnApplySave(id)
	}))
	row.AddChild(newButton("Delete", deleting, func() {
		s.opts.OnDeleteSave(id)
	}))
	return row
}

// newestFirst returns up to limit saves, most recent first.
func newestFirst(saves []*models.Save, limit int) []*models.Save {
	out := make([]*models.Save, 0, limit)
	for i := len(saves) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, saves[i])
	}
	return out
}
