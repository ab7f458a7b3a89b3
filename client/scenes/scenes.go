package scenes

import (
	"image/color"

	"github.com/cbodonnell/seafarer/client/fonts"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
)

type Scene interface {
	Init() error
	Destroy() error
	Update() error
	Draw(screen *ebiten.Image)
}

// BaseScene hosts an ebitenui tree that is rebuilt whenever the key of
// what it shows changes.
type BaseScene struct {
	ui     *ebitenui.UI
	key    string
	render func() *widget.Container
}

func NewBaseScene(render func() *widget.Container) *BaseScene {
	return &BaseScene{render: render}
}

func (s *BaseScene) Init() error {
	s.rebuild()
	return nil
}

func (s *BaseScene) Destroy() error {
	s.ui = nil
	return nil
}

// Refresh rebuilds the UI if key differs from the one it was built for.
func (s *BaseScene) Refresh(key string) {
	if s.ui != nil && key == s.key {
		return
	}
	s.key = key
	s.rebuild()
}

func (s *BaseScene) rebuild() {
	s.ui = &ebitenui.UI{Container: s.render()}
}

func (s *BaseScene) Update() error {
	if s.ui != nil {
		s.ui.Update()
	}
	return nil
}

func (s *BaseScene) Draw(screen *ebiten.Image) {
	if s.ui != nil {
		s.ui.Draw(screen)
	}
}

var (
	textColor     = color.NRGBA{254, 255, 255, 255}
	disabledColor = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	errorColor    = color.NRGBA{R: 255, G: 90, B: 90, A: 255}
	panelColor    = color.NRGBA{R: 20, G: 24, B: 36, A: 235}
)

func buttonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(color.NRGBA{R: 170, G: 170, B: 180, A: 255}),
		Hover:    image.NewNineSliceColor(color.NRGBA{R: 135, G: 135, B: 150, A: 255}),
		Pressed:  image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 120, A: 255}),
		Disabled: image.NewNineSliceColor(color.NRGBA{R: 90, G: 90, B: 100, A: 255}),
	}
}

func newButton(label string, disabled bool, onClick func()) *widget.Button {
	b := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
				Stretch:  true,
			}),
		),
		widget.ButtonOpts.Image(buttonImage()),
		widget.ButtonOpts.Text(label, fonts.TTFNormalFont, &widget.ButtonTextColor{
			Idle:     textColor,
			Disabled: disabledColor,
		}),
		widget.ButtonOpts.TextPadding(widget.Insets{
			Left:   12,
			Right:  12,
			Top:    4,
			Bottom: 4,
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
	b.GetWidget().Disabled = disabled
	return b
}

func newLabel(label string, face font.Face, clr color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, face, clr),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
	)
}

func newTextInput(placeholder string, secure bool, onChange func(string)) *widget.TextInput {
	face := fonts.TTFNormalFont
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
				Stretch:  true,
			}),
		),
		widget.TextInputOpts.MobileInputMode("text"),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 100, A: 255}),
			Disabled: image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 100, A: 255}),
		}),
		widget.TextInputOpts.Face(face),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          textColor,
			Disabled:      disabledColor,
			Caret:         textColor,
			DisabledCaret: disabledColor,
		}),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(5)),
		widget.TextInputOpts.CaretOpts(
			widget.CaretOpts.Size(face, 2),
		),
		widget.TextInputOpts.Placeholder(placeholder),
		widget.TextInputOpts.Secure(secure),
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			onChange(args.InputText)
		}),
	)
}

func verticalContainer(spacing int, padding widget.Insets, opts ...widget.ContainerOpt) *widget.Container {
	opts = append([]widget.ContainerOpt{
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(spacing),
			widget.RowLayoutOpts.Padding(padding),
		)),
	}, opts...)
	return widget.NewContainer(opts...)
}
