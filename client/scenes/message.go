package scenes

import (
	"image/color"
	"strings"

	"github.com/cbodonnell/seafarer/client/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// MessageScene shows a single centered line, for loading and error screens.
type MessageScene struct {
	text string
}

var _ Scene = &MessageScene{}

func NewMessageScene(msg string) *MessageScene {
	return &MessageScene{text: msg}
}

func (s *MessageScene) Init() error    { return nil }
func (s *MessageScene) Destroy() error { return nil }
func (s *MessageScene) Update() error  { return nil }

func (s *MessageScene) Draw(screen *ebiten.Image) {
	t := strings.ToUpper(s.text)
	f := fonts.TTFLargeFont
	bounds, _ := font.BoundString(f, t)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx())/2-float64(bounds.Max.X>>6)/2, float64(screen.Bounds().Dy())/2-float64(bounds.Max.Y>>6)/2)
	op.ColorScale.ScaleWithColor(color.White)
	text.DrawWithOptions(screen, t, f, op)
}
