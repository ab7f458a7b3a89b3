package engine

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const SampleRate = 44100

type Effect int

const (
	EffectPearl Effect = iota
	EffectLevel
)

// Sound plays short generated tones. A Sound without an audio context is silent.
type Sound struct {
	context *audio.Context
	effects map[Effect][]byte
}

// NewSound prepares the effects for context, which may be nil.
func NewSound(context *audio.Context) *Sound {
	return &Sound{
		context: context,
		effects: map[Effect][]byte{
			EffectPearl: tone(880, 0.08),
			EffectLevel: append(tone(660, 0.1), tone(990, 0.15)...),
		},
	}
}

func (s *Sound) Play(effect Effect) {
	if s == nil || s.context == nil {
		return
	}
	pcm, ok := s.effects[effect]
	if !ok {
		return
	}
	s.context.NewPlayerFromBytes(pcm).Play()
}

// tone returns a fading sine wave as 16 bit little endian stereo PCM.
func tone(frequency float64, seconds float64) []byte {
	samples := int(seconds * SampleRate)
	pcm := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		fade := 1 - float64(i)/float64(samples)
		v := int16(math.Sin(2*math.Pi*frequency*float64(i)/SampleRate) * fade * 0.3 * math.MaxInt16)
		binary.LittleEndian.PutUint16(pcm[4*i:], uint16(v))
		binary.LittleEndian.PutUint16(pcm[4*i+2:], uint16(v))
	}
	return pcm
}
