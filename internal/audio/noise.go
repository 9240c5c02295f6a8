package audio

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/j-veylop/focus-tui/internal/models"
)

// Stream format written to sinks.
const (
	SampleRate     = 44100
	Channels       = 1
	bytesPerSample = 2
)

// Generator produces mono samples in [-1, 1].
type Generator interface {
	Next() float64
}

// NewGenerator returns a noise source for the variant. Unknown variants
// fall back to brown noise.
func NewGenerator(variant models.AmbientVariant, seed uint64) Generator {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	switch variant {
	case models.AmbientWhite:
		return &whiteNoise{rng: rng}
	case models.AmbientPink:
		return &pinkNoise{rng: rng}
	default:
		return &brownNoise{rng: rng}
	}
}

type whiteNoise struct {
	rng *rand.Rand
}

func (w *whiteNoise) Next() float64 {
	return w.rng.Float64()*2 - 1
}

// pinkNoise uses Paul Kellet's economy filter over white noise.
type pinkNoise struct {
	rng                *rand.Rand
	b0, b1, b2, b3, b4 float64
	b5, b6             float64
}

func (p *pinkNoise) Next() float64 {
	white := p.rng.Float64()*2 - 1
	p.b0 = 0.99886*p.b0 + white*0.0555179
	p.b1 = 0.99332*p.b1 + white*0.0750759
	p.b2 = 0.96900*p.b2 + white*0.1538520
	p.b3 = 0.86650*p.b3 + white*0.3104856
	p.b4 = 0.55000*p.b4 + white*0.5329522
	p.b5 = -0.7616*p.b5 - white*0.0168980
	out := p.b0 + p.b1 + p.b2 + p.b3 + p.b4 + p.b5 + p.b6 + white*0.5362
	p.b6 = white * 0.115926
	return clamp(out*0.11, -1, 1)
}

// brownNoise is leaky integrated white noise.
type brownNoise struct {
	rng  *rand.Rand
	last float64
}

func (b *brownNoise) Next() float64 {
	white := b.rng.Float64()*2 - 1
	b.last = (b.last + 0.02*white) / 1.02
	return clamp(b.last*3.5, -1, 1)
}

// fillPCM writes len(buf)/2 signed 16-bit little-endian samples scaled by
// volume.
func fillPCM(buf []byte, gen Generator, volume float64) {
	volume = clamp(volume, 0, 1)
	for i := 0; i+bytesPerSample <= len(buf); i += bytesPerSample {
		s := gen.Next() * volume
		binary.LittleEndian.PutUint16(buf[i:], uint16(int16(math.Round(s*math.MaxInt16))))
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
