package tetris

import "math/rand/v2"

// Factory produces shapes of uniformly random kind from an owned random source.
type Factory struct {
	rng *rand.Rand
}

// NewFactory creates a factory drawing from src. A nil src seeds a PCG source
// from the runtime's random generator.
func NewFactory(src rand.Source) *Factory {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Factory{rng: rand.New(src)}
}

// NewSeededFactory returns a factory whose sequence of kinds is fixed by seed.
func NewSeededFactory(seed uint64) *Factory {
	return NewFactory(rand.NewPCG(seed, seed))
}

// RandomShape returns a new shape at orientation Deg0; every kind has probability 1/NumKinds.
func (f *Factory) RandomShape() *Shape {
	kind := Kind(f.rng.IntN(NumKinds))
	switch kind {
	case LongLine, ShortLine, Box, BigL, LittleL, ZigZag:
		return &Shape{kind: kind, pattern: silhouettes[kind]}
	default:
		// The selector range and the kind table disagree.
		panic(&InvalidKindError{Kind: kind})
	}
}
