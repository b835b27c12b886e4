package gallery

import (
	"math/rand/v2"

	"github.com/tacogips/swag/internal/imagetree"
)

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewRandomShuffler returns a Shuffler seeded from the runtime's random source.
func NewRandomShuffler() Shuffler {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededShuffler returns a deterministic Shuffler.
func NewSeededShuffler(seed uint64) Shuffler {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// shuffled returns a uniformly shuffled copy of images.
func shuffled(images []imagetree.DescendantImage, s Shuffler) []imagetree.DescendantImage {
	out := make([]imagetree.DescendantImage, len(images))
	copy(out, images)
	s.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
