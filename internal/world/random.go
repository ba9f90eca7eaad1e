package world

import (
	"hash/fnv"
	"math/rand"
)

// DeterministicSeedValue hashes the root seed and a subsystem label into
// a stable non-zero seed, so each subsystem draws from an independent
// stream that replays identically for the same world seed.
func DeterministicSeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// StreamSeed is DeterministicSeedValue widened for steering streams.
func StreamSeed(rootSeed, label string) uint64 {
	return uint64(DeterministicSeedValue(rootSeed, label))
}

// NewDeterministicRNG builds a subsystem RNG from the root seed and a
// label. Used for world generation; steering uses serializable streams.
func NewDeterministicRNG(rootSeed, label string) *rand.Rand {
	return rand.New(rand.NewSource(DeterministicSeedValue(rootSeed, label)))
}
