package rng

// Generator provides a simple random number
// *math/rand.Rand satisfies it, which lets tests use a seeded source
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}
