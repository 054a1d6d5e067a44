package util

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var adjectives = []string{
	"Fast", "Slow", "Quick", "Speedy", "Trotting", "Weaving", "Waiving", "Gracious", "Healthy", "Happy", "Funny",
	"Red", "Blue", "Green", "Orange", "Purple", "Fuzzy", "Smiling", "Tall", "Grand", "Ultimate", "Prime",
	"Alpha", "Growling", "Slithering", "Swimming", "Flying", "Jumping", "Running", "Charging", "Shooting", "Bouncing",
	"Bounding", "Leaping",
}

var animals = []string{
	"Dog", "Cat", "Mouse", "Alligator", "Crocodile", "Shark", "Hippo", "Giraffe", "Antelope", "Lion", "Tiger",
	"Bear", "Muskrat", "Otter", "Dolphin", "Porcupine", "Gerbil", "Hedgehog", "Snake", "Lizard", "Chipmunk",
	"Bird", "Dinosaur", "Okapi", "Eagle", "Mandrill", "Bonobo", "Wolf", "Fox", "Armadillo", "Rhino", "Anteater",
	"Reindeer", "Deer", "Panda",
}

var (
	randomMu sync.Mutex
	random   = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
)

// GetRandomName returns a random name by combining an adjective with an animal
// and a number, i.e., "Happy Otter 42"
func GetRandomName() string {
	randomMu.Lock()
	defer randomMu.Unlock()

	adjectivesIndex := random.Intn(len(adjectives))
	animalsIndex := random.Intn(len(animals))

	return fmt.Sprintf("%s %s %d", adjectives[adjectivesIndex], animals[animalsIndex], random.Intn(1000))
}
