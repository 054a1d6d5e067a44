package util

import (
	"github.com/google/uuid"
)

// RandomName generates a random user name that is unique without checking the store
func RandomName() string {
	return "player-" + uuid.New().String()
}
