package util

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetEnv(t *testing.T) {
	a := assert.New(t)
	_, found := os.LookupEnv("test_foo")

	a.False(found)
	unset1 := SetEnv("test_foo", "bar")
	a.Equal("bar", os.Getenv("test_foo"))

	unset2 := SetEnv("test_foo", "bar2")
	a.Equal("bar2", os.Getenv("test_foo"))
	unset2()
	a.Equal("bar", os.Getenv("test_foo"))
	unset1()

	_, found = os.LookupEnv("test_foo")
	a.False(found)
}

func TestGetenv(t *testing.T) {
	a := assert.New(t)
	a.Equal("fallback", Getenv("test_getenv", "fallback"))

	defer SetEnv("test_getenv", "set")()
	a.Equal("set", Getenv("test_getenv", "fallback"))
}

func TestRandomName(t *testing.T) {
	a := assert.New(t)
	a.Regexp(`^player-[a-f0-9-]{36}$`, RandomName())
	a.NotEqual(RandomName(), RandomName())
}
