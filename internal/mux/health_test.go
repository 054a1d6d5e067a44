package mux

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestHealthHandler(t *testing.T) {
	ts := newTestServer(t)

	var expects healthResponse
	assertGet(t, ts.Server, "/health", &expects, 200)
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
}

func TestRootHandler(t *testing.T) {
	ts := newTestServer(t)

	var expects rootResponse
	assertGet(t, ts.Server, "/", &expects, 200)
	assert.Equal(t, "ok", expects.Status)
	assert.Equal(t, "videopoker-server", expects.Service)
	assert.Equal(t, "v1.2.3", expects.Version)
}
