package loadbalancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRoundRobin_CyclesThroughServers verifies instances rotate in order.
func TestRoundRobin_CyclesThroughServers(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:1", "http://b:1", "http://c:1"})

	assert.Equal(t, "http://a:1", rr.Next())
	assert.Equal(t, "http://b:1", rr.Next())
	assert.Equal(t, "http://c:1", rr.Next())
	assert.Equal(t, "http://a:1", rr.Next(), "rotation wraps around")
}

// TestRoundRobin_EmptyListFallsBack verifies an empty instance list still
// yields a usable target.
func TestRoundRobin_EmptyListFallsBack(t *testing.T) {
	rr := NewRoundRobin(nil)
	assert.NotEmpty(t, rr.Next())
}

// TestRoundRobin_GetServersReturnsCopy verifies callers cannot mutate the
// pool through the returned slice.
func TestRoundRobin_GetServersReturnsCopy(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:1", "http://b:1"})

	servers := rr.GetServers()
	servers[0] = "http://tampered:1"

	assert.Equal(t, []string{"http://a:1", "http://b:1"}, rr.GetServers())
}
