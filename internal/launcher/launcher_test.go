package launcher

import "testing"

func TestOpen_NeverPanicsOrBlocks(t *testing.T) {
	// Open swallows every failure; it must return cleanly even when the
	// open binary is absent or the path is nonsense.
	Open("/no/such/bundle.app")
}
