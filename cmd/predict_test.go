package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPowerOfTwoSweep verifies the default sweep doubles from min up to
// and including max.
func TestPowerOfTwoSweep(t *testing.T) {
	assert.Equal(t, []int{64, 128, 256, 512, 1024}, powerOfTwoSweep(64, 1024))
	assert.Equal(t, []int{64}, powerOfTwoSweep(64, 100))
	assert.Nil(t, powerOfTwoSweep(0, 1024))
	assert.Nil(t, powerOfTwoSweep(128, 64))
}
