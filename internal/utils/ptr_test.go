package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrZero(t *testing.T) {
	assert.Equal(t, "", OrZero[string](nil))
	assert.Equal(t, 3, OrZero(Ptr(3)))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "TBA", OrDefault(nil, "TBA"))
	assert.Equal(t, "TBA", OrDefault(Ptr("   "), "TBA"))
	assert.Equal(t, "$5,000", OrDefault(Ptr("$5,000"), "TBA"))
}
