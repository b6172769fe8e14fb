package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("stack overflow", From("stack overflow"))
	assert.Equal("pc 0x0010", From("pc 0x%04x", 0x10))
	assert.Equal("[10 20)", From("[%d %d)", 10, 20))
}
