package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageParamsDefaults(t *testing.T) {
	limit, skip := PageParams("", "")
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, skip)
}

func TestPageParamsExplicit(t *testing.T) {
	limit, skip := PageParams("1", "5")
	assert.Equal(t, 1, limit)
	assert.Equal(t, 5, skip)
}

func TestPageParamsClampsAndIgnoresGarbage(t *testing.T) {
	limit, skip := PageParams("100000", "-3")
	assert.Equal(t, 100, limit)
	assert.Equal(t, 0, skip)

	limit, skip = PageParams("abc", "xyz")
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, skip)
}
