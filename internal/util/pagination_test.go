package util

import (
	"testing"

	"github.com/mobiliza/peticoes/internal/constant"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, CalculateTotalPage(0, 50))
	assert.Equal(t, 1, CalculateTotalPage(50, 50))
	assert.Equal(t, 2, CalculateTotalPage(51, 50))
	assert.Equal(t, 3, CalculateTotalPage(101, 50))
}

func TestNormalizePage(t *testing.T) {
	page, pageSize := NormalizePage(0, 0)
	assert.EqualValues(t, 1, page)
	assert.EqualValues(t, constant.DefaultPageSize, pageSize)

	page, pageSize = NormalizePage(3, 5000)
	assert.EqualValues(t, 3, page)
	assert.EqualValues(t, constant.MaxPageSize, pageSize)

	page, pageSize = NormalizePage(2, 25)
	assert.EqualValues(t, 2, page)
	assert.EqualValues(t, 25, pageSize)
}
