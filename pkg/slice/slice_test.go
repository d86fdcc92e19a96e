// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vanlife/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
}

func TestFilter(t *testing.T) {
	input := []int{1, 2, 3, 4}
	even := slice.Filter(input, func(v int) bool { return v%2 == 0 })

	assert.Equal(t, []int{2, 4}, even)
	assert.Equal(t, []int{1, 2, 3, 4}, input)
	assert.Empty(t, slice.Filter(input, func(int) bool { return false }))
	assert.Nil(t, slice.Filter[int](nil, func(int) bool { return true }))
}

func TestReduce(t *testing.T) {
	sum := slice.Reduce([]int{720, 560, 980}, 0, func(acc, v int) int { return acc + v })
	assert.Equal(t, 2260, sum)
}
