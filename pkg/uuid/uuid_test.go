// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vanlife/pkg/uuid"
)

func TestNew_IsValidV7(t *testing.T) {
	first, second := uuid.New(), uuid.New()

	assert.NotEqual(t, first, second)
	assert.True(t, uuid.Valid(first))
}

func TestValid_RejectsOtherInput(t *testing.T) {
	assert.False(t, uuid.Valid(""))
	assert.False(t, uuid.Valid("not-a-uuid"))
	assert.False(t, uuid.Valid("550e8400-e29b-41d4-a716-446655440000"))
}
