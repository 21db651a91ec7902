package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStudio_HeldBy(t *testing.T) {
	holder, other := uuid.New(), uuid.New()

	assert.True(t, Studio{Occupied: true, OccupiedBy: &holder}.HeldBy(holder))
	assert.False(t, Studio{Occupied: true, OccupiedBy: &holder}.HeldBy(other))
	assert.False(t, Studio{}.HeldBy(holder))

	studios := map[string]Studio{"A1": {Occupied: true, OccupiedBy: &holder}}
	assert.True(t, studios["A1"].HeldBy(holder))
}
