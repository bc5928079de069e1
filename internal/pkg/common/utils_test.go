package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUUID(t *testing.T) {
	t.Parallel()

	id := GenerateUUID()
	assert.True(t, IsValidUUID(id))
	assert.NotEqual(t, id, GenerateUUID())
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestNonEmptyLines(t *testing.T) {
	t.Parallel()

	got := NonEmptyLines([]string{"  2 eggs ", "", "   ", "salt"})
	assert.Equal(t, []string{"2 eggs", "salt"}, got)
	assert.Empty(t, NonEmptyLines(nil))
}
