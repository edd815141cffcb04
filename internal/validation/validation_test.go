package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	First  string `yaml:"first_key" validate:"required"`
	Second string `yaml:"second_key" validate:"required"`
	Third  string `validate:"required"`
	Extra  string `yaml:"extra"`
}

func TestMissing_ReportsEveryField(t *testing.T) {
	missing, err := Missing(&sample{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first_key", "second_key", "Third"}, missing)
}

func TestMissing_None(t *testing.T) {
	missing, err := Missing(&sample{First: "a", Second: "b", Third: "c"})
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestMissing_Partial(t *testing.T) {
	missing, err := Missing(&sample{Second: "b"}, "First", "Second")
	require.NoError(t, err)
	assert.Equal(t, []string{"first_key"}, missing)
}

func TestMissing_NotAStruct(t *testing.T) {
	_, err := Missing("nope")
	assert.Error(t, err)
}
