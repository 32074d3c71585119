package lss

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestModifierEncoding(t *testing.T) {
	params := []struct {
		modifier CommandModifier
		expected string
	}{
		{Speed(100), "S100"},
		{SpeedDegrees(30), "SD30"},
		{Timed(200), "T200"},
		{TimedDuration(1500 * time.Millisecond), "T1500"},
		{CurrentHold(400), "CH400"},
		{CurrentLimp(250), "CL250"},
		{NoModifier(), ""},
		{Custom("XY", 7), "XY7"},
		{Custom("XY", -7), "XY-7"},
	}
	for _, p := range params {
		assert.Equal(t, p.expected, p.modifier.Encode())
	}
}

func TestModifierOrderingPreserved(t *testing.T) {
	assert.Equal(t, "S100T200", EncodeModifiers([]CommandModifier{Speed(100), Timed(200)}))
	assert.Equal(t, "T200S100", EncodeModifiers([]CommandModifier{Timed(200), Speed(100)}))
}

func TestEncodeModifiersEmpty(t *testing.T) {
	assert.Equal(t, "", EncodeModifiers(nil))
	assert.Equal(t, "", EncodeModifiers([]CommandModifier{NoModifier(), NoModifier()}))
}

func TestNoModifierDisappearsBetweenOthers(t *testing.T) {
	encoded := EncodeModifiers([]CommandModifier{Speed(100), NoModifier(), Timed(200)})
	assert.Equal(t, "S100T200", encoded)
}
