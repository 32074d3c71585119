package lss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedColorRoundTrip(t *testing.T) {
	params := []struct {
		color LedColor
		wire  int32
	}{
		{LedOff, 0},
		{LedRed, 1},
		{LedGreen, 2},
		{LedBlue, 3},
		{LedYellow, 4},
		{LedCyan, 5},
		{LedMagenta, 6},
		{LedWhite, 7},
	}
	for _, p := range params {
		color, err := LedColorFromWire(p.wire)
		require.NoError(t, err)
		assert.Equal(t, p.color, color)
		assert.Equal(t, p.wire, color.WireValue())
	}
}

func TestLedColorParseFails(t *testing.T) {
	_, err := LedColorFromWire(42)
	require.Error(t, err)

	var parseErr *PacketParsingError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "LedColor")
	assert.Contains(t, parseErr.Reason, "42")
}

func TestMotorStatusRoundTrip(t *testing.T) {
	params := []struct {
		status MotorStatus
		wire   int32
	}{
		{StatusUnknown, 0},
		{StatusLimp, 1},
		{StatusFreeMoving, 2},
		{StatusAccelerating, 3},
		{StatusTraveling, 4},
		{StatusDecelerating, 5},
		{StatusHolding, 6},
		{StatusOutsideLimits, 7},
		{StatusStuck, 8},
		{StatusBlocked, 9},
		{StatusSafeMode, 10},
	}
	for _, p := range params {
		status, err := MotorStatusFromWire(p.wire)
		require.NoError(t, err)
		assert.Equal(t, p.status, status)
		assert.Equal(t, p.wire, status.WireValue())
	}
}

func TestMotorStatusParseFails(t *testing.T) {
	for _, wire := range []int32{-1, 11, 42} {
		_, err := MotorStatusFromWire(wire)
		require.Error(t, err, "wire value %d", wire)

		var parseErr *PacketParsingError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Reason, "MotorStatus")
	}
}

func TestSafeModeStatusRoundTrip(t *testing.T) {
	params := []struct {
		status SafeModeStatus
		wire   int32
	}{
		{SafetyNoLimits, 0},
		{SafetyCurrentLimit, 1},
		{SafetyVoltageOutOfRange, 2},
		{SafetyTemperatureLimit, 3},
	}
	for _, p := range params {
		status, err := SafeModeStatusFromWire(p.wire)
		require.NoError(t, err)
		assert.Equal(t, p.status, status)
		assert.Equal(t, p.wire, status.WireValue())
	}

	_, err := SafeModeStatusFromWire(4)
	assert.Error(t, err)
}

func TestModelParse(t *testing.T) {
	assert.Equal(t, Model{Kind: ModelST1, Raw: "LSS-ST1"}, ParseModel("LSS-ST1"))
	assert.Equal(t, Model{Kind: ModelHS1, Raw: "LSS-HS1"}, ParseModel("LSS-HS1"))
	assert.Equal(t, Model{Kind: ModelHT1, Raw: "LSS-HT1"}, ParseModel("LSS-HT1"))
}

func TestModelParsesOther(t *testing.T) {
	model := ParseModel("something")
	assert.Equal(t, Model{Kind: ModelOther, Raw: "something"}, model)
	assert.Equal(t, "something", model.String())
}

func TestCombineBlink(t *testing.T) {
	assert.Equal(t, BlinkNone, CombineBlink(nil))
	assert.Equal(t, LedBlink(3), CombineBlink([]LedBlink{BlinkLimp, BlinkHolding}))
	assert.Equal(t, BlinkAlways, CombineBlink([]LedBlink{
		BlinkLimp, BlinkHolding, BlinkAccelerating, BlinkDecelerating, BlinkFree, BlinkTraveling,
	}))
}
