package lss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMoveFrame(t *testing.T) {
	frame := WithValue(5, MoveDegrees, 30)
	data, err := frame.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte("#5D30\r"), data)
}

func TestEncodeNegativeValue(t *testing.T) {
	data, err := WithValue(5, MoveDegrees, -300).Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte("#5D-300\r"), data)
}

func TestEncodeWithModifiers(t *testing.T) {
	data, err := WithValue(5, MoveDegrees, 300, SpeedDegrees(100), Timed(2500)).Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte("#5D300SD100T2500\r"), data)
}

func TestEncodeQueryFrame(t *testing.T) {
	data, err := Plain(3, QueryVoltage).Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte("#3QV\r"), data)
}

func TestEncodeBroadcast(t *testing.T) {
	data, err := Plain(BroadcastID, Limp).Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte("#254L\r"), data)
}

func TestEncodeDeterministic(t *testing.T) {
	frame := WithValue(12, MoveDegrees, 450, Speed(100), CurrentHold(400))
	first, err := frame.Encode()
	require.NoError(t, err)
	second, err := frame.Encode()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncodeRejectsInvalidAddress(t *testing.T) {
	for _, id := range []DeviceID{-1, 255, 1000} {
		_, err := Plain(id, QueryVoltage).Encode()
		require.Error(t, err, "id %d", id)

		var addrErr *InvalidAddressError
		require.ErrorAs(t, err, &addrErr)
		assert.Equal(t, int(id), addrErr.ID)
	}
}

func TestEncodeRejectsValueMismatch(t *testing.T) {
	// query with a value
	_, err := WithValue(5, QueryVoltage, 1).Encode()
	var usageErr *InvalidCommandUsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Equal(t, "QV", usageErr.Code)

	// move without a value
	_, err = Plain(5, MoveDegrees).Encode()
	require.ErrorAs(t, err, &usageErr)
	assert.Equal(t, "D", usageErr.Code)
}

func TestEncodeRejectsModifiersOnUnmodifiableCommand(t *testing.T) {
	_, err := WithValue(5, SetLedColor, 1, Speed(100)).Encode()
	var usageErr *InvalidCommandUsageError
	require.ErrorAs(t, err, &usageErr)

	// NoModifier encodes to nothing, so it is allowed anywhere
	_, err = WithValue(5, SetLedColor, 1, NoModifier()).Encode()
	assert.NoError(t, err)
}

func TestParseVoltageReply(t *testing.T) {
	reply, err := ParseReply([]byte("*5QV2182\r"), QueryVoltage)
	require.NoError(t, err)
	assert.Equal(t, DeviceID(5), reply.ID)

	value, err := reply.IntValue()
	require.NoError(t, err)
	assert.Equal(t, int32(2182), value)
}

func TestParseNegativeValueReply(t *testing.T) {
	reply, err := ParseReply([]byte("*5QD-105\r"), QueryPositionDegrees)
	require.NoError(t, err)

	value, err := reply.IntValue()
	require.NoError(t, err)
	assert.Equal(t, int32(-105), value)
}

func TestParseModelReply(t *testing.T) {
	reply, err := ParseReply([]byte("*5QMSLSS-HS1\r"), QueryModelString)
	require.NoError(t, err)
	assert.Equal(t, "LSS-HS1", reply.TextValue())

	_, err = reply.IntValue()
	assert.Error(t, err, "model payload is not a decimal")
}

func TestParseRejectsMalformedFrames(t *testing.T) {
	params := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"missing delimiter", "*5QV2182"},
		{"missing marker", "5QV2182\r"},
		{"request marker", "#5QV2182\r"},
		{"non-numeric id", "*xQV2182\r"},
		{"id out of range", "*999QV2182\r"},
		{"wrong command echo", "*5QT2182\r"},
		{"empty payload", "*5QV\r"},
		{"non-numeric payload", "*5QVabc\r"},
	}
	for _, p := range params {
		t.Run(p.name, func(t *testing.T) {
			reply, err := ParseReply([]byte(p.raw), QueryVoltage)
			if err == nil {
				// empty or textual payloads fail at value access, never silently
				_, err = reply.IntValue()
			}
			require.Error(t, err)

			var parseErr *PacketParsingError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseTruncationAlwaysFails(t *testing.T) {
	full := "*5QV2182\r"
	for cut := 1; cut <= len(full); cut++ {
		truncated := full[:len(full)-cut]
		reply, err := ParseReply([]byte(truncated), QueryVoltage)
		if err == nil {
			_, err = reply.IntValue()
		}
		assert.Error(t, err, "truncated to %q", truncated)
	}
}

func TestParseErrorCarriesRawText(t *testing.T) {
	_, err := ParseReply([]byte("garbage\r"), QueryVoltage)
	var parseErr *PacketParsingError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "garbage\r", parseErr.Raw)
}
