package lss

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDriver(port Port) *Driver {
	return NewDriver(newTestSession(port), zap.NewNop())
}

func TestDriverMoveToPosition(t *testing.T) {
	port := &fakePort{}
	driver := newTestDriver(port)

	require.NoError(t, driver.MoveToPosition(context.Background(), 5, 30.5))
	require.Len(t, port.writes, 1)
	assert.Equal(t, []byte("#5D305\r"), port.writes[0])
}

func TestDriverMoveWithModifiers(t *testing.T) {
	port := &fakePort{}
	driver := newTestDriver(port)

	err := driver.MoveToPositionWithModifiers(context.Background(), 5, 90, SpeedDegrees(100), Timed(2500))
	require.NoError(t, err)
	require.Len(t, port.writes, 1)
	assert.Equal(t, []byte("#5D900SD100T2500\r"), port.writes[0])
}

func TestDriverSetColor(t *testing.T) {
	port := &fakePort{}
	driver := newTestDriver(port)

	require.NoError(t, driver.SetColor(context.Background(), 5, LedGreen))
	require.Len(t, port.writes, 1)
	assert.Equal(t, []byte("#5LED2\r"), port.writes[0])
}

func TestDriverQueryColor(t *testing.T) {
	port := &fakePort{}
	port.reply("*5QLED6\r")
	driver := newTestDriver(port)

	color, err := driver.QueryColor(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, LedMagenta, color)
}

func TestDriverQueryVoltageScaling(t *testing.T) {
	port := &fakePort{}
	port.reply("*5QV11200\r")
	driver := newTestDriver(port)

	volts, err := driver.QueryVoltage(context.Background(), 5)
	require.NoError(t, err)
	assert.InDelta(t, 11.2, volts, 0.0001)
}

func TestDriverQueryTemperatureScaling(t *testing.T) {
	port := &fakePort{}
	port.reply("*5QT564\r")
	driver := newTestDriver(port)

	celsius, err := driver.QueryTemperature(context.Background(), 5)
	require.NoError(t, err)
	assert.InDelta(t, 56.4, celsius, 0.0001)
}

func TestDriverQueryCurrentScaling(t *testing.T) {
	port := &fakePort{}
	port.reply("*5QC240\r")
	driver := newTestDriver(port)

	amps, err := driver.QueryCurrent(context.Background(), 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.24, amps, 0.0001)
}

func TestDriverQueryPosition(t *testing.T) {
	port := &fakePort{}
	port.reply("*5QD-105\r")
	driver := newTestDriver(port)

	degrees, err := driver.QueryPosition(context.Background(), 5)
	require.NoError(t, err)
	assert.InDelta(t, -10.5, degrees, 0.0001)
}

func TestDriverQueryStatus(t *testing.T) {
	port := &fakePort{}
	port.reply("*5Q10\r")
	driver := newTestDriver(port)

	status, err := driver.QueryStatus(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, StatusSafeMode, status)
}

func TestDriverQuerySafetyStatus(t *testing.T) {
	port := &fakePort{}
	port.reply("*5Q12\r")
	driver := newTestDriver(port)

	status, err := driver.QuerySafetyStatus(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, SafetyVoltageOutOfRange, status)
	require.Len(t, port.writes, 1)
	assert.Equal(t, []byte("#5Q1\r"), port.writes[0])
}

func TestDriverQueryStatusRejectsUnknownCode(t *testing.T) {
	port := &fakePort{}
	port.reply("*5Q42\r")
	driver := newTestDriver(port)

	_, err := driver.QueryStatus(context.Background(), 5)
	var parseErr *PacketParsingError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "MotorStatus")
}

func TestDriverQueryModel(t *testing.T) {
	port := &fakePort{}
	port.reply("*5QMSLSS-HT1\r")
	driver := newTestDriver(port)

	model, err := driver.QueryModel(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, ModelHT1, model.Kind)
}

func TestDriverConfigCommands(t *testing.T) {
	port := &fakePort{}
	driver := newTestDriver(port)
	ctx := context.Background()

	require.NoError(t, driver.SetMotionProfile(ctx, 5, false))
	require.NoError(t, driver.SetAngularStiffness(ctx, 5, -4))
	require.NoError(t, driver.SetAngularHoldingStiffness(ctx, 5, -4))
	require.NoError(t, driver.SetFilterPositionCount(ctx, 5, 4))
	require.NoError(t, driver.SetLedBlinking(ctx, 5, []LedBlink{BlinkLimp, BlinkTraveling}))

	require.Len(t, port.writes, 5)
	assert.Equal(t, []byte("#5EM0\r"), port.writes[0])
	assert.Equal(t, []byte("#5AS-4\r"), port.writes[1])
	assert.Equal(t, []byte("#5AH-4\r"), port.writes[2])
	assert.Equal(t, []byte("#5FPC4\r"), port.writes[3])
	assert.Equal(t, []byte("#5CLB33\r"), port.writes[4])
}

func TestDriverWheelMode(t *testing.T) {
	port := &fakePort{}
	driver := newTestDriver(port)
	ctx := context.Background()

	require.NoError(t, driver.SetRotationSpeedDegrees(ctx, 5, 90))
	require.NoError(t, driver.SetRotationSpeedRPM(ctx, 5, 15, CurrentLimp(500)))

	require.Len(t, port.writes, 2)
	assert.Equal(t, []byte("#5WD900\r"), port.writes[0])
	assert.Equal(t, []byte("#5WR15CL500\r"), port.writes[1])
}

func TestDriverActions(t *testing.T) {
	port := &fakePort{}
	driver := newTestDriver(port)
	ctx := context.Background()

	require.NoError(t, driver.Limp(ctx, 5))
	require.NoError(t, driver.HaltHold(ctx, 5))
	require.NoError(t, driver.ResetServo(ctx, BroadcastID))

	require.Len(t, port.writes, 3)
	assert.Equal(t, []byte("#5L\r"), port.writes[0])
	assert.Equal(t, []byte("#5H\r"), port.writes[1])
	assert.Equal(t, []byte("#254RESET\r"), port.writes[2])
}
