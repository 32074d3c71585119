package lss

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakePort is an in-memory Port. Each Write records the frame; each ReadUntil
// pops the next scripted result. A small delay inside ReadUntil widens the
// window for the serialization test.
type fakePort struct {
	mu      sync.Mutex
	writes  [][]byte
	scripts []scriptedRead
	drains  int
	closed  bool

	writeErr  error
	readDelay time.Duration

	// inFlight flags an exchange between Write and ReadUntil; a second Write
	// during that window means the session interleaved two exchanges
	inFlight    bool
	interleaved bool
}

type scriptedRead struct {
	data []byte
	err  error
}

func (p *fakePort) Write(ctx context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inFlight {
		p.interleaved = true
	}
	p.inFlight = true
	if p.writeErr != nil {
		p.inFlight = false
		return p.writeErr
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	p.writes = append(p.writes, buf)
	return nil
}

func (p *fakePort) ReadUntil(ctx context.Context, delimiter byte, timeout time.Duration) ([]byte, error) {
	if p.readDelay > 0 {
		time.Sleep(p.readDelay)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight = false
	if len(p.scripts) == 0 {
		return nil, ErrTimeout
	}
	next := p.scripts[0]
	p.scripts = p.scripts[1:]
	return next.data, next.err
}

func (p *fakePort) Drain(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drains++
	p.inFlight = false
	return nil
}

func (p *fakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *fakePort) reply(raw string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scripts = append(p.scripts, scriptedRead{data: []byte(raw)})
}

func (p *fakePort) failRead(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scripts = append(p.scripts, scriptedRead{err: err})
}

func newTestSession(port Port) *Session {
	return NewSession(port, 50*time.Millisecond, zap.NewNop())
}

func TestExchangeQuery(t *testing.T) {
	port := &fakePort{}
	port.reply("*5QV11200\r")
	session := newTestSession(port)

	reply, err := session.Exchange(context.Background(), Plain(5, QueryVoltage))
	require.NoError(t, err)

	value, err := reply.IntValue()
	require.NoError(t, err)
	assert.Equal(t, int32(11200), value)
	require.Len(t, port.writes, 1)
	assert.Equal(t, []byte("#5QV\r"), port.writes[0])
}

func TestExchangeActionSkipsRead(t *testing.T) {
	port := &fakePort{}
	session := newTestSession(port)

	reply, err := session.Exchange(context.Background(), WithValue(5, MoveDegrees, 30))
	require.NoError(t, err)
	assert.Nil(t, reply)
	require.Len(t, port.writes, 1)
	assert.Equal(t, []byte("#5D30\r"), port.writes[0])
	// nothing was scripted, so any read would have produced ErrTimeout
}

func TestBroadcastSkipsRead(t *testing.T) {
	port := &fakePort{}
	session := newTestSession(port)

	// a query to broadcast never yields a response
	reply, err := session.Exchange(context.Background(), Plain(BroadcastID, QueryVoltage))
	require.NoError(t, err)
	assert.Nil(t, reply)
	require.Len(t, port.writes, 1)
	assert.Equal(t, []byte("#254QV\r"), port.writes[0])
}

func TestExchangeMisuseNeverTouchesWire(t *testing.T) {
	port := &fakePort{}
	session := newTestSession(port)

	_, err := session.Exchange(context.Background(), Plain(300, QueryVoltage))
	var addrErr *InvalidAddressError
	require.ErrorAs(t, err, &addrErr)
	assert.Empty(t, port.writes)
}

func TestWriteFailureSurfacesSendingError(t *testing.T) {
	port := &fakePort{writeErr: assert.AnError}
	session := newTestSession(port)

	_, err := session.Exchange(context.Background(), Plain(5, QueryVoltage))
	assert.ErrorIs(t, err, ErrSending)
}

func TestTimeoutThenRecovery(t *testing.T) {
	port := &fakePort{}
	port.failRead(ErrTimeout)
	port.reply("*5QV11200\r")
	session := newTestSession(port)

	_, err := session.Exchange(context.Background(), Plain(5, QueryVoltage))
	require.ErrorIs(t, err, ErrTimeout)

	// the next exchange drains late bytes before writing, then succeeds
	reply, err := session.Exchange(context.Background(), Plain(5, QueryVoltage))
	require.NoError(t, err)
	value, err := reply.IntValue()
	require.NoError(t, err)
	assert.Equal(t, int32(11200), value)
	assert.Equal(t, 1, port.drains)
}

func TestParseErrorLeavesSessionUsable(t *testing.T) {
	port := &fakePort{}
	port.reply("garbage\r")
	port.reply("*5QV11200\r")
	session := newTestSession(port)

	_, err := session.Exchange(context.Background(), Plain(5, QueryVoltage))
	var parseErr *PacketParsingError
	require.ErrorAs(t, err, &parseErr)

	// a malformed reply is not a transport fault; no drain, session still works
	reply, err := session.Exchange(context.Background(), Plain(5, QueryVoltage))
	require.NoError(t, err)
	value, err := reply.IntValue()
	require.NoError(t, err)
	assert.Equal(t, int32(11200), value)
	assert.Equal(t, 0, port.drains)
}

func TestConcurrentCallersAreSerialized(t *testing.T) {
	const callers = 8
	port := &fakePort{readDelay: 2 * time.Millisecond}
	for i := 0; i < callers; i++ {
		port.reply("*5QV11200\r")
	}
	session := newTestSession(port)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := session.Exchange(context.Background(), Plain(5, QueryVoltage))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.False(t, port.interleaved, "a second write was issued mid-exchange")
	assert.Len(t, port.writes, callers)
}

func TestCloseReleasesPort(t *testing.T) {
	port := &fakePort{}
	session := newTestSession(port)
	require.NoError(t, session.Close())
	assert.True(t, port.closed)
}
