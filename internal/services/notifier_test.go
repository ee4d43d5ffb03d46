package services

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// overlapConn flags any two WriteJSON calls that run at the same time.
type overlapConn struct {
	writing    int32
	overlapped int32
	writes     int32
	closed     bool
}

func (c *overlapConn) WriteJSON(v interface{}) error {
	if !atomic.CompareAndSwapInt32(&c.writing, 0, 1) {
		atomic.StoreInt32(&c.overlapped, 1)
	}
	atomic.AddInt32(&c.writes, 1)
	atomic.StoreInt32(&c.writing, 0)
	return nil
}

func (c *overlapConn) Close() error {
	c.closed = true
	return nil
}

func TestHubSerializesWritesPerConnection(t *testing.T) {
	hub := NewNotificationHub()
	conn := &overlapConn{}
	hub.Register("client-a", conn)

	var wg sync.WaitGroup
	const publishers = 8
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				hub.Publish(Notification{Level: "success", Event: "memory.saved"})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), atomic.LoadInt32(&conn.overlapped), "writes on one connection never overlap")
	assert.Equal(t, int32(publishers*50), atomic.LoadInt32(&conn.writes))
}

func TestHubRegisterReplacesAndClosesOldConnection(t *testing.T) {
	hub := NewNotificationHub()
	old := &overlapConn{}
	hub.Register("client-a", old)
	hub.Register("client-a", &overlapConn{})

	assert.True(t, old.closed, "a replaced connection is closed")

	hub.Publish(Notification{Level: "success", Event: "memory.saved"})
	require.Equal(t, int32(0), atomic.LoadInt32(&old.writes), "nothing reaches the replaced connection")
}
