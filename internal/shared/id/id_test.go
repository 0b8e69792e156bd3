package id

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMonotonic(t *testing.T) {
	gen := NewGenerator()

	prev := gen.Generate()
	for i := 0; i < 100; i++ {
		next := gen.Generate()
		assert.Equal(t, 1, next.Compare(prev), "ULIDs should strictly increase")
		prev = next
	}
}

func TestNewInvocationID(t *testing.T) {
	inv := NewInvocationID()

	assert.True(t, strings.HasPrefix(inv.String(), InvocationPrefix+"_"))

	ts, err := inv.Timestamp()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, 5*time.Second)
}

func TestInvocationIDTimestampInvalid(t *testing.T) {
	_, err := InvocationID("inv_not-a-ulid").Timestamp()
	assert.Error(t, err)
}

func TestNewRequestID(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()

	assert.True(t, strings.HasPrefix(a.String(), RequestPrefix+"_"))
	assert.NotEqual(t, a, b)
}

func TestNewConnectionID(t *testing.T) {
	conn := NewConnectionID()

	raw, found := strings.CutPrefix(conn.String(), ConnectionPrefix+"_")
	require.True(t, found)
	_, err := uuid.Parse(raw)
	assert.NoError(t, err)
}

func TestConcurrentGeneration(t *testing.T) {
	const workers, perWorker = 8, 200

	var (
		mu   sync.Mutex
		seen = make(map[InvocationID]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				inv := NewInvocationID()
				mu.Lock()
				seen[inv] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}
