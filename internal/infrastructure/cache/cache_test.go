package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCache_GetOrCompute_ReadThrough tests that a valid entry short-circuits compute
func TestCache_GetOrCompute_ReadThrough(t *testing.T) {
	c := New[string](DefaultTTL)
	computeCalls := 0
	compute := func(ctx context.Context) (string, error) {
		computeCalls++
		return "value", nil
	}

	first, err := c.GetOrCompute(context.Background(), "spiget:search:vault:10", compute)
	require.NoError(t, err)
	assert.Equal(t, "value", first)

	second, err := c.GetOrCompute(context.Background(), "spiget:search:vault:10", compute)
	require.NoError(t, err)
	assert.Equal(t, "value", second)

	assert.Equal(t, 1, computeCalls, "Two calls within TTL must invoke compute once")
}

// TestCache_GetOrCompute_ExpiryRefreshes tests that an expired entry recomputes
func TestCache_GetOrCompute_ExpiryRefreshes(t *testing.T) {
	c := New[int](5 * time.Minute)
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	computeCalls := 0
	compute := func(ctx context.Context) (int, error) {
		computeCalls++
		return computeCalls, nil
	}

	value, err := c.GetOrCompute(context.Background(), "k", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	// One second inside the TTL window: still a hit.
	current = current.Add(5*time.Minute - time.Second)
	value, err = c.GetOrCompute(context.Background(), "k", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, value, "Entry just inside the TTL should still be served")

	// Exactly at the TTL boundary the entry is no longer valid.
	current = current.Add(time.Second)
	value, err = c.GetOrCompute(context.Background(), "k", compute)
	require.NoError(t, err)
	assert.Equal(t, 2, value, "Entry at or past the TTL must be recomputed")
	assert.Equal(t, 2, computeCalls)
}

// TestCache_GetOrCompute_FailureDoesNotPoison tests that errors write nothing
func TestCache_GetOrCompute_FailureDoesNotPoison(t *testing.T) {
	c := New[string](DefaultTTL)
	failNext := true
	computeCalls := 0
	compute := func(ctx context.Context) (string, error) {
		computeCalls++
		if failNext {
			return "", errors.New("catalog unreachable")
		}
		return "fresh", nil
	}

	_, err := c.GetOrCompute(context.Background(), "k", compute)
	require.Error(t, err, "Compute failure must propagate to the caller")

	failNext = false
	value, err := c.GetOrCompute(context.Background(), "k", compute)
	require.NoError(t, err)
	assert.Equal(t, "fresh", value)
	assert.Equal(t, 2, computeCalls, "A failed fetch must not leave an entry behind")
}

// TestCache_GetOrCompute_DistinctKeysAreIndependent tests per-key isolation
func TestCache_GetOrCompute_DistinctKeysAreIndependent(t *testing.T) {
	c := New[string](DefaultTTL)
	computeCalls := 0
	computeFor := func(result string) func(ctx context.Context) (string, error) {
		return func(ctx context.Context) (string, error) {
			computeCalls++
			return result, nil
		}
	}

	a, err := c.GetOrCompute(context.Background(), "spiget:resource:1", computeFor("a"))
	require.NoError(t, err)
	b, err := c.GetOrCompute(context.Background(), "modrinth:project:1", computeFor("b"))
	require.NoError(t, err)

	assert.Equal(t, "a", a)
	assert.Equal(t, "b", b)
	assert.Equal(t, 2, computeCalls, "Namespaced keys must not collide")
}

// TestCache_GetOrCompute_ConcurrentSameKey_SharesOneFlight tests in-flight deduplication
func TestCache_GetOrCompute_ConcurrentSameKey_SharesOneFlight(t *testing.T) {
	c := New[string](DefaultTTL)
	var computeCalls atomic.Int32
	compute := func(ctx context.Context) (string, error) {
		computeCalls.Add(1)
		time.Sleep(50 * time.Millisecond)
		return "shared", nil
	}

	const callers = 16
	results := make([]string, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			value, err := c.GetOrCompute(context.Background(), "k", compute)
			assert.NoError(t, err)
			results[i] = value
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), computeCalls.Load(), "Concurrent identical requests must share one computation")
	for _, value := range results {
		assert.Equal(t, "shared", value, "Every waiter receives the shared result")
	}
}

// TestCache_GetOrCompute_ConcurrentFailure_ReachesAllWaiters tests shared error propagation
func TestCache_GetOrCompute_ConcurrentFailure_ReachesAllWaiters(t *testing.T) {
	c := New[string](DefaultTTL)
	var computeCalls atomic.Int32
	compute := func(ctx context.Context) (string, error) {
		computeCalls.Add(1)
		time.Sleep(50 * time.Millisecond)
		return "", errors.New("boom")
	}

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.GetOrCompute(context.Background(), "k", compute)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), computeCalls.Load())
	for _, err := range errs {
		assert.Error(t, err, "The shared failure reaches every waiter")
	}
}

// TestNew_FallsBackToDefaultTTL tests constructor defaulting
func TestNew_FallsBackToDefaultTTL(t *testing.T) {
	c := New[string](0)
	assert.Equal(t, DefaultTTL, c.ttl)

	c = New[string](-time.Minute)
	assert.Equal(t, DefaultTTL, c.ttl)
}
