package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chaching/internal/cache"
)

func newTestClient(retries int) (*Client, *cache.Cache) {
	c := cache.New(64, time.Minute, time.Hour)
	return New(c, retries, nil), c
}

func TestClient_FetchCachesResult(t *testing.T) {
	client, _ := newTestClient(0)

	calls := 0
	fn := func(ctx context.Context) (any, error) {
		calls++
		return "payload", nil
	}

	value, err := client.Fetch(context.Background(), "expenses|list", fn)
	require.NoError(t, err)
	assert.Equal(t, "payload", value)

	value, err = client.Fetch(context.Background(), "expenses|list", fn)
	require.NoError(t, err)
	assert.Equal(t, "payload", value)

	assert.Equal(t, 1, calls, "second fetch must be served from cache")
}

func TestClient_FetchRefetchesAfterInvalidate(t *testing.T) {
	client, _ := newTestClient(0)

	calls := 0
	fn := func(ctx context.Context) (any, error) {
		calls++
		return calls, nil
	}

	_, err := client.Fetch(context.Background(), "expenses|list", fn)
	require.NoError(t, err)

	client.Invalidate(ResourceExpenses)

	value, err := client.Fetch(context.Background(), "expenses|list", fn)
	require.NoError(t, err)
	assert.Equal(t, 2, value, "invalidated key must hit the network again")
}

func TestClient_CoalescesConcurrentFetches(t *testing.T) {
	client, _ := newTestClient(0)

	var calls atomic.Int32
	release := make(chan struct{})
	fn := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]any, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, err := client.Fetch(context.Background(), "expenses|list", fn)
			assert.NoError(t, err)
			results[i] = value
		}(i)
	}

	// Give every worker time to reach the flight group before releasing.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "identical concurrent fetches must share one call")
	for _, value := range results {
		assert.Equal(t, "shared", value)
	}
}

func TestClient_DistinctKeysDoNotCollide(t *testing.T) {
	client, _ := newTestClient(0)

	_, err := client.Fetch(context.Background(), Key(ResourceExpenses, "list", "a"), func(ctx context.Context) (any, error) {
		return "a", nil
	})
	require.NoError(t, err)

	value, err := client.Fetch(context.Background(), Key(ResourceExpenses, "list", "b"), func(ctx context.Context) (any, error) {
		return "b", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "b", value)
}

func TestClient_RetriesReads(t *testing.T) {
	client, _ := newTestClient(1)

	calls := 0
	value, err := client.Fetch(context.Background(), "expenses|list", func(ctx context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient")
		}
		return "recovered", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "recovered", value)
	assert.Equal(t, 2, calls, "one automatic retry expected")
}

func TestClient_NoRetriesWhenDisabled(t *testing.T) {
	client, _ := newTestClient(0)

	calls := 0
	_, err := client.Fetch(context.Background(), "expenses|list", func(ctx context.Context) (any, error) {
		calls++
		return nil, errors.New("down")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_FailedFetchNotCached(t *testing.T) {
	client, _ := newTestClient(0)

	calls := 0
	fn := func(ctx context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("down")
		}
		return "up", nil
	}

	_, err := client.Fetch(context.Background(), "expenses|list", fn)
	require.Error(t, err)

	value, err := client.Fetch(context.Background(), "expenses|list", fn)
	require.NoError(t, err)
	assert.Equal(t, "up", value)
}

func TestFetchAs_TypedResult(t *testing.T) {
	client, _ := newTestClient(0)

	value, err := FetchAs(context.Background(), client, "categories|list", func(ctx context.Context) ([]string, error) {
		return []string{"Food", "Transport"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Transport"}, value)
}

func TestWithRetry_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := WithRetry(ctx, 5, func(ctx context.Context) (any, error) {
		calls++
		cancel()
		return nil, errors.New("down")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls, "cancellation must stop the retry loop")
}

func TestKey(t *testing.T) {
	assert.Equal(t, "expenses", Key(ResourceExpenses))
	assert.Equal(t, "expenses|list|f", Key(ResourceExpenses, "list", "f"))
}
