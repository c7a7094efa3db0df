package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentFetches(t *testing.T) {
	var (
		g       SingleFlight
		fetches atomic.Int32
		shared  atomic.Int32
		ready   sync.WaitGroup
		done    sync.WaitGroup
	)
	release := make(chan struct{})

	const callers = 8
	ready.Add(callers)
	done.Add(callers)
	for i := range callers {
		go func() {
			defer done.Done()
			ready.Done()
			v, err, wasShared := g.Do("/bootstrap-static/", func() (any, error) {
				fetches.Add(1)
				<-release
				return 38, nil
			})
			if err != nil || v.(int) != 38 {
				t.Errorf("caller %d: v=%v err=%v", i, v, err)
			}
			if wasShared {
				shared.Add(1)
			}
		}()
	}

	ready.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	done.Wait()

	if got := fetches.Load(); got != 1 {
		t.Fatalf("expected one upstream fetch, got %d", got)
	}
	if shared.Load() == 0 {
		t.Fatalf("expected the result to be shared")
	}
}

func TestSingleFlight_ForgetStartsFreshCall(t *testing.T) {
	var g SingleFlight
	var calls int

	for range 2 {
		if _, err, _ := g.Do("/entry/1/history/", func() (any, error) {
			calls++
			return nil, nil
		}); err != nil {
			t.Fatalf("do: %v", err)
		}
		g.Forget("/entry/1/history/")
	}

	if calls != 2 {
		t.Fatalf("expected sequential calls to both run, got %d", calls)
	}
}
