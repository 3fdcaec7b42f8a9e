package keypad

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDispatcherFIFO(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []Event
	d := NewDispatcher(8, 0, func(ev Event) {
		got = append(got, ev)
		if len(got) == 4 {
			cancel()
		}
	}, quiet)

	want := []Event{{3, 1}, {1, 2}, {4, 0}, {2, 3}}
	for _, ev := range want {
		if err := d.Post(ev); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("handled %v, want %v", got, want)
		}
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, 0, func(Event) {}, quiet)

	if err := d.Post(Event{1, 1}); err != nil {
		t.Fatal(err)
	}
	if err := d.Post(Event{2, 1}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("second Post = %v, want ErrQueueFull", err)
	}
	if d.Dropped() != 1 {
		t.Fatalf("Dropped = %d", d.Dropped())
	}
}

func TestDispatcherSettleDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stamps []time.Time
	d := NewDispatcher(4, 5*time.Millisecond, func(Event) {
		stamps = append(stamps, time.Now())
		if len(stamps) == 3 {
			cancel()
		}
	}, quiet)
	for i := 0; i < 3; i++ {
		_ = d.Post(Event{Column: 1, Row: 1})
	}
	_ = d.Run(ctx)

	if len(stamps) != 3 {
		t.Fatalf("handled %d events", len(stamps))
	}
	if gap := stamps[2].Sub(stamps[0]); gap < 10*time.Millisecond {
		t.Fatalf("three events handled within %v", gap)
	}
}

func TestDispatcherSerializesHandlers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const n = 16
	var active, overlap, handled atomic.Int32
	d := NewDispatcher(n, 0, func(Event) {
		if active.Add(1) > 1 {
			overlap.Add(1)
		}
		time.Sleep(100 * time.Microsecond)
		active.Add(-1)
		if handled.Add(1) == n {
			cancel()
		}
	}, quiet)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = d.Post(Event{Column: i%Columns + 1, Row: i % Rows})
		}(i)
	}
	wg.Wait()

	_ = d.Run(ctx)
	if overlap.Load() != 0 {
		t.Fatalf("%d handlers overlapped", overlap.Load())
	}
	if handled.Load() != n {
		t.Fatalf("handled %d of %d", handled.Load(), n)
	}
}
