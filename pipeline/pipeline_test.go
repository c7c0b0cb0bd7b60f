package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestPipelineRunChainsStages(t *testing.T) {
	p := New(
		func(ctx context.Context, v int) (int, error) { return v + 1, nil },
		func(ctx context.Context, v int) (int, error) { return v * 2, nil },
		func(ctx context.Context, v int) (int, error) { return v - 3, nil },
	)

	got, err := p.Run(context.Background(), 5)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// ((5+1)*2)-3
	if got != 9 {
		t.Errorf("Expected 9, got %d", got)
	}
}

func TestPipelineStageFailure(t *testing.T) {
	stageErr := errors.New("stage exploded")
	thirdRan := false

	p := New(
		func(ctx context.Context, v int) (int, error) { return v, nil },
		func(ctx context.Context, v int) (int, error) { return 0, stageErr },
		func(ctx context.Context, v int) (int, error) {
			thirdRan = true
			return v, nil
		},
	)

	var events []Event
	p.Events().On(func(ev Event) { events = append(events, ev) })

	got, err := p.Run(context.Background(), 1)
	if err == nil {
		t.Fatal("Expected run to fail")
	}

	var serr *StageError
	if !errors.As(err, &serr) {
		t.Fatalf("Expected *StageError, got %T", err)
	}
	if serr.Stage != 1 {
		t.Errorf("Expected failing stage 1, got %d", serr.Stage)
	}
	if !errors.Is(err, stageErr) {
		t.Error("Expected StageError to wrap the original cause")
	}
	if thirdRan {
		t.Error("Expected stage 2 never to run after stage 1 failed")
	}
	if got != 0 {
		t.Errorf("Expected zero value on failure, got %d", got)
	}

	// {0 run} {0 ok} {1 run} {1 fail}; nothing for stage 2.
	want := []Event{
		{Stage: 0, Status: StatusRun},
		{Stage: 0, Status: StatusOK},
		{Stage: 1, Status: StatusRun},
		{Stage: 1, Status: StatusFail, Err: stageErr},
	}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d: %v", len(want), len(events), events)
	}
	for i, ev := range events {
		if ev.Stage != want[i].Stage || ev.Status != want[i].Status {
			t.Errorf("Event %d: expected %+v, got %+v", i, want[i], ev)
		}
	}
	if events[3].Err == nil {
		t.Error("Expected fail event to carry the stage error")
	}
}

func TestPipelineProgressEventsOnSuccess(t *testing.T) {
	p := New(
		func(ctx context.Context, v string) (string, error) { return v + "a", nil },
		func(ctx context.Context, v string) (string, error) { return v + "b", nil },
	)

	var events []Event
	p.Events().On(func(ev Event) { events = append(events, ev) })

	if _, err := p.Run(context.Background(), ""); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(events) != 4 {
		t.Fatalf("Expected 4 events, got %d", len(events))
	}
	for i, ev := range events {
		wantStage := i / 2
		wantStatus := StatusRun
		if i%2 == 1 {
			wantStatus = StatusOK
		}
		if ev.Stage != wantStage || ev.Status != wantStatus {
			t.Errorf("Event %d: expected stage %d status %s, got %+v", i, wantStage, wantStatus, ev)
		}
	}
}

func TestPipelineEmpty(t *testing.T) {
	p := New[int]()

	got, err := p.Run(context.Background(), 7)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got != 7 {
		t.Errorf("Expected input passed through empty pipeline, got %d", got)
	}
}

func TestPipelineContextCancellation(t *testing.T) {
	secondRan := false

	ctx, cancel := context.WithCancel(context.Background())

	p := New(
		func(ctx context.Context, v int) (int, error) {
			cancel()
			return v, nil
		},
		func(ctx context.Context, v int) (int, error) {
			secondRan = true
			return v, nil
		},
	)

	_, err := p.Run(ctx, 1)

	var serr *StageError
	if !errors.As(err, &serr) {
		t.Fatalf("Expected *StageError, got %v", err)
	}
	if serr.Stage != 1 {
		t.Errorf("Expected cancellation reported at stage 1, got %d", serr.Stage)
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("Expected error to wrap context.Canceled")
	}
	if secondRan {
		t.Error("Expected stage after cancellation not to run")
	}
}

func TestPipelineRunsAreIndependent(t *testing.T) {
	p := New(
		func(ctx context.Context, v int) (int, error) { return v + 1, nil },
		func(ctx context.Context, v int) (int, error) { return v * 10, nil },
	)

	ctx := context.Background()

	// Repeated runs see no shared cursor.
	for i := 0; i < 3; i++ {
		got, err := p.Run(ctx, i)
		if err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
		if got != (i+1)*10 {
			t.Errorf("Run %d: expected %d, got %d", i, (i+1)*10, got)
		}
	}

	// Concurrent runs on the same instance are independent.
	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := p.Run(ctx, i)
			if err != nil {
				t.Errorf("Concurrent run %d failed: %v", i, err)
				return
			}
			results[i] = got
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != (i+1)*10 {
			t.Errorf("Concurrent run %d: expected %d, got %d", i, (i+1)*10, got)
		}
	}
}
