package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func registerStub(t *testing.T) {
	t.Helper()
	Clear()
	Register(newStubTemplate())
	t.Cleanup(Clear)
}

func TestRegistry(t *testing.T) {
	registerStub(t)

	if _, ok := Get("stub"); !ok {
		t.Fatal("stub template not registered")
	}
	if _, err := Lookup("missing"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("Lookup err = %v, want ErrUnknownTemplate", err)
	}
	if keys := Keys(); len(keys) != 1 || keys[0] != "stub" {
		t.Errorf("Keys = %v", keys)
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(newStubTemplate())
}

func TestService_SessionFlow(t *testing.T) {
	registerStub(t)
	clock := &fakeClock{now: time.UnixMilli(1700000000000)}
	svc := NewService(Options{MinPasteLength: DefaultMinPasteLength, Now: clock.Now})
	ctx := context.Background()

	if _, err := svc.PasteData(ctx, "c1", "stub", stubPaste); err != nil {
		t.Fatalf("PasteData: %v", err)
	}
	if _, err := svc.PasteEmails(ctx, "c1", "stub", "a@co.com"); err != nil {
		t.Fatalf("PasteEmails: %v", err)
	}
	if _, err := svc.Output("c1", "stub"); !errors.Is(err, ErrNothingGenerated) {
		t.Errorf("Output before Process err = %v", err)
	}
	if _, err := svc.Process(ctx, "c1", "stub", Params{Component: "C"}); err != nil {
		t.Fatalf("Process: %v", err)
	}

	// Another client sees its own empty session.
	if _, err := svc.Output("c2", "stub"); !errors.Is(err, ErrNothingGenerated) {
		t.Errorf("other client Output err = %v", err)
	}

	out, err := svc.Output("c1", "stub")
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if out.Summary.Rows != 2 {
		t.Errorf("rows = %d, want 2", out.Summary.Rows)
	}

	if _, err := svc.Clear(ctx, "c1", "stub"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := svc.PasteData(ctx, "c1", "nope", stubPaste); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("unknown template err = %v", err)
	}
}

func TestService_Generate(t *testing.T) {
	registerStub(t)
	svc := NewService(Options{MaxRowsPerFile: 1})

	out, err := svc.Generate(context.Background(), "stub", PipelineInput{
		Data:   stubPaste,
		Emails: "a@co.com",
		Params: Params{Component: "C"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(out.Files) != 2 {
		t.Errorf("files = %d, want 2", len(out.Files))
	}
}

func TestService_GenerateRowLimit(t *testing.T) {
	registerStub(t)
	svc := NewService(Options{MaxRows: 1})

	_, err := svc.Generate(context.Background(), "stub", PipelineInput{
		Data:   stubPaste,
		Emails: "a@co.com",
		Params: Params{Component: "C"},
	})
	if !errors.Is(err, ErrTooManyRows) {
		t.Errorf("err = %v, want ErrTooManyRows", err)
	}
}

func TestService_Sweep(t *testing.T) {
	registerStub(t)
	clock := &fakeClock{now: time.UnixMilli(1700000000000)}
	svc := NewService(Options{SessionTTL: time.Minute, Now: clock.Now})

	if _, err := svc.Session("c1", "stub"); err != nil {
		t.Fatalf("Session: %v", err)
	}
	clock.Advance(2 * time.Minute)
	if removed := svc.runSweep(); removed != 1 {
		t.Errorf("runSweep removed %d, want 1", removed)
	}
}

func TestService_StartJanitorStops(t *testing.T) {
	svc := NewService(Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.StartJanitor(ctx, JanitorConfig{Interval: time.Millisecond})
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("janitor did not stop after cancel")
	}
}
