package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_SingleFileChange(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(testFile, []byte(`{}`), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	watcher, err := NewWatcher(ctx, testFile)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(50 * time.Millisecond); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(testFile, []byte(`{"ui": {}}`), 0644); err != nil {
		t.Fatalf("Failed to modify test file: %v", err)
	}

	select {
	case <-watcher.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for file change event")
	case err := <-watcher.Errors():
		t.Fatalf("Watcher error: %v", err)
	}
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(testFile, []byte(""), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	watcher, err := NewWatcher(ctx, testFile)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	debounce := 200 * time.Millisecond
	if err := watcher.Start(debounce); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(testFile, []byte("# edit\n"), 0644); err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	eventCount := 0
	timeout := time.After(debounce + 500*time.Millisecond)
	for {
		select {
		case <-watcher.Events():
			eventCount++
		case <-timeout:
			if eventCount != 1 {
				t.Errorf("Expected 1 debounced event, got %d", eventCount)
			}
			return
		case err := <-watcher.Errors():
			t.Fatalf("Watcher error: %v", err)
		}
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "config.json")
	other := filepath.Join(dir, "settings.json")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	watcher, err := NewWatcher(ctx, watched)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(50 * time.Millisecond); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(other, []byte(`{}`), 0644); err != nil {
		t.Fatalf("Failed to write other file: %v", err)
	}

	select {
	case <-watcher.Events():
		t.Fatal("Unexpected event for unwatched file")
	case <-time.After(300 * time.Millisecond):
	}

	// Creating the watched file later is still noticed.
	if err := os.WriteFile(watched, []byte(`{}`), 0644); err != nil {
		t.Fatalf("Failed to create watched file: %v", err)
	}
	select {
	case <-watcher.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for create event")
	}
}

func TestWatcher_ContextCancellation(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "config.json")

	ctx, cancel := context.WithCancel(context.Background())
	watcher, err := NewWatcher(ctx, testFile)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(50 * time.Millisecond); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	cancel()

	select {
	case _, ok := <-watcher.Events():
		if ok {
			t.Fatal("Expected events channel to close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for watcher to stop")
	}
}

func TestWatcher_StopTwice(t *testing.T) {
	watcher, err := NewWatcher(context.Background(), filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	if err := watcher.Stop(); err != nil {
		t.Fatalf("First stop failed: %v", err)
	}
	if err := watcher.Stop(); err != nil {
		t.Fatalf("Second stop failed: %v", err)
	}
}
