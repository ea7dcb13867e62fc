package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	// absent before any put
	if _, ok, err := store.Get(ctx, DefaultSessionID); err != nil || ok {
		t.Errorf("expected absent context, got ok=%v err=%v", ok, err)
	}
	if exists, _ := store.Exists(ctx, DefaultSessionID); exists {
		t.Error("Exists should be false before any Put")
	}

	if err := store.Put(ctx, DefaultSessionID, "hello world"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	text, ok, err := store.Get(ctx, DefaultSessionID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || text != "hello world" {
		t.Errorf("expected stored transcription, got ok=%v text=%q", ok, text)
	}
	if exists, _ := store.Exists(ctx, DefaultSessionID); !exists {
		t.Error("Exists should be true after Put")
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	store.Put(ctx, "s1", "first transcription")
	store.Put(ctx, "s1", "second transcription")

	text, ok, _ := store.Get(ctx, "s1")
	if !ok || text != "second transcription" {
		t.Errorf("expected last write to win, got ok=%v text=%q", ok, text)
	}
}

func TestMemoryStoreSessionIsolation(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	store.Put(ctx, "a", "context a")
	store.Put(ctx, "b", "context b")

	if text, _, _ := store.Get(ctx, "a"); text != "context a" {
		t.Errorf("session a got %q", text)
	}
	if text, _, _ := store.Get(ctx, "b"); text != "context b" {
		t.Errorf("session b got %q", text)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	store.Put(ctx, "s1", "short lived")

	if exists, _ := store.Exists(ctx, "s1"); !exists {
		t.Fatal("context should exist right after Put")
	}

	time.Sleep(50 * time.Millisecond)

	if _, ok, _ := store.Get(ctx, "s1"); ok {
		t.Error("context should have expired")
	}
	if exists, _ := store.Exists(ctx, "s1"); exists {
		t.Error("Exists should report expired context as absent")
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			store.Put(ctx, "shared", fmt.Sprintf("transcription %d", n))
		}(i)
		go func() {
			defer wg.Done()
			store.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	if _, ok, err := store.Get(ctx, "shared"); err != nil || !ok {
		t.Errorf("expected some transcription after concurrent writes, got ok=%v err=%v", ok, err)
	}
}
