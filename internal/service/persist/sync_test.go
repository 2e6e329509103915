package persist_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gynmultiverse/concierge/backend/internal/model/chat"
	"github.com/gynmultiverse/concierge/backend/internal/service/persist"
)

type failingStore struct{}

func (failingStore) Create(context.Context, persist.Record) (string, error) {
	return "", errors.New("store down")
}

func (failingStore) List(context.Context, persist.Query) ([]persist.Record, error) {
	return nil, errors.New("store down")
}

func TestWriteAsyncPersistsMessage(t *testing.T) {
	store := persist.NewMemoryStore()
	s := persist.NewSync(store, nil)

	s.WriteAsync("u1", "Wellness Coach", chat.Message{Role: chat.RoleUser, Content: "hi"})

	deadline := time.Now().Add(2 * time.Second)
	for {
		records, err := store.List(context.Background(), persist.Query{User: "u1"})
		if err != nil {
			t.Fatalf("List err: %v", err)
		}
		if len(records) == 1 {
			if records[0].Content != "hi" || records[0].Context != "Wellness Coach" {
				t.Fatalf("unexpected record: %+v", records[0])
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for background write")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWriteAsyncReportsFailure(t *testing.T) {
	var mu sync.Mutex
	var reported error
	s := persist.NewSync(failingStore{}, func(err error) {
		mu.Lock()
		reported = err
		mu.Unlock()
	})

	s.WriteAsync("u1", "", chat.Message{Role: chat.RoleUser, Content: "hi"})

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		got := reported
		mu.Unlock()
		if got != nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for failure report")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestReconcileMapsRecords(t *testing.T) {
	store := persist.NewMemoryStore()
	ctx := context.Background()
	store.Create(ctx, persist.Record{User: "u1", Role: chat.RoleUser, Content: "question", Context: "General"})
	store.Create(ctx, persist.Record{User: "u1", Role: chat.RoleAssistant, Content: "answer", Context: "General"})
	store.Create(ctx, persist.Record{User: "someone-else", Role: chat.RoleUser, Content: "noise", Context: "General"})

	s := persist.NewSync(store, nil)
	msgs, err := s.Reconcile(ctx, "u1", "General", 50)
	if err != nil {
		t.Fatalf("Reconcile err: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "question" || msgs[1].Content != "answer" {
		t.Fatalf("unexpected order: %+v", msgs)
	}
	if msgs[0].ID == "" {
		t.Fatal("expected persisted id to be mapped")
	}
}

func TestReconcileDisabledSync(t *testing.T) {
	s := persist.NewSync(nil, nil)
	msgs, err := s.Reconcile(context.Background(), "u1", "", 50)
	if err != nil {
		t.Fatalf("Reconcile err: %v", err)
	}
	if msgs != nil {
		t.Fatalf("expected nil messages, got %+v", msgs)
	}
}
