package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"portfolio-backend-go/internal/db"
	"portfolio-backend-go/internal/models"
)

type fakeMessageRepo struct {
	mu        sync.Mutex
	messages  map[string]*models.Message
	createErr error
	listErr   error
	// block makes Create hang until the write context is cancelled.
	block  bool
	nextID int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string]*models.Message)}
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *models.Message) (string, error) {
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.createErr != nil {
		return "", f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("message-%d", f.nextID)
	stored := *message
	stored.ID = id
	f.messages[id] = &stored
	return id, nil
}

func (f *fakeMessageRepo) List(_ context.Context, limit int) ([]*models.Message, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Message
	for _, m := range f.messages {
		if len(out) == limit {
			break
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[messageID]
	if !ok {
		return db.ErrNotFound
	}
	m.Read = true
	return nil
}

func TestSubmitStoresSanitizedMessage(t *testing.T) {
	repo := newFakeMessageRepo()
	svc := NewMessageService(repo, MessageNotifier{}, time.Second, zap.NewNop())

	id, err := svc.Submit(context.Background(), models.ContactRequest{
		Name:    "  Ada <b>Lovelace</b> ",
		Email:   " ada@example.com ",
		Message: "Hello <script>alert(1)</script>there",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	stored := repo.messages[id]
	if stored == nil {
		t.Fatal("message not stored")
	}
	if stored.Name != "Ada Lovelace" {
		t.Errorf("name = %q, want sanitized and trimmed", stored.Name)
	}
	if stored.Email != "ada@example.com" {
		t.Errorf("email = %q, want trimmed", stored.Email)
	}
	if stored.Read {
		t.Error("new messages must start unread")
	}
}

func TestSubmitTimesOutAgainstSlowStore(t *testing.T) {
	repo := newFakeMessageRepo()
	repo.block = true
	svc := NewMessageService(repo, MessageNotifier{}, 20*time.Millisecond, zap.NewNop())

	start := time.Now()
	_, err := svc.Submit(context.Background(), models.ContactRequest{Name: "Ada", Email: "a@b.com", Message: "hi"})
	if !errors.Is(err, ErrSubmissionTimeout) {
		t.Fatalf("expected ErrSubmissionTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("submission blocked for %v, should settle at the budget", elapsed)
	}
}

func TestSubmitPropagatesWriteFailure(t *testing.T) {
	repo := newFakeMessageRepo()
	repo.createErr = errors.New("permission denied")
	svc := NewMessageService(repo, MessageNotifier{}, time.Second, zap.NewNop())

	_, err := svc.Submit(context.Background(), models.ContactRequest{Name: "Ada", Email: "a@b.com", Message: "hi"})
	if err == nil || errors.Is(err, ErrSubmissionTimeout) {
		t.Fatalf("expected plain write failure, got %v", err)
	}
}

func TestSubmitRejectsBlankFields(t *testing.T) {
	repo := newFakeMessageRepo()
	svc := NewMessageService(repo, MessageNotifier{}, time.Second, zap.NewNop())

	tests := []models.ContactRequest{
		{Name: "   ", Email: "a@b.com", Message: "hi"},
		{Name: "Ada", Email: "a@b.com", Message: " \n "},
	}
	for _, req := range tests {
		if _, err := svc.Submit(context.Background(), req); err == nil {
			t.Errorf("Submit(%+v): expected rejection", req)
		}
	}
	if len(repo.messages) != 0 {
		t.Error("no write should happen for blank fields")
	}
}

func TestListAppliesDefaultLimit(t *testing.T) {
	repo := newFakeMessageRepo()
	repo.listErr = nil
	svc := NewMessageService(repo, MessageNotifier{}, time.Second, zap.NewNop())

	// An errorless empty list is fine; the point is the limit plumbs
	// through without a panic on zero.
	if _, err := svc.List(context.Background(), 0); err != nil {
		t.Fatalf("List: %v", err)
	}
}

func TestListDegradesOnReadFailure(t *testing.T) {
	repo := newFakeMessageRepo()
	repo.listErr = errors.New("firestore unavailable")
	svc := NewMessageService(repo, MessageNotifier{}, time.Second, zap.NewNop())

	messages, err := svc.List(context.Background(), 5)
	if err != nil {
		t.Fatalf("read failures should degrade, got error %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("expected empty list, got %d", len(messages))
	}
}

func TestMarkReadFlipsFlagAndSwallowsMissing(t *testing.T) {
	repo := newFakeMessageRepo()
	svc := NewMessageService(repo, MessageNotifier{}, time.Second, zap.NewNop())

	id, err := svc.Submit(context.Background(), models.ContactRequest{Name: "Ada", Email: "a@b.com", Message: "hi"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	svc.MarkRead(context.Background(), id)
	if !repo.messages[id].Read {
		t.Error("message should be marked read")
	}

	// Missing IDs are logged, never surfaced.
	svc.MarkRead(context.Background(), "missing")
}
