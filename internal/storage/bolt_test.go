package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *BoltStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := NewBoltStore(dbPath, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleQuestion() *QuizQuestion {
	q := NewQuizQuestion("https://aws.amazon.com/jp/blogs/news/s3-feature/", time.Date(2025, 10, 1, 9, 30, 0, 123, time.UTC))
	q.QuestionText = "Which S3 storage class suits rarely accessed archives?"
	q.Options = []string{"S3 Standard", "S3 Glacier Deep Archive", "S3 Express One Zone", "S3 Intelligent-Tiering"}
	q.CorrectOptionIndex = 2
	q.ExplanationCorrect = "Deep Archive is the lowest-cost archive tier."
	q.ExplanationOthers = "The others cost more for cold data."
	return q
}

func TestBoltStore_PutAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	q := sampleQuestion()

	id, err := store.Put(ctx, q)
	if err != nil {
		t.Fatalf("failed to put question: %v", err)
	}
	if id != q.ID {
		t.Errorf("expected id %s, got %s", q.ID, id)
	}

	got, ok, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("failed to get question: %v", err)
	}
	if !ok {
		t.Fatal("expected question to be found")
	}
	assertQuestionEqual(t, q, got)
}

func TestBoltStore_GetMissing(t *testing.T) {
	store := setupTestStore(t)

	got, ok, err := store.Get(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || got != nil {
		t.Errorf("expected absence, got %+v", got)
	}
}

func TestBoltStore_PutAssignsID(t *testing.T) {
	store := setupTestStore(t)
	q := sampleQuestion()
	q.ID = ""

	id, err := store.Put(context.Background(), q)
	if err != nil {
		t.Fatalf("failed to put question: %v", err)
	}
	if id == "" || q.ID != id {
		t.Errorf("expected assigned id, got %q (question has %q)", id, q.ID)
	}
}

func TestBoltStore_PutNil(t *testing.T) {
	store := setupTestStore(t)
	if _, err := store.Put(context.Background(), nil); err != ErrNilQuestion {
		t.Errorf("expected ErrNilQuestion, got %v", err)
	}
}

func TestBoltStore_Count(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.Put(ctx, sampleQuestion()); err != nil {
			t.Fatal(err)
		}
	}

	n, err := store.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("expected 3 questions, got %d", n)
	}
}

func TestBoltStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := NewBoltStore(dbPath, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	q := sampleQuestion()
	if _, err := store.Put(ctx, q); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := NewBoltStore(dbPath, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Get(ctx, q.ID)
	if err != nil || !ok {
		t.Fatalf("expected question after reopen, ok=%v err=%v", ok, err)
	}
	assertQuestionEqual(t, q, got)
}

func assertQuestionEqual(t *testing.T, want, got *QuizQuestion) {
	t.Helper()
	if got.ID != want.ID {
		t.Errorf("ID: expected %s, got %s", want.ID, got.ID)
	}
	if got.ArticleURL != want.ArticleURL {
		t.Errorf("ArticleURL: expected %s, got %s", want.ArticleURL, got.ArticleURL)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt: expected %v, got %v", want.CreatedAt, got.CreatedAt)
	}
	if got.QuestionText != want.QuestionText {
		t.Errorf("QuestionText: expected %q, got %q", want.QuestionText, got.QuestionText)
	}
	if len(got.Options) != len(want.Options) {
		t.Fatalf("Options: expected %d, got %d", len(want.Options), len(got.Options))
	}
	for i := range want.Options {
		if got.Options[i] != want.Options[i] {
			t.Errorf("Options[%d]: expected %q, got %q", i, want.Options[i], got.Options[i])
		}
	}
	if got.CorrectOptionIndex != want.CorrectOptionIndex {
		t.Errorf("CorrectOptionIndex: expected %d, got %d", want.CorrectOptionIndex, got.CorrectOptionIndex)
	}
	if got.ExplanationCorrect != want.ExplanationCorrect {
		t.Errorf("ExplanationCorrect: expected %q, got %q", want.ExplanationCorrect, got.ExplanationCorrect)
	}
	if got.ExplanationOthers != want.ExplanationOthers {
		t.Errorf("ExplanationOthers: expected %q, got %q", want.ExplanationOthers, got.ExplanationOthers)
	}
}

func TestBoltStore_SharedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shared.db")
	ctx := context.Background()

	server, err := NewBoltStore(dbPath, 200*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer server.Close()

	// A second process-style store on the same path while the first is open.
	runner, err := NewBoltStore(dbPath, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("second store on the same path: %v", err)
	}
	defer runner.Close()

	q := sampleQuestion()
	if _, err := runner.Put(ctx, q); err != nil {
		t.Fatalf("put through second store: %v", err)
	}

	got, ok, err := server.Get(ctx, q.ID)
	if err != nil || !ok {
		t.Fatalf("expected question written by the other store, ok=%v err=%v", ok, err)
	}
	assertQuestionEqual(t, q, got)
}
