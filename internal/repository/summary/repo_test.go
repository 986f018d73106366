package summary

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kailas-cloud/docdex/internal/db"
	"github.com/kailas-cloud/docdex/internal/domain"
)

func TestSave_WritesRecord(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotKey, gotPath string
	var gotData []byte
	ms.jsonSetFn = func(_ context.Context, key, path string, data []byte) error {
		gotKey, gotPath, gotData = key, path, data
		return nil
	}

	if err := repo.Save(context.Background(), testSummary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "docdex:summary:doc-1" {
		t.Errorf("unexpected key: %s", gotKey)
	}
	if gotPath != "$" {
		t.Errorf("unexpected path: %s", gotPath)
	}

	var rec record
	if err := json.Unmarshal(gotData, &rec); err != nil {
		t.Fatalf("stored payload is not valid JSON: %v", err)
	}
	if rec.DocumentID != "doc-1" || rec.CollectionID != "course-7" {
		t.Errorf("unexpected identifiers: %+v", rec)
	}
	if rec.Summary != "Covers quadratic equations and factoring." || rec.ChunkCount != 12 {
		t.Errorf("unexpected content: %+v", rec)
	}
}

func TestSave_StampsCreatedAt(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotData []byte
	ms.jsonSetFn = func(_ context.Context, _, _ string, data []byte) error {
		gotData = data
		return nil
	}

	s := testSummary()
	s.CreatedAt = time.Time{}
	if err := repo.Save(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rec record
	if err := json.Unmarshal(gotData, &rec); err != nil {
		t.Fatalf("stored payload is not valid JSON: %v", err)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be stamped")
	}
}

func TestSave_MissingDocumentID(t *testing.T) {
	repo, _ := newTestRepo(t)

	s := testSummary()
	s.DocumentID = ""
	err := repo.Save(context.Background(), s)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestSave_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.jsonSetFn = func(_ context.Context, _, _ string, _ []byte) error {
		return errors.New("connection refused")
	}

	err := repo.Save(context.Background(), testSummary())
	if !errors.Is(err, domain.ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
}

func TestGet_Found(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.jsonGetFn = func(_ context.Context, key string, paths ...string) ([]byte, error) {
		if key != "docdex:summary:doc-1" {
			t.Errorf("unexpected key: %s", key)
		}
		if len(paths) != 1 || paths[0] != "$" {
			t.Errorf("unexpected paths: %v", paths)
		}
		data, err := json.Marshal([]record{toRecord(testSummary())})
		if err != nil {
			t.Fatalf("marshal fixture: %v", err)
		}
		return data, nil
	}

	got, err := repo.Get(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, testSummary()) {
		t.Errorf("unexpected summary:\ngot  %+v\nwant %+v", got, testSummary())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Get(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrSummaryNotFound) {
		t.Errorf("expected ErrSummaryNotFound, got %v", err)
	}
}

func TestGet_EmptyResult(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return []byte("[]"), nil
	}

	_, err := repo.Get(context.Background(), "doc-1")
	if !errors.Is(err, domain.ErrSummaryNotFound) {
		t.Errorf("expected ErrSummaryNotFound, got %v", err)
	}
}

func TestGet_CorruptPayload(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return []byte("{"), nil
	}

	_, err := repo.Get(context.Background(), "doc-1")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
}

func TestGet_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return nil, errors.New("connection refused")
	}

	_, err := repo.Get(context.Background(), "doc-1")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
	if errors.Is(err, domain.ErrSummaryNotFound) {
		t.Error("a store failure must not read as a missing summary")
	}
}

func TestDelete_RemovesKey(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotKey string
	ms.delFn = func(_ context.Context, key string) error {
		gotKey = key
		return nil
	}

	if err := repo.Delete(context.Background(), "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "docdex:summary:doc-1" {
		t.Errorf("unexpected key: %s", gotKey)
	}
}

func TestDelete_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.delFn = func(_ context.Context, _ string) error {
		return errors.New("connection refused")
	}

	err := repo.Delete(context.Background(), "doc-1")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
}

func TestSaveThenGet_RoundTrip(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	stored := map[string][]byte{}
	ms.jsonSetFn = func(_ context.Context, key, _ string, data []byte) error {
		stored[key] = data
		return nil
	}
	ms.jsonGetFn = func(_ context.Context, key string, _ ...string) ([]byte, error) {
		data, ok := stored[key]
		if !ok {
			return nil, db.ErrKeyNotFound
		}
		// JSON.GET with "$" wraps the stored document in an array.
		return append(append([]byte("["), data...), ']'), nil
	}

	want := testSummary()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.Get(ctx, "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("summary changed across the store:\ngot  %+v\nwant %+v", got, want)
	}
}
