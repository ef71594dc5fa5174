package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"nailbook/internal/dates"
	"nailbook/pkg/config"
	apperrors "nailbook/pkg/errors"
	"nailbook/pkg/logger"
	"nailbook/pkg/model"
)

type mockReviewRepository struct {
	allFunc  func(ctx context.Context) ([]model.Review, error)
	inserted []*model.Review
	batches  [][]model.Review
	statuses map[string]model.ReviewStatus
	images   map[string]string
	matched  bool
}

func (m *mockReviewRepository) All(ctx context.Context) ([]model.Review, error) {
	if m.allFunc != nil {
		return m.allFunc(ctx)
	}
	return []model.Review{}, nil
}

func (m *mockReviewRepository) Insert(ctx context.Context, r *model.Review) error {
	m.inserted = append(m.inserted, r)
	return nil
}

func (m *mockReviewRepository) InsertMany(ctx context.Context, rs []model.Review) error {
	m.batches = append(m.batches, rs)
	return nil
}

func (m *mockReviewRepository) UpdateStatus(ctx context.Context, orderID string, status model.ReviewStatus) (bool, error) {
	if m.statuses == nil {
		m.statuses = make(map[string]model.ReviewStatus)
	}
	m.statuses[orderID] = status
	return m.matched, nil
}

func (m *mockReviewRepository) SetImage(ctx context.Context, orderID, url string) (bool, error) {
	if m.images == nil {
		m.images = make(map[string]string)
	}
	m.images[orderID] = url
	return m.matched, nil
}

func newService(t *testing.T, repo *mockReviewRepository) ReviewService {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2025, time.June, 10, 13, 0, 0, 0, loc)
	norm := dates.NewWithNow(loc, func() time.Time { return now })
	cfg := &config.Config{Log: logger.Discard(), ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second}
	return NewReviewService(repo, norm, cfg)
}

func TestSubmitReview(t *testing.T) {
	repo := &mockReviewRepository{}
	svc := newService(t, repo)

	err := svc.Submit(context.Background(), &model.Review{OrderID: "GY-1", Rating: 5, Text: "great"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.inserted))
	}
	if repo.inserted[0].Status != model.ReviewPending {
		t.Errorf("new reviews must start pending, got %q", repo.inserted[0].Status)
	}
}

func TestSubmitReviewValidation(t *testing.T) {
	svc := newService(t, &mockReviewRepository{})

	tests := []struct {
		name   string
		review model.Review
		code   string
	}{
		{"missing order id", model.Review{Rating: 5}, apperrors.CodeValidation},
		{"rating too low", model.Review{OrderID: "GY-1", Rating: 0}, apperrors.CodeInvalidInput},
		{"rating too high", model.Review{OrderID: "GY-1", Rating: 6}, apperrors.CodeInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Submit(context.Background(), &tc.review); !apperrors.IsCode(err, tc.code) {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestSubmitReviewDuplicate(t *testing.T) {
	repo := &mockReviewRepository{
		allFunc: func(ctx context.Context) ([]model.Review, error) {
			return []model.Review{{OrderID: "gy-1", Rating: 4}}, nil
		},
	}
	svc := newService(t, repo)

	err := svc.Submit(context.Background(), &model.Review{OrderID: "GY-1", Rating: 5})
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict on duplicate review, got %v", err)
	}
}

func TestListAverageOverApprovedOnly(t *testing.T) {
	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	repo := &mockReviewRepository{
		allFunc: func(ctx context.Context) ([]model.Review, error) {
			return []model.Review{
				{OrderID: "GY-1", Rating: 5, Status: model.ReviewApproved, CreatedAt: base},
				{OrderID: "GY-2", Rating: 3, Status: model.ReviewApproved, CreatedAt: base.AddDate(0, 0, 1)},
				{OrderID: "GY-3", Rating: 1, Status: model.ReviewPending, CreatedAt: base.AddDate(0, 0, 2)},
			}, nil
		},
	}
	svc := newService(t, repo)

	got, err := svc.List(context.Background(), model.ReviewApproved, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Average != 4 {
		t.Errorf("expected average 4 over approved, got %v", got.Average)
	}
	if len(got.Reviews) != 2 {
		t.Fatalf("expected 2 approved reviews, got %d", len(got.Reviews))
	}
	if got.Reviews[0].OrderID != "GY-2" {
		t.Errorf("expected newest first, got %s", got.Reviews[0].OrderID)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := newService(t, &mockReviewRepository{matched: false})

	if err := svc.UpdateStatus(context.Background(), "GY-404", model.ReviewApproved); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestSeedGeneratesApprovedReviews(t *testing.T) {
	repo := &mockReviewRepository{}
	svc := newService(t, repo)

	count, err := svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != SeedCount {
		t.Fatalf("expected %d seeded, got %d", SeedCount, count)
	}
	seen := make(map[string]bool)
	for _, r := range repo.batches[0] {
		if r.Status != model.ReviewApproved {
			t.Errorf("seeded review not approved: %+v", r)
		}
		if r.Rating < 4 || r.Rating > 5 {
			t.Errorf("seeded rating out of range: %d", r.Rating)
		}
		if !strings.HasPrefix(r.OrderID, "SEED-") || seen[r.OrderID] {
			t.Errorf("seeded order ids must be unique SEED- ids, got %s", r.OrderID)
		}
		seen[r.OrderID] = true
	}
}
