package service

import (
	"context"
	"testing"
	"time"

	"nailbook/internal/dates"
	"nailbook/pkg/config"
	apperrors "nailbook/pkg/errors"
	"nailbook/pkg/logger"
	"nailbook/pkg/model"
)

type mockCustomerRepository struct {
	allFunc  func(ctx context.Context) ([]model.Customer, error)
	upserted []*model.Customer
}

func (m *mockCustomerRepository) All(ctx context.Context) ([]model.Customer, error) {
	if m.allFunc != nil {
		return m.allFunc(ctx)
	}
	return []model.Customer{}, nil
}

func (m *mockCustomerRepository) Upsert(ctx context.Context, c *model.Customer) error {
	m.upserted = append(m.upserted, c)
	return nil
}

func newService(t *testing.T, repo *mockCustomerRepository) CustomerService {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2025, time.June, 10, 13, 0, 0, 0, loc)
	norm := dates.NewWithNow(loc, func() time.Time { return now })
	cfg := &config.Config{Log: logger.Discard(), ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second}
	return NewCustomerService(repo, norm, cfg)
}

func TestListSearchByPhoneIgnoresHyphens(t *testing.T) {
	repo := &mockCustomerRepository{
		allFunc: func(ctx context.Context) ([]model.Customer, error) {
			return []model.Customer{
				{ID: "C-1", Name: "Mali", Phone: "081-234-5678"},
				{ID: "C-2", Name: "Nok", Phone: "0899999999"},
			}, nil
		},
	}
	svc := newService(t, repo)

	got, err := svc.List(context.Background(), "0812345678")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "C-1" {
		t.Errorf("expected C-1 only, got %+v", got)
	}
}

func TestListCapsResults(t *testing.T) {
	repo := &mockCustomerRepository{
		allFunc: func(ctx context.Context) ([]model.Customer, error) {
			out := make([]model.Customer, ListLimit+20)
			for i := range out {
				out[i] = model.Customer{ID: "C", Name: "x"}
			}
			return out, nil
		},
	}
	svc := newService(t, repo)

	got, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != ListLimit {
		t.Errorf("expected cap at %d, got %d", ListLimit, len(got))
	}
}

func TestProfileNotFound(t *testing.T) {
	svc := newService(t, &mockCustomerRepository{})

	if _, err := svc.Profile(context.Background(), "0800000000"); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := svc.Profile(context.Background(), ""); !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected missing field, got %v", err)
	}
}

func TestRecordVisitCreatesProfile(t *testing.T) {
	repo := &mockCustomerRepository{}
	svc := newService(t, repo)

	booking := &model.Booking{OrderID: "GY-1", Phone: "081-234-5678", CustomerName: "Mali", Price: "590", Date: "2025-06-10"}
	if err := svc.RecordVisit(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("expected one upsert, got %d", len(repo.upserted))
	}
	c := repo.upserted[0]
	if c.TotalVisits != 1 || c.TotalSpent != 590 || c.LastVisit != "2025-06-10" {
		t.Errorf("unexpected profile %+v", c)
	}
}

func TestRecordVisitAccumulates(t *testing.T) {
	repo := &mockCustomerRepository{
		allFunc: func(ctx context.Context) ([]model.Customer, error) {
			return []model.Customer{
				{ID: "C-1", Phone: "0812345678", Name: "Mali", TotalVisits: 3, TotalSpent: 1500},
			}, nil
		},
	}
	svc := newService(t, repo)

	booking := &model.Booking{OrderID: "GY-2", Phone: "081-234-5678", Price: "1,090", Date: "2025-06-10"}
	if err := svc.RecordVisit(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := repo.upserted[0]
	if c.ID != "C-1" {
		t.Errorf("expected existing profile reused, got %s", c.ID)
	}
	if c.TotalVisits != 4 || c.TotalSpent != 2590 {
		t.Errorf("unexpected totals %+v", c)
	}
}
