package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"nailbook/internal/customer/repository"
	"nailbook/internal/dates"
	"nailbook/pkg/config"
	apperrors "nailbook/pkg/errors"
	"nailbook/pkg/model"
	"nailbook/pkg/sanitizer"
)

// ListLimit caps the customer listing response.
const ListLimit = 50

type CustomerService interface {
	List(ctx context.Context, search string) ([]model.Customer, error)
	Profile(ctx context.Context, phone string) (*model.Customer, error)
	RecordVisit(ctx context.Context, booking *model.Booking) error
}

type customerService struct {
	repo  repository.CustomerRepository
	dates *dates.Normalizer
	cfg   *config.Config
}

func NewCustomerService(repo repository.CustomerRepository, norm *dates.Normalizer, cfg *config.Config) CustomerService {
	return &customerService{repo: repo, dates: norm, cfg: cfg}
}

// List returns customers matching the free-text search on name or phone,
// most recently created first, capped at ListLimit.
func (s *customerService) List(ctx context.Context, search string) ([]model.Customer, error) {
	customers, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load customers", err)
	}

	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]model.Customer, 0, len(customers))
	for _, c := range customers {
		if search == "" ||
			strings.Contains(strings.ToLower(c.Name), search) ||
			strings.Contains(sanitizer.CleanPhone(c.Phone), sanitizer.CleanPhone(search)) {
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > ListLimit {
		out = out[:ListLimit]
	}
	return out, nil
}

// Profile resolves a single customer by hyphen-insensitive phone match.
func (s *customerService) Profile(ctx context.Context, phone string) (*model.Customer, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, apperrors.MissingField("phone")
	}

	customers, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load customers", err)
	}
	for i := range customers {
		if sanitizer.SamePhone(customers[i].Phone, phone) {
			return &customers[i], nil
		}
	}
	return nil, apperrors.NotFound("Customer")
}

// RecordVisit rolls a completed booking into the customer profile, creating
// the profile on first visit.
func (s *customerService) RecordVisit(ctx context.Context, booking *model.Booking) error {
	customers, err := s.repo.All(ctx)
	if err != nil {
		return apperrors.Internal("Failed to load customers", err)
	}

	var customer *model.Customer
	for i := range customers {
		if sanitizer.SamePhone(customers[i].Phone, booking.Phone) {
			customer = &customers[i]
			break
		}
	}
	if customer == nil {
		customer = &model.Customer{
			ID:        "C-" + uuid.NewString()[:8],
			Phone:     booking.Phone,
			Name:      booking.CustomerName,
			CreatedAt: s.dates.Now(),
		}
	}

	customer.TotalVisits++
	customer.TotalSpent += parsePrice(booking.Price)
	customer.LastVisit = booking.Date
	if customer.Name == "" {
		customer.Name = booking.CustomerName
	}

	if err := s.repo.Upsert(ctx, customer); err != nil {
		return apperrors.Internal("Failed to save customer", err)
	}
	s.cfg.Log.Info("Customer visit recorded",
		"customer_id", customer.ID,
		"order_id", booking.OrderID,
		"total_visits", customer.TotalVisits,
	)
	return nil
}

func parsePrice(raw string) float64 {
	var digits strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			digits.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil {
		return 0
	}
	return v
}
