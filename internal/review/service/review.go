package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"nailbook/internal/dates"
	"nailbook/internal/review/repository"
	"nailbook/pkg/config"
	apperrors "nailbook/pkg/errors"
	"nailbook/pkg/model"
	"nailbook/pkg/sanitizer"
)

// SeedCount is how many sample reviews seedReviews generates.
const SeedCount = 30

type ReviewList struct {
	Reviews []model.Review
	Average float64
	Total   int
}

type ReviewService interface {
	Submit(ctx context.Context, review *model.Review) error
	List(ctx context.Context, status model.ReviewStatus, limit int) (*ReviewList, error)
	UpdateStatus(ctx context.Context, orderID string, status model.ReviewStatus) error
	LinkImage(ctx context.Context, orderID, imageURL string) error
	Seed(ctx context.Context) (int, error)
}

type reviewService struct {
	repo  repository.ReviewRepository
	dates *dates.Normalizer
	cfg   *config.Config
}

func NewReviewService(repo repository.ReviewRepository, norm *dates.Normalizer, cfg *config.Config) ReviewService {
	return &reviewService{repo: repo, dates: norm, cfg: cfg}
}

// Submit stores a customer review as pending moderation. One review per
// booking: a second submission for the same order is rejected.
func (s *reviewService) Submit(ctx context.Context, review *model.Review) error {
	review.OrderID = strings.TrimSpace(review.OrderID)
	review.CustomerName = sanitizer.TrimAndNormalize(review.CustomerName)
	review.Text = strings.TrimSpace(review.Text)

	if review.OrderID == "" {
		return apperrors.MissingField("orderId")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return apperrors.InvalidInput("Rating must be between 1 and 5")
	}

	existing, err := s.repo.All(ctx)
	if err != nil {
		return apperrors.Internal("Failed to load reviews", err)
	}
	for i := range existing {
		if strings.EqualFold(existing[i].OrderID, review.OrderID) {
			return apperrors.Conflict("This booking has already been reviewed")
		}
	}

	review.Status = model.ReviewPending
	review.CreatedAt = s.dates.Now()
	if err := s.repo.Insert(ctx, review); err != nil {
		s.cfg.Log.Error("Failed to save review", "order_id", review.OrderID, "error", err)
		return apperrors.Internal("Failed to save review", err)
	}
	s.cfg.Log.Info("Review submitted", "order_id", review.OrderID, "rating", review.Rating)
	return nil
}

// List returns reviews newest first, optionally filtered by status and
// capped by limit. The average is always computed over approved reviews so
// the public rating does not move while moderation is pending.
func (s *reviewService) List(ctx context.Context, status model.ReviewStatus, limit int) (*ReviewList, error) {
	reviews, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load reviews", err)
	}

	var approvedSum, approvedCount int
	filtered := make([]model.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.Status == model.ReviewApproved {
			approvedSum += r.Rating
			approvedCount++
		}
		if status == "" || r.Status == status {
			filtered = append(filtered, r)
		}
	}

	sort.Slice(filtered, func(i, j int) bool { return filtered[i].CreatedAt.After(filtered[j].CreatedAt) })
	total := len(filtered)
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	out := &ReviewList{Reviews: filtered, Total: total}
	if approvedCount > 0 {
		out.Average = float64(approvedSum) / float64(approvedCount)
	}
	return out, nil
}

func (s *reviewService) UpdateStatus(ctx context.Context, orderID string, status model.ReviewStatus) error {
	if orderID == "" {
		return apperrors.MissingField("orderId")
	}
	switch status {
	case model.ReviewPending, model.ReviewApproved, model.ReviewRejected:
	default:
		return apperrors.InvalidInput("Unknown review status: " + string(status))
	}

	matched, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return apperrors.Internal("Failed to update review", err)
	}
	if !matched {
		return apperrors.NotFound("Review")
	}
	s.cfg.Log.Info("Review status updated", "order_id", orderID, "status", status)
	return nil
}

// LinkImage attaches an uploaded photo to the booking's review. A missing
// review is not an error: the image may arrive before the review text.
func (s *reviewService) LinkImage(ctx context.Context, orderID, imageURL string) error {
	matched, err := s.repo.SetImage(ctx, orderID, imageURL)
	if err != nil {
		return apperrors.Internal("Failed to link review image", err)
	}
	if !matched {
		s.cfg.Log.Info("No review yet for uploaded image", "order_id", orderID)
	}
	return nil
}

var seedNames = []string{"Mali", "Nok", "Ploy", "Fah", "June", "Bee", "Mint", "Kwan", "Aom", "Praew"}

var seedTexts = []string{
	"Beautiful work, very detailed!",
	"Love my new nails, will come back.",
	"Great service and friendly staff.",
	"The design came out exactly as I asked.",
	"Relaxing atmosphere and perfect finish.",
	"My gel polish lasted three weeks.",
}

// Seed fills an empty-looking reviews table with approved sample entries so
// a fresh deployment has a populated public page.
func (s *reviewService) Seed(ctx context.Context) (int, error) {
	now := s.dates.Now()
	reviews := make([]model.Review, SeedCount)
	for i := range reviews {
		reviews[i] = model.Review{
			OrderID:      fmt.Sprintf("SEED-%s", uuid.NewString()[:8]),
			CustomerName: seedNames[i%len(seedNames)],
			Rating:       4 + i%2,
			Text:         seedTexts[i%len(seedTexts)],
			Status:       model.ReviewApproved,
			CreatedAt:    now.AddDate(0, 0, -i),
		}
	}

	if err := s.repo.InsertMany(ctx, reviews); err != nil {
		return 0, apperrors.Internal("Failed to seed reviews", err)
	}
	s.cfg.Log.Info("Reviews seeded", "count", len(reviews))
	return len(reviews), nil
}
