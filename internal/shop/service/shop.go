package service

import (
	"context"

	"nailbook/internal/dates"
	"nailbook/internal/shop/repository"
	"nailbook/pkg/config"
	apperrors "nailbook/pkg/errors"
	"nailbook/pkg/jsonx"
	"nailbook/pkg/model"
	"nailbook/pkg/sanitizer"
)

type ShopService interface {
	Load(ctx context.Context) (*model.ShopSettings, error)
	PublicSettings(ctx context.Context) (map[string]string, error)
	AllSettings(ctx context.Context) (map[string]string, error)
	SaveSettings(ctx context.Context, values map[string]string) error
	ShopStatus(ctx context.Context) (*model.ShopSettings, error)
	SetShopStatus(ctx context.Context, open bool) error
	SpecialDates(ctx context.Context) ([]model.SpecialDate, error)
	AddSpecialDate(ctx context.Context, entry model.SpecialDate) ([]model.SpecialDate, error)
	RemoveSpecialDate(ctx context.Context, index int) ([]model.SpecialDate, error)
	Login(ctx context.Context, password string) error
}

type shopService struct {
	repo  repository.SettingsRepository
	dates *dates.Normalizer
	cfg   *config.Config
}

func NewShopService(repo repository.SettingsRepository, norm *dates.Normalizer, cfg *config.Config) ShopService {
	return &shopService{
		repo:  repo,
		dates: norm,
		cfg:   cfg,
	}
}

func (s *shopService) Load(ctx context.Context) (*model.ShopSettings, error) {
	raw, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load settings", err)
	}
	return DecodeSettings(raw), nil
}

// PublicSettings returns the settings table with credentials redacted, for
// the customer-facing page.
func (s *shopService) PublicSettings(ctx context.Context) (map[string]string, error) {
	raw, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load settings", err)
	}
	delete(raw, model.SettingAdminPassword)
	return raw, nil
}

func (s *shopService) AllSettings(ctx context.Context) (map[string]string, error) {
	raw, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load settings", err)
	}
	return raw, nil
}

func (s *shopService) SaveSettings(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return apperrors.MissingField("settings")
	}
	if err := s.repo.SetMany(ctx, values); err != nil {
		s.cfg.Log.Error("Failed to save settings", "keys", len(values), "error", err)
		return apperrors.Internal("Failed to save settings", err)
	}
	s.cfg.Log.Info("Settings saved", "keys", len(values))
	return nil
}

func (s *shopService) ShopStatus(ctx context.Context) (*model.ShopSettings, error) {
	return s.Load(ctx)
}

func (s *shopService) SetShopStatus(ctx context.Context, open bool) error {
	value := "false"
	if open {
		value = "true"
	}
	if err := s.repo.Set(ctx, model.SettingShopOpen, value); err != nil {
		return apperrors.Internal("Failed to update shop status", err)
	}
	s.cfg.Log.Info("Shop status changed", "open", open)
	return nil
}

func (s *shopService) SpecialDates(ctx context.Context) ([]model.SpecialDate, error) {
	settings, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return settings.SpecialDates, nil
}

// AddSpecialDate upserts the override for a date: a second entry for the
// same date replaces the first rather than accumulating.
func (s *shopService) AddSpecialDate(ctx context.Context, entry model.SpecialDate) ([]model.SpecialDate, error) {
	entry.Date = s.dates.Normalize(entry.Date)
	if entry.Date == "" {
		return nil, apperrors.MissingField("date")
	}
	if entry.Status != model.SpecialOpen && entry.Status != model.SpecialClosed {
		entry.Status = model.SpecialClosed
	}
	entry.Note = sanitizer.TrimAndNormalize(entry.Note)

	settings, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	updated := make([]model.SpecialDate, 0, len(settings.SpecialDates)+1)
	for _, existing := range settings.SpecialDates {
		if existing.Date != entry.Date {
			updated = append(updated, existing)
		}
	}
	updated = append(updated, entry)

	if err := s.repo.Set(ctx, model.SettingSpecialDates, jsonx.MustString(updated)); err != nil {
		return nil, apperrors.Internal("Failed to save special dates", err)
	}
	s.cfg.Log.Info("Special date added", "date", entry.Date, "status", entry.Status)
	return updated, nil
}

func (s *shopService) RemoveSpecialDate(ctx context.Context, index int) ([]model.SpecialDate, error) {
	settings, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(settings.SpecialDates) {
		return nil, apperrors.InvalidInput("Invalid special date index")
	}

	updated := append(settings.SpecialDates[:index:index], settings.SpecialDates[index+1:]...)
	if err := s.repo.Set(ctx, model.SettingSpecialDates, jsonx.MustString(updated)); err != nil {
		return nil, apperrors.Internal("Failed to save special dates", err)
	}
	s.cfg.Log.Info("Special date removed", "index", index)
	return updated, nil
}

func (s *shopService) Login(ctx context.Context, password string) error {
	if password == "" {
		return apperrors.MissingField("password")
	}
	settings, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if password != settings.AdminPassword {
		s.cfg.Log.Warn("Admin login rejected")
		return apperrors.Unauthorized("Invalid password")
	}
	return nil
}
