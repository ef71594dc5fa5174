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

type mockSettingsRepository struct {
	allFunc func(ctx context.Context) (map[string]string, error)
	setFunc func(ctx context.Context, key, value string) error
	sets    map[string]string
}

func (m *mockSettingsRepository) All(ctx context.Context) (map[string]string, error) {
	if m.allFunc != nil {
		return m.allFunc(ctx)
	}
	return map[string]string{}, nil
}

func (m *mockSettingsRepository) Set(ctx context.Context, key, value string) error {
	if m.sets == nil {
		m.sets = make(map[string]string)
	}
	m.sets[key] = value
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value)
	}
	return nil
}

func (m *mockSettingsRepository) SetMany(ctx context.Context, values map[string]string) error {
	for k, v := range values {
		if err := m.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log:          logger.Discard(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func testNormalizer(t *testing.T) *dates.Normalizer {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return dates.New(loc)
}

func TestDecodeSettingsDefaults(t *testing.T) {
	s := DecodeSettings(map[string]string{})

	if s.ShopName != config.DefaultShopName {
		t.Errorf("expected default shop name, got %q", s.ShopName)
	}
	if !s.ShopOpen {
		t.Error("expected shop open by default")
	}
	if len(s.TimeSlots) != 6 {
		t.Errorf("expected 6 default slots, got %d", len(s.TimeSlots))
	}
	if len(s.SpecialDates) != 0 {
		t.Errorf("expected no special dates, got %d", len(s.SpecialDates))
	}
}

func TestDecodeSettingsCorruptListDegrades(t *testing.T) {
	s := DecodeSettings(map[string]string{
		model.SettingSpecialDates: "{not json",
		model.SettingShopOpen:     "false",
	})

	if len(s.SpecialDates) != 0 {
		t.Errorf("corrupt list should decode empty, got %d entries", len(s.SpecialDates))
	}
	if s.ShopOpen {
		t.Error("expected shop closed")
	}
}

func TestDecodeSettingsShopOpenStrict(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]string
		wantOpen bool
	}{
		{"missing row defaults open", map[string]string{}, true},
		{"true opens", map[string]string{model.SettingShopOpen: "true"}, true},
		{"false closes", map[string]string{model.SettingShopOpen: "false"}, false},
		{"garbage value closes", map[string]string{model.SettingShopOpen: "banana"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DecodeSettings(tc.raw).ShopOpen; got != tc.wantOpen {
				t.Errorf("expected open=%v, got %v", tc.wantOpen, got)
			}
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	settings := &model.ShopSettings{
		ShopOpen: true,
		SpecialDates: []model.SpecialDate{
			{Date: "2025-06-10", Status: model.SpecialClosed, Note: "holiday"},
			{Date: "2025-06-11", Status: model.SpecialOpen},
			{Date: "2025-06-13", Status: ""},
			{Date: "2025-06-14", Status: "maybe"},
		},
	}

	tests := []struct {
		name     string
		shopOpen bool
		date     string
		wantOpen bool
	}{
		{"closed override", true, "2025-06-10", false},
		{"open override beats global closed", false, "2025-06-11", true},
		{"no override follows global open", true, "2025-06-12", true},
		{"no override follows global closed", false, "2025-06-12", false},
		{"blank-status override does not lift global closed", false, "2025-06-13", false},
		{"unknown-status override does not lift global closed", false, "2025-06-14", false},
		{"blank-status override keeps global open", true, "2025-06-13", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			settings.ShopOpen = tc.shopOpen
			got := CheckAvailability(settings, tc.date)
			if got.Open != tc.wantOpen {
				t.Errorf("expected open=%v, got %v (message %q)", tc.wantOpen, got.Open, got.Message)
			}
			if !got.Open && got.Message == "" {
				t.Error("closed verdict must carry a message")
			}
		})
	}
}

func TestCheckAvailabilityClosedNoteInMessage(t *testing.T) {
	settings := &model.ShopSettings{
		ShopOpen:     true,
		SpecialDates: []model.SpecialDate{{Date: "2025-06-10", Status: model.SpecialClosed, Note: "Songkran"}},
	}

	got := CheckAvailability(settings, "2025-06-10")
	if got.Open {
		t.Fatal("expected closed")
	}
	if got.Message != "The shop is closed on this date: Songkran" {
		t.Errorf("unexpected message %q", got.Message)
	}
}

func TestPublicSettingsRedactsPassword(t *testing.T) {
	repo := &mockSettingsRepository{
		allFunc: func(ctx context.Context) (map[string]string, error) {
			return map[string]string{
				model.SettingShopName:      "GY-Nail",
				model.SettingAdminPassword: "secret",
			}, nil
		},
	}
	svc := NewShopService(repo, testNormalizer(t), testConfig())

	out, err := svc.PublicSettings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := out[model.SettingAdminPassword]; ok {
		t.Error("adminPassword must not be exposed publicly")
	}
	if out[model.SettingShopName] != "GY-Nail" {
		t.Errorf("expected shop name passthrough, got %q", out[model.SettingShopName])
	}
}

func TestAddSpecialDateReplacesSameDate(t *testing.T) {
	repo := &mockSettingsRepository{
		allFunc: func(ctx context.Context) (map[string]string, error) {
			return map[string]string{
				model.SettingSpecialDates: `[{"date":"2025-06-10","status":"closed"}]`,
			}, nil
		},
	}
	svc := NewShopService(repo, testNormalizer(t), testConfig())

	updated, err := svc.AddSpecialDate(context.Background(), model.SpecialDate{Date: "2568-06-10", Status: model.SpecialOpen})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated) != 1 {
		t.Fatalf("expected 1 entry after replacement, got %d", len(updated))
	}
	if updated[0].Status != model.SpecialOpen {
		t.Errorf("expected replacement to win, got %q", updated[0].Status)
	}
	if updated[0].Date != "2025-06-10" {
		t.Errorf("expected Buddhist-era date normalized, got %q", updated[0].Date)
	}
}

func TestRemoveSpecialDateIndexOutOfRange(t *testing.T) {
	repo := &mockSettingsRepository{
		allFunc: func(ctx context.Context) (map[string]string, error) {
			return map[string]string{model.SettingSpecialDates: `[{"date":"2025-06-10","status":"closed"}]`}, nil
		},
	}
	svc := NewShopService(repo, testNormalizer(t), testConfig())

	if _, err := svc.RemoveSpecialDate(context.Background(), 3); !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected invalid input error, got %v", err)
	}
	if _, err := svc.RemoveSpecialDate(context.Background(), -1); !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := &mockSettingsRepository{
		allFunc: func(ctx context.Context) (map[string]string, error) {
			return map[string]string{model.SettingAdminPassword: "s3cret"}, nil
		},
	}
	svc := NewShopService(repo, testNormalizer(t), testConfig())

	if err := svc.Login(context.Background(), "s3cret"); err != nil {
		t.Errorf("expected login success, got %v", err)
	}
	if err := svc.Login(context.Background(), "wrong"); !apperrors.IsCode(err, apperrors.CodeUnauthorized) {
		t.Errorf("expected unauthorized, got %v", err)
	}
	if err := svc.Login(context.Background(), ""); !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected missing field, got %v", err)
	}
}
