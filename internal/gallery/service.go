package gallery

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"nailbook/internal/dates"
	shopservice "nailbook/internal/shop/service"
	"nailbook/pkg/config"
	apperrors "nailbook/pkg/errors"
	"nailbook/pkg/jsonx"
	"nailbook/pkg/model"
)

// Image purposes accepted by uploadImage.
const (
	TypePortfolio = "portfolio"
	TypeSlip      = "slip"
	TypeReview    = "review"
)

type UploadRequest struct {
	ImageBase64 string
	FileName    string
	MimeType    string
	ImageType   string // portfolio | slip | review
	Caption     string
	Category    string
	OrderID     string // slip and review uploads attach to a booking
}

type UploadResult struct {
	FileID   string
	URL      string
	ThumbURL string
}

type FolderInfo struct {
	FolderID   string
	FolderName string
	Images     int
}

// ReviewLinker attaches an uploaded photo to a booking's review.
type ReviewLinker interface {
	LinkImage(ctx context.Context, orderID, imageURL string) error
}

// SlipAttacher stores a payment slip on the booking row.
type SlipAttacher interface {
	SetSlip(ctx context.Context, orderID, slipURL string) (bool, error)
}

type GalleryService interface {
	Upload(ctx context.Context, req *UploadRequest) (*UploadResult, error)
	Portfolio(ctx context.Context, category string) ([]model.PortfolioItem, error)
	DeleteImage(ctx context.Context, imageID string) error
	FolderInfo(ctx context.Context) (*FolderInfo, error)
}

type galleryService struct {
	drive   *DriveClient
	shop    shopservice.ShopService
	reviews ReviewLinker
	slips   SlipAttacher
	dates   *dates.Normalizer
	cfg     *config.Config
}

func NewGalleryService(
	drive *DriveClient,
	shop shopservice.ShopService,
	reviews ReviewLinker,
	slips SlipAttacher,
	norm *dates.Normalizer,
	cfg *config.Config,
) GalleryService {
	return &galleryService{
		drive:   drive,
		shop:    shop,
		reviews: reviews,
		slips:   slips,
		dates:   norm,
		cfg:     cfg,
	}
}

// Upload decodes the base64 payload, stores it in Drive, and routes the
// resulting URL by image purpose: portfolio metadata, booking slip, or
// review photo.
func (s *galleryService) Upload(ctx context.Context, req *UploadRequest) (*UploadResult, error) {
	if req.ImageBase64 == "" {
		return nil, apperrors.MissingField("image")
	}
	if !s.drive.Configured() {
		return nil, apperrors.Internal("Image storage is not configured", nil)
	}

	data, err := decodeImage(req.ImageBase64)
	if err != nil {
		return nil, apperrors.InvalidInput("Invalid image data")
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	fileName := req.FileName
	if fileName == "" {
		fileName = fmt.Sprintf("%s-%s", req.ImageType, uuid.NewString()[:8])
	}

	folderID, err := s.drive.EnsureFolder(ctx, s.cfg.DriveRootFolder)
	if err != nil {
		s.cfg.Log.Error("Drive folder lookup failed", "error", err)
		return nil, apperrors.Internal("Failed to reach image storage", err)
	}

	fileID, err := s.drive.Upload(ctx, folderID, fileName, mimeType, data)
	if err != nil {
		s.cfg.Log.Error("Drive upload failed", "file_name", fileName, "error", err)
		return nil, apperrors.Internal("Failed to upload image", err)
	}

	result := &UploadResult{
		FileID:   fileID,
		URL:      ViewURL(fileID),
		ThumbURL: ThumbURL(fileID),
	}

	switch req.ImageType {
	case TypeSlip:
		s.attachSlip(ctx, req.OrderID, result.URL)
	case TypeReview:
		s.linkReview(ctx, req.OrderID, result.URL)
	default:
		if err := s.addPortfolioItem(ctx, req, result); err != nil {
			return nil, err
		}
	}

	s.cfg.Log.Info("Image uploaded", "file_id", fileID, "type", req.ImageType)
	return result, nil
}

// decodeImage strips an optional data-URL prefix before base64 decoding.
func decodeImage(raw string) ([]byte, error) {
	if i := strings.Index(raw, ";base64,"); i >= 0 {
		raw = raw[i+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(raw))
}

func (s *galleryService) attachSlip(ctx context.Context, orderID, imageURL string) {
	if orderID == "" {
		return
	}
	matched, err := s.slips.SetSlip(ctx, orderID, imageURL)
	if err != nil {
		s.cfg.Log.Warn("Failed to attach slip", "order_id", orderID, "error", err)
		return
	}
	if !matched {
		s.cfg.Log.Warn("Slip uploaded for unknown booking", "order_id", orderID)
	}
}

func (s *galleryService) linkReview(ctx context.Context, orderID, imageURL string) {
	if orderID == "" {
		return
	}
	if err := s.reviews.LinkImage(ctx, orderID, imageURL); err != nil {
		s.cfg.Log.Warn("Failed to link review image", "order_id", orderID, "error", err)
	}
}

func (s *galleryService) addPortfolioItem(ctx context.Context, req *UploadRequest, result *UploadResult) error {
	settings, err := s.shop.Load(ctx)
	if err != nil {
		return err
	}

	item := model.PortfolioItem{
		ID:         result.FileID,
		Caption:    req.Caption,
		Category:   req.Category,
		URL:        result.URL,
		ThumbURL:   result.ThumbURL,
		UploadedAt: s.dates.Today(),
	}
	updated := append(settings.Portfolio, item)

	if err := s.shop.SaveSettings(ctx, map[string]string{
		model.SettingPortfolio: jsonx.MustString(updated),
	}); err != nil {
		return err
	}
	return nil
}

// Portfolio lists gallery items newest first, optionally filtered by
// category.
func (s *galleryService) Portfolio(ctx context.Context, category string) ([]model.PortfolioItem, error) {
	settings, err := s.shop.Load(ctx)
	if err != nil {
		return nil, err
	}

	items := settings.Portfolio
	if category != "" {
		filtered := make([]model.PortfolioItem, 0, len(items))
		for _, item := range items {
			if strings.EqualFold(item.Category, category) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	// Items are appended on upload; reverse for newest first.
	out := make([]model.PortfolioItem, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out, nil
}

// DeleteImage trashes the Drive file and drops its portfolio entry. Either
// half may be missing; removing what exists is success.
func (s *galleryService) DeleteImage(ctx context.Context, imageID string) error {
	if imageID == "" {
		return apperrors.MissingField("imageId")
	}

	if s.drive.Configured() {
		if err := s.drive.Trash(ctx, imageID); err != nil {
			s.cfg.Log.Warn("Failed to trash drive file", "file_id", imageID, "error", err)
		}
	}

	settings, err := s.shop.Load(ctx)
	if err != nil {
		return err
	}
	updated := make([]model.PortfolioItem, 0, len(settings.Portfolio))
	removed := false
	for _, item := range settings.Portfolio {
		if item.ID == imageID {
			removed = true
			continue
		}
		updated = append(updated, item)
	}
	if !removed {
		return nil
	}

	return s.shop.SaveSettings(ctx, map[string]string{
		model.SettingPortfolio: jsonx.MustString(updated),
	})
}

func (s *galleryService) FolderInfo(ctx context.Context) (*FolderInfo, error) {
	settings, err := s.shop.Load(ctx)
	if err != nil {
		return nil, err
	}

	info := &FolderInfo{
		FolderName: s.cfg.DriveRootFolder,
		Images:     len(settings.Portfolio),
	}
	if s.drive.Configured() {
		folderID, err := s.drive.EnsureFolder(ctx, s.cfg.DriveRootFolder)
		if err != nil {
			s.cfg.Log.Warn("Drive folder lookup failed", "error", err)
		} else {
			info.FolderID = folderID
		}
	}
	return info, nil
}
