package handler

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/pkg/errors"
	"github.com/activity-portal/internal/pkg/utils"
	"github.com/activity-portal/internal/usecase"
	"github.com/activity-portal/internal/usecase/dto"
	"github.com/activity-portal/internal/wizard"
)

// MediaHandler - image step endpoints: validation, commit and removal.
type MediaHandler struct {
	mediaUC    *usecase.MediaUseCase
	activityUC *usecase.ActivityUseCase
	logger     *zap.Logger
}

func NewMediaHandler(mediaUC *usecase.MediaUseCase, activityUC *usecase.ActivityUseCase, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		mediaUC:    mediaUC,
		activityUC: activityUC,
		logger:     logger,
	}
}

func readUpload(fh *multipart.FileHeader) (dto.ImageUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return dto.ImageUpload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return dto.ImageUpload{}, err
	}

	return dto.ImageUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// ValidateImages checks uploaded files against the format and width rules
// without uploading anything. Per-file verdicts let the client show inline
// feedback while the merchant assembles the set.
func (h *MediaHandler) ValidateImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Multipart form required"})
	}

	files := form.File["images"]
	if len(files) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No images provided"})
	}

	results := make([]dto.ImageValidationResult, 0, len(files))
	for _, fh := range files {
		upload, err := readUpload(fh)
		if err != nil {
			results = append(results, dto.ImageValidationResult{
				FileName: fh.Filename,
				Reason:   "Could not read file",
			})
			continue
		}

		asset, err := h.mediaUC.ValidateImage(c.Context(), upload)
		if err != nil {
			reason := "Invalid image"
			if appErr, ok := err.(*errors.AppError); ok {
				reason = appErr.Message
			}
			results = append(results, dto.ImageValidationResult{
				FileName: upload.FileName,
				Reason:   reason,
			})
			continue
		}

		results = append(results, dto.ImageValidationResult{
			FileName: asset.FileName,
			Valid:    true,
			Width:    asset.Width,
		})
	}

	return utils.SendSuccess(c, results, nil)
}

type commitImagesResponse struct {
	Images      []domain.ImageAsset `json:"images"`
	NextAddress string              `json:"next_address"`
}

// CommitImages validates and uploads the new files, merges them with the
// already persisted images listed in the form, and commits the assembled set.
func (h *MediaHandler) CommitImages(c *fiber.Ctx) error {
	p := wizardParams(c, wizard.StepImages)
	if p.EntityID == "" {
		return respondError(c, &wizard.RedirectError{To: wizard.Params{
			Lang:      p.Lang,
			Currency:  p.Currency,
			StepIndex: wizard.StepCategory,
		}})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Multipart form required"})
	}

	var working []domain.ImageAsset
	for _, url := range form.Value["existing"] {
		working, err = h.mediaUC.AddToWorkingSet(working, domain.ImageAsset{URL: url})
		if err != nil {
			return respondError(c, err)
		}
	}

	for _, fh := range form.File["images"] {
		upload, err := readUpload(fh)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Could not read file " + fh.Filename})
		}

		asset, err := h.mediaUC.ValidateImage(c.Context(), upload)
		if err != nil {
			return respondError(c, err)
		}

		working, err = h.mediaUC.AddToWorkingSet(working, *asset)
		if err != nil {
			return respondError(c, err)
		}
	}

	committed, err := h.mediaUC.CommitImages(c.Context(), p.EntityID, working, func(fileName string, uploaded, total int64) {
		h.logger.Debug("Upload progress",
			zap.String("file", fileName),
			zap.Int64("uploaded", uploaded),
			zap.Int64("total", total))
	})
	if err != nil {
		return respondError(c, err)
	}

	next := h.activityUC.AfterImagesCommit(c.Context(), p)
	return utils.SendSuccess(c, commitImagesResponse{
		Images:      committed,
		NextAddress: next.NextAddress,
	}, nil)
}

type removeImageRequest struct {
	Existing []string `json:"existing"`
	Index    int      `json:"index"`
}

// RemoveImage drops one entry from the working set of persisted images.
func (h *MediaHandler) RemoveImage(c *fiber.Ctx) error {
	p := wizardParams(c, wizard.StepImages)

	var req removeImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	working := make([]domain.ImageAsset, 0, len(req.Existing))
	for _, url := range req.Existing {
		working = append(working, domain.ImageAsset{URL: url})
	}

	remaining, err := h.mediaUC.RemoveImage(c.Context(), p.EntityID, working, req.Index)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, remaining, nil)
}
