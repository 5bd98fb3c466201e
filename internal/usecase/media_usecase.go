package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/activity-portal/internal/config"
	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/domain/repository"
	"github.com/activity-portal/internal/pkg/errors"
	"github.com/activity-portal/internal/usecase/dto"
)

// MediaUseCase reconciles the image step's working set: classifies entries
// into already-persisted vs pending, uploads only the pending subset and
// assembles the final ordered list sent to the supplier.
type MediaUseCase struct {
	storage repository.StorageRepository
	drafts  repository.DraftRepository
	streams repository.StreamRepository
	logger  *zap.Logger
	cfg     config.MediaConfig
}

func NewMediaUseCase(
	storage repository.StorageRepository,
	drafts repository.DraftRepository,
	streams repository.StreamRepository,
	logger *zap.Logger,
	cfg config.MediaConfig,
) *MediaUseCase {
	return &MediaUseCase{
		storage: storage,
		drafts:  drafts,
		streams: streams,
		logger:  logger,
		cfg:     cfg,
	}
}

type decodeResult struct {
	img image.Image
	err error
}

// ValidateImage checks one uploaded file before it may join the working set:
// allowed MIME type, size limit, and decoded pixel width. Decoding runs under
// a bounded wait; a file that neither decodes nor errors within the timeout
// is treated as invalid.
func (uc *MediaUseCase) ValidateImage(ctx context.Context, upload dto.ImageUpload) (*domain.ImageAsset, error) {
	if !uc.allowedType(upload.ContentType) {
		return nil, errors.ErrInvalidImage.WithDetails(map[string]interface{}{
			"file":   upload.FileName,
			"reason": fmt.Sprintf("unsupported type %s", upload.ContentType),
		})
	}
	if int64(len(upload.Data)) > uc.cfg.MaxFileSize {
		return nil, errors.ErrInvalidImage.WithDetails(map[string]interface{}{
			"file":   upload.FileName,
			"reason": fmt.Sprintf("file exceeds %d bytes", uc.cfg.MaxFileSize),
		})
	}

	ch := make(chan decodeResult, 1)
	go func() {
		img, err := imaging.Decode(bytes.NewReader(upload.Data))
		ch <- decodeResult{img: img, err: err}
	}()

	var res decodeResult
	select {
	case res = <-ch:
	case <-time.After(uc.cfg.ValidateTimeout):
		return nil, errors.ErrInvalidImage.WithDetails(map[string]interface{}{
			"file":   upload.FileName,
			"reason": "image did not load in time",
		})
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if res.err != nil {
		return nil, errors.ErrInvalidImage.WithDetails(map[string]interface{}{
			"file":   upload.FileName,
			"reason": "file is not a decodable image",
		})
	}

	width := res.img.Bounds().Dx()
	if width < uc.cfg.MinWidth {
		return nil, errors.ErrInvalidImage.WithDetails(map[string]interface{}{
			"file":   upload.FileName,
			"reason": fmt.Sprintf("width %dpx is below the %dpx minimum", width, uc.cfg.MinWidth),
		})
	}

	return &domain.ImageAsset{
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		Width:       width,
		Size:        int64(len(upload.Data)),
		Data:        upload.Data,
	}, nil
}

func (uc *MediaUseCase) allowedType(contentType string) bool {
	for _, t := range uc.cfg.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

// AddToWorkingSet appends a validated asset, enforcing the 5-image maximum.
func (uc *MediaUseCase) AddToWorkingSet(working []domain.ImageAsset, asset domain.ImageAsset) ([]domain.ImageAsset, error) {
	if len(working) >= domain.MaxImages {
		return working, errors.ErrTooManyImages
	}
	return append(working, asset), nil
}

type uploadResult struct {
	index int
	url   string
	err   error
}

// CommitImages uploads the pending subset of the working set and commits the
// assembled list to the supplier. Uploads run independently per file and are
// awaited together; any failure aborts the whole commit, partial uploads are
// never treated as success. Index 0 of the committed list is the cover, and
// existing images come first, so an existing image is preferred as cover.
func (uc *MediaUseCase) CommitImages(
	ctx context.Context,
	activityID string,
	working []domain.ImageAsset,
	progress func(fileName string, uploaded, total int64),
) ([]domain.ImageAsset, error) {
	if len(working) < domain.MinImages {
		return nil, errors.ErrTooFewImages
	}
	if len(working) > domain.MaxImages {
		return nil, errors.ErrTooManyImages
	}

	var existing, pending []domain.ImageAsset
	for _, asset := range working {
		if asset.Existing() {
			existing = append(existing, asset)
		} else {
			pending = append(pending, asset)
		}
	}

	results := make([]uploadResult, len(pending))
	var wg sync.WaitGroup
	for i, asset := range pending {
		wg.Add(1)
		go func(i int, asset domain.ImageAsset) {
			defer wg.Done()

			key := uc.objectKey(activityID, asset.FileName)
			var cb repository.ProgressFunc
			if progress != nil {
				cb = func(uploaded, total int64) {
					progress(asset.FileName, uploaded, total)
				}
			}

			url, err := uc.storage.Upload(ctx, key, asset.ContentType, asset.Data, cb)
			results[i] = uploadResult{index: i, url: url, err: err}
		}(i, asset)
	}
	wg.Wait()

	failed := make(map[string]interface{})
	for i, res := range results {
		if res.err != nil {
			uc.logger.Error("Image upload failed",
				zap.String("activity_id", activityID),
				zap.String("file", pending[i].FileName),
				zap.Error(res.err))
			failed[pending[i].FileName] = res.err.Error()
		}
	}
	if len(failed) > 0 {
		// Blobs that did land are orphaned now; hand them to the cleanup worker
		for _, res := range results {
			if res.err == nil && res.url != "" {
				uc.enqueueCleanup(ctx, activityID, res.url)
			}
		}
		return nil, errors.ErrUploadFailed.WithDetails(failed)
	}

	final := make([]domain.ImageAsset, 0, len(working))
	final = append(final, existing...)
	for i, asset := range pending {
		asset.URL = results[i].url
		asset.Data = nil
		final = append(final, asset)
	}
	for i := range final {
		final[i].IsCover = i == 0
	}

	result, err := uc.drafts.UpdateImages(ctx, activityID, final)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, commitRejected(result)
	}
	return final, nil
}

// RemoveImage drops one entry from the working set. For an existing image the
// remote blob is deleted first, best-effort: a storage failure is queued for
// the cleanup worker and never blocks the removal. A pending image only loses
// its local bytes.
func (uc *MediaUseCase) RemoveImage(ctx context.Context, activityID string, working []domain.ImageAsset, index int) ([]domain.ImageAsset, error) {
	if index < 0 || index >= len(working) {
		return working, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"index": index})
	}

	target := working[index]
	if target.Existing() && target.URL != "" {
		if err := uc.storage.Delete(ctx, target.URL); err != nil {
			uc.logger.Warn("Best-effort blob deletion failed, queueing for cleanup",
				zap.String("url", target.URL),
				zap.Error(err))
			uc.enqueueCleanup(ctx, activityID, target.URL)
		}
	}

	out := make([]domain.ImageAsset, 0, len(working)-1)
	out = append(out, working[:index]...)
	out = append(out, working[index+1:]...)
	for i := range out {
		out[i].IsCover = i == 0
	}
	return out, nil
}

func (uc *MediaUseCase) enqueueCleanup(ctx context.Context, activityID, url string) {
	event := domain.MediaCleanupEvent{
		URL:         url,
		ActivityID:  activityID,
		RequestedAt: time.Now().UTC(),
	}
	if err := uc.streams.PublishToStream(ctx, domain.StreamMediaCleanup, event); err != nil {
		uc.logger.Error("Failed to enqueue media cleanup",
			zap.String("url", url),
			zap.Error(err))
	}
}

func (uc *MediaUseCase) objectKey(activityID, fileName string) string {
	ext := path.Ext(fileName)
	return fmt.Sprintf("activities/%s/%s%s", activityID, uuid.NewString(), ext)
}
