package resumes

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smartcv-backend/internal/shared/metrics"
	"smartcv-backend/internal/shared/storage/object"
	"smartcv-backend/internal/shared/telemetry"
)

// Service owns the save pipeline: validation, photo blob lifecycle and the
// wholesale upsert. Failed saves leave the stored resume untouched.
type Service struct {
	Repo  Repo
	Store object.ObjectStore

	now func() time.Time
}

func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{Repo: repo, Store: store, now: func() time.Time { return time.Now().UTC() }}
}

// Upsert validates and persists a draft. An empty document id creates a new
// resume; a non-empty id updates the caller's existing one. The returned
// resume reflects the stored state, including any new photo URL.
func (s *Service) Upsert(ctx context.Context, userID string, doc Document) (Resume, error) {
	metrics.IncSaveStarted()
	started := s.now()

	res, err := s.upsert(ctx, userID, doc)
	if err != nil {
		metrics.IncSaveFailed()
		return Resume{}, err
	}

	metrics.IncSaveCompleted()
	metrics.ObserveSaveDurationMs(float64(s.now().Sub(started).Milliseconds()))
	return res, nil
}

func (s *Service) upsert(ctx context.Context, userID string, doc Document) (Resume, error) {
	if err := ValidateDocument(doc); err != nil {
		return Resume{}, err
	}

	if doc.ID == "" {
		return s.create(ctx, userID, doc)
	}
	return s.update(ctx, userID, doc)
}

func (s *Service) create(ctx context.Context, userID string, doc Document) (Resume, error) {
	res := resumeRecord(userID, doc)
	res.ID = uuid.NewString()
	now := s.now()
	res.CreatedAt = now
	res.UpdatedAt = now

	url, err := s.applyPhoto(ctx, userID, res.ID, doc.Photo, "")
	if err != nil {
		return Resume{}, err
	}
	res.PhotoURL = url

	if err := s.Repo.Create(ctx, res); err != nil {
		s.discardPhoto(ctx, res.ID, url)
		return Resume{}, err
	}

	telemetry.Info("resume created", map[string]any{"resume_id": res.ID})
	return res, nil
}

func (s *Service) update(ctx context.Context, userID string, doc Document) (Resume, error) {
	existing, err := s.Repo.Get(ctx, userID, doc.ID)
	if err != nil {
		return Resume{}, err
	}

	res := resumeRecord(userID, doc)
	res.CreatedAt = existing.CreatedAt
	res.UpdatedAt = s.now()

	url, err := s.applyPhoto(ctx, userID, res.ID, doc.Photo, existing.PhotoURL)
	if err != nil {
		return Resume{}, err
	}
	res.PhotoURL = url

	if err := s.Repo.Update(ctx, res); err != nil {
		if url != existing.PhotoURL {
			s.discardPhoto(ctx, res.ID, url)
		}
		return Resume{}, err
	}

	telemetry.Info("resume updated", map[string]any{"resume_id": res.ID})
	return res, nil
}

// applyPhoto resolves the draft's photo variant against the stored URL and
// returns the URL the saved row should carry. An unset photo keeps whatever
// is stored; pending uploads replace it; cleared deletes it. Removal of a
// superseded blob is best-effort and never fails the save.
func (s *Service) applyPhoto(ctx context.Context, userID, resumeID string, photo Photo, storedURL string) (string, error) {
	switch photo.State {
	case PhotoUnset:
		return storedURL, nil

	case PhotoStored:
		return photo.URL, nil

	case PhotoCleared:
		if storedURL != "" {
			s.discardPhoto(ctx, resumeID, storedURL)
		}
		return "", nil

	case PhotoPending:
		if photo.Blob == nil {
			return "", fmt.Errorf("%w: pending photo has no blob", ErrInvalidInput)
		}
		url, _, _, err := s.Store.Save(ctx, userID, photo.Blob.Name, bytes.NewReader(photo.Blob.Data))
		if err != nil {
			return "", fmt.Errorf("upload photo: %w", err)
		}
		if storedURL != "" {
			s.discardPhoto(ctx, resumeID, storedURL)
		}
		return url, nil

	default:
		return "", fmt.Errorf("%w: unknown photo state", ErrInvalidInput)
	}
}

func (s *Service) discardPhoto(ctx context.Context, resumeID, url string) {
	if url == "" {
		return
	}
	if err := s.Store.Delete(ctx, url); err != nil {
		telemetry.Warn("photo delete failed", map[string]any{"resume_id": resumeID, "error": err.Error()})
	}
}

// Get returns a resume owned by the user.
func (s *Service) Get(ctx context.Context, userID, id string) (Resume, error) {
	return s.Repo.Get(ctx, userID, id)
}

// GetPublic returns a resume by id for the shared read-only preview.
func (s *Service) GetPublic(ctx context.Context, id string) (Resume, error) {
	return s.Repo.GetPublic(ctx, id)
}

// List returns the user's resume headers, most recently updated first.
func (s *Service) List(ctx context.Context, userID string) ([]Resume, error) {
	return s.Repo.List(ctx, userID)
}

// Delete removes a resume and its stored photo, if any.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	res, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.discardPhoto(ctx, id, res.PhotoURL)
	telemetry.Info("resume deleted", map[string]any{"resume_id": id})
	return nil
}
