// internal/post/service.go
//
// Record Service: orchestrates normalize → store → project for the five
// online operations, and owns the error mapping to the taxonomy.
//
// Propagation policy: validation, not-found, and duplicate errors raise at
// the point of detection and travel unmodified to the boundary.  Anything
// the store reports that we do not recognize is logged in full and handed
// to callers as a generic server error.
package post

import (
	"context"

	"go.uber.org/zap"

	"github.com/yanizio/mobilepost/internal/apierr"
	"github.com/yanizio/mobilepost/internal/metrics"
)

// Service exposes the record operations over one Store.
type Service struct {
	store *Store
	log   *zap.SugaredLogger
}

func NewService(store *Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log}
}

// serverError logs the real failure and returns the sanitized taxonomy
// error, marking store-connectivity loss as transient.
func (s *Service) serverError(op string, err error) error {
	s.log.Errorw("store failure", "op", op, "err", err)
	ae := apierr.New(apierr.CodeServerError, apierr.CanonicalMessage(apierr.CodeServerError))
	if isConnLoss(err) {
		ae.Unavailable = true
		ae.Message = "Database connection error. Please try again later."
	}
	return ae
}

// Create validates the required name/district composite, normalizes with
// hard-fail coordinate semantics, and inserts.  Returns the stored row.
func (s *Service) Create(ctx context.Context, in Input) (*Post, error) {
	if err := CheckRequired(in); err != nil {
		return nil, err
	}
	c, err := NormalizeStrict(in)
	if err != nil {
		return nil, err
	}

	id, err := s.store.Insert(ctx, c)
	if err != nil {
		if IsDuplicate(err) {
			return nil, apierr.New(apierr.CodeDuplicateRecord, "Duplicate record")
		}
		return nil, s.serverError("create", err)
	}
	metrics.PostsCreated.Inc()

	created, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.serverError("create", err)
	}
	return created, nil
}

// List validates openAt, runs the count and page queries over one predicate
// set, and projects each row for the requested language.
func (s *Service) List(ctx context.Context, p Params) ([]any, Meta, error) {
	p.Defaults()
	if p.OpenAt != "" && !hhmmRe.MatchString(p.OpenAt) {
		return nil, Meta{}, apierr.New(apierr.CodeInvalidTimeFormat,
			"openAt must be in HH:MM format with valid time (00:00-23:59)")
	}

	total, err := s.store.Count(ctx, p)
	if err != nil {
		return nil, Meta{}, s.serverError("list", err)
	}
	rows, err := s.store.SelectPage(ctx, p)
	if err != nil {
		return nil, Meta{}, s.serverError("list", err)
	}
	metrics.ListQueries.Inc()

	out := make([]any, len(rows))
	for i := range rows {
		out[i] = Project(&rows[i], p.Lang)
	}
	return out, NewMeta(p, total), nil
}

// Get is a point lookup plus projection.
func (s *Service) Get(ctx context.Context, id int64, lang Lang) (any, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, apierr.New(apierr.CodeRecordNotFound, "Record not found")
		}
		return nil, s.serverError("get", err)
	}
	return Project(p, lang), nil
}

// Update applies a partial update: unsupplied fields stay untouched.  The
// row must exist and at least one field must be supplied.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*Post, error) {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		if IsNotFound(err) {
			return nil, apierr.New(apierr.CodeRecordNotFound, "Record not found")
		}
		return nil, s.serverError("update", err)
	}
	if in.Empty() {
		return nil, apierr.New(apierr.CodeNoUpdatableFields, "No updatable fields provided")
	}

	c, err := NormalizeStrict(in)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdatePartial(ctx, id, c); err != nil {
		if IsDuplicate(err) {
			return nil, apierr.New(apierr.CodeDuplicateRecord, "Duplicate record")
		}
		return nil, s.serverError("update", err)
	}

	updated, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.serverError("update", err)
	}
	return updated, nil
}

// Remove permanently deletes one row.  No soft delete.
func (s *Service) Remove(ctx context.Context, id int64) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return s.serverError("remove", err)
	}
	if !ok {
		return apierr.New(apierr.CodeRecordNotFound, "Record not found")
	}
	metrics.PostsDeleted.Inc()
	return nil
}
