package flavors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform"
	ierrors "github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
	"github.com/xwikiorgci/application-wikiflavor/kit/tracing"
	"github.com/xwikiorgci/application-wikiflavor/snowflake"
	"github.com/xwikiorgci/application-wikiflavor/sqlite"
)

var (
	errFlavorNotFound = &ierrors.Error{
		Code: ierrors.ENotFound,
		Msg:  "flavor not found",
	}
)

var _ wikiflavor.FlavorService = (*Service)(nil)

// Service is the sqlite-backed flavor registry.
type Service struct {
	store       *sqlite.SqlStore
	log         *zap.Logger
	idGenerator platform.IDGenerator
}

func NewService(log *zap.Logger, store *sqlite.SqlStore) *Service {
	return &Service{
		store:       store,
		log:         log,
		idGenerator: snowflake.NewIDGenerator(),
	}
}

// FindFlavors returns all registered flavors ordered by name.
func (s *Service) FindFlavors(ctx context.Context) ([]wikiflavor.Flavor, error) {
	span, ctx := tracing.StartSpanFromContext(ctx)
	defer span.Finish()

	s.store.Mu.RLock()
	defer s.store.Mu.RUnlock()

	query, args, err := sq.
		Select("id", "name", "description", "extension_id", "version").
		From("flavors").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, err
	}

	flavors := []wikiflavor.Flavor{}
	if err := s.store.DB.SelectContext(ctx, &flavors, query, args...); err != nil {
		return nil, tracing.LogError(span, err)
	}
	return flavors, nil
}

// FindFlavorByExtensionID returns the flavor registered for extensionID.
func (s *Service) FindFlavorByExtensionID(ctx context.Context, extensionID string) (*wikiflavor.Flavor, error) {
	span, ctx := tracing.StartSpanFromContext(ctx)
	defer span.Finish()

	s.store.Mu.RLock()
	defer s.store.Mu.RUnlock()

	query, args, err := sq.
		Select("id", "name", "description", "extension_id", "version").
		From("flavors").
		Where(sq.Eq{"extension_id": extensionID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var f wikiflavor.Flavor
	if err := s.store.DB.GetContext(ctx, &f, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errFlavorNotFound
		}
		return nil, tracing.LogError(span, err)
	}
	return &f, nil
}

// CreateFlavor registers f and fills in its generated id.
func (s *Service) CreateFlavor(ctx context.Context, f *wikiflavor.Flavor) error {
	span, ctx := tracing.StartSpanFromContext(ctx)
	defer span.Finish()

	if err := f.Valid(); err != nil {
		return err
	}

	s.store.Mu.Lock()
	defer s.store.Mu.Unlock()

	f.ID = s.idGenerator.ID()

	query, args, err := sq.
		Insert("flavors").
		Columns("id", "name", "description", "extension_id", "version").
		Values(f.ID, f.Name, f.Description, f.ExtensionID, f.Version).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.store.DB.ExecContext(ctx, query, args...); err != nil {
		// the unique constraint on extension_id is the only one a caller
		// can trip
		return tracing.LogError(span, &ierrors.Error{
			Code: ierrors.EConflict,
			Msg:  fmt.Sprintf("flavor for extension %q already exists", f.ExtensionID),
			Err:  err,
		})
	}

	s.log.Debug("flavor registered", zap.String("extension_id", f.ExtensionID))
	return nil
}

// DeleteFlavor removes the flavor with the given id. Deleting an unknown id
// returns ENotFound.
func (s *Service) DeleteFlavor(ctx context.Context, id platform.ID) error {
	span, ctx := tracing.StartSpanFromContext(ctx)
	defer span.Finish()

	s.store.Mu.Lock()
	defer s.store.Mu.Unlock()

	query, args, err := sq.
		Delete("flavors").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := s.store.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return tracing.LogError(span, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errFlavorNotFound
	}
	return nil
}
