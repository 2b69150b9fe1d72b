package authorizer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
	"github.com/xwikiorgci/application-wikiflavor/kit/tracing"
)

type authError struct {
	error
	perm wikiflavor.Permission
	auth wikiflavor.Authorizer
}

func (ae *authError) AuthzError() error {
	return fmt.Errorf("permission failed for auth (%s): %s", ae.auth.Identifier(), ae.perm.String())
}

func (ae *authError) Unwrap() error {
	return ae.error
}

// ErrFailedPermission is what callers see in place of the underlying
// unauthorized error.
var ErrFailedPermission = &errors.Error{
	Code: errors.EInvalid,
	Msg:  "unauthorized",
}

func processPermissionError(log *zap.Logger, a wikiflavor.Authorizer, p wikiflavor.Permission, err error, loggerFields ...zap.Field) error {
	if errors.ErrorCode(err) == errors.EUnauthorized {
		log.With(loggerFields...).Info("Authorization failed",
			zap.String("auth_kind", a.Kind()),
			zap.String("auth_id", a.Identifier()),
			zap.String("disallowed_permission", p.String()),
		)
		return &authError{error: ErrFailedPermission, perm: p, auth: a}
	}
	return err
}

type wikiCreationServiceValidator struct {
	wikiflavor.WikiCreationService
	descriptors wikiflavor.WikiDescriptorService
	log         *zap.Logger
}

// NewWikiCreationService wraps ws and checks appropriate permissions before
// calling requested methods on ws. Authorization failures are logged to the
// logger.
func NewWikiCreationService(log *zap.Logger, ws wikiflavor.WikiCreationService, descriptors wikiflavor.WikiDescriptorService) wikiflavor.WikiCreationService {
	return &wikiCreationServiceValidator{
		WikiCreationService: ws,
		descriptors:         descriptors,
		log:                 log,
	}
}

func (ws *wikiCreationServiceValidator) CreateWiki(ctx context.Context, req wikiflavor.CreationRequest) (*wikiflavor.Job, error) {
	span, ctx := tracing.StartSpanFromContext(ctx)
	defer span.Finish()

	mainWikiID, err := ws.descriptors.MainWikiID(ctx)
	if err != nil {
		return nil, err
	}

	a, p, err := AuthorizeCreateWiki(ctx, mainWikiID)
	loggerFields := []zap.Field{zap.String("method", "CreateWiki"), zap.String("wiki_id", req.WikiID)}
	if err := processPermissionError(ws.log, a, p, err, loggerFields...); err != nil {
		return nil, err
	}
	return ws.WikiCreationService.CreateWiki(ctx, req)
}

func (ws *wikiCreationServiceValidator) FindJobByID(ctx context.Context, id platform.ID) (*wikiflavor.Job, error) {
	span, ctx := tracing.StartSpanFromContext(ctx)
	defer span.Finish()

	// Unauthenticated job lookup, to identify the wiki being created.
	job, err := ws.WikiCreationService.FindJobByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a, p, err := AuthorizeReadWiki(ctx, job.WikiID)
	loggerFields := []zap.Field{zap.String("method", "FindJobByID"), zap.Stringer("job_id", id)}
	if err := processPermissionError(ws.log, a, p, err, loggerFields...); err != nil {
		return nil, err
	}
	return job, nil
}
