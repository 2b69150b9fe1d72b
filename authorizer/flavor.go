package authorizer

import (
	"context"

	"go.uber.org/zap"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform"
	"github.com/xwikiorgci/application-wikiflavor/kit/tracing"
)

type flavorServiceValidator struct {
	wikiflavor.FlavorService
	log *zap.Logger
}

// NewFlavorService wraps fs and checks appropriate permissions before calling
// requested methods on fs. Listing requires read access to the flavor
// registry, changing it requires write access.
func NewFlavorService(log *zap.Logger, fs wikiflavor.FlavorService) wikiflavor.FlavorService {
	return &flavorServiceValidator{
		FlavorService: fs,
		log:           log,
	}
}

func (fs *flavorServiceValidator) FindFlavors(ctx context.Context) ([]wikiflavor.Flavor, error) {
	span, ctx := tracing.StartSpanFromContext(ctx)
	defer span.Finish()

	a, p, err := AuthorizeReadFlavors(ctx)
	if err := processPermissionError(fs.log, a, p, err, zap.String("method", "FindFlavors")); err != nil {
		return nil, err
	}
	return fs.FlavorService.FindFlavors(ctx)
}

func (fs *flavorServiceValidator) FindFlavorByExtensionID(ctx context.Context, extensionID string) (*wikiflavor.Flavor, error) {
	span, ctx := tracing.StartSpanFromContext(ctx)
	defer span.Finish()

	a, p, err := AuthorizeReadFlavors(ctx)
	loggerFields := []zap.Field{zap.String("method", "FindFlavorByExtensionID"), zap.String("extension_id", extensionID)}
	if err := processPermissionError(fs.log, a, p, err, loggerFields...); err != nil {
		return nil, err
	}
	return fs.FlavorService.FindFlavorByExtensionID(ctx, extensionID)
}

func (fs *flavorServiceValidator) CreateFlavor(ctx context.Context, f *wikiflavor.Flavor) error {
	span, ctx := tracing.StartSpanFromContext(ctx)
	defer span.Finish()

	a, p, err := AuthorizeWriteFlavors(ctx)
	loggerFields := []zap.Field{zap.String("method", "CreateFlavor"), zap.String("extension_id", f.ExtensionID)}
	if err := processPermissionError(fs.log, a, p, err, loggerFields...); err != nil {
		return err
	}
	return fs.FlavorService.CreateFlavor(ctx, f)
}

func (fs *flavorServiceValidator) DeleteFlavor(ctx context.Context, id platform.ID) error {
	span, ctx := tracing.StartSpanFromContext(ctx)
	defer span.Finish()

	a, p, err := AuthorizeWriteFlavors(ctx)
	loggerFields := []zap.Field{zap.String("method", "DeleteFlavor"), zap.Stringer("flavor_id", id)}
	if err := processPermissionError(fs.log, a, p, err, loggerFields...); err != nil {
		return err
	}
	return fs.FlavorService.DeleteFlavor(ctx, id)
}
