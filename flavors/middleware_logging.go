package flavors

import (
	"context"
	"time"

	"go.uber.org/zap"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform"
)

func NewLoggingService(logger *zap.Logger, underlying wikiflavor.FlavorService) *loggingService {
	return &loggingService{
		logger:     logger,
		underlying: underlying,
	}
}

type loggingService struct {
	logger     *zap.Logger
	underlying wikiflavor.FlavorService
}

var _ wikiflavor.FlavorService = (*loggingService)(nil)

func (l loggingService) FindFlavors(ctx context.Context) (fs []wikiflavor.Flavor, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to find flavors", zap.Error(err), dur)
			return
		}
		l.logger.Debug("flavors find", dur)
	}(time.Now())
	return l.underlying.FindFlavors(ctx)
}

func (l loggingService) FindFlavorByExtensionID(ctx context.Context, extensionID string) (f *wikiflavor.Flavor, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to find flavor by extension id", zap.Error(err), dur)
			return
		}
		l.logger.Debug("flavor find by extension id", dur)
	}(time.Now())
	return l.underlying.FindFlavorByExtensionID(ctx, extensionID)
}

func (l loggingService) CreateFlavor(ctx context.Context, f *wikiflavor.Flavor) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to create flavor", zap.Error(err), dur)
			return
		}
		l.logger.Debug("flavor create", dur)
	}(time.Now())
	return l.underlying.CreateFlavor(ctx, f)
}

func (l loggingService) DeleteFlavor(ctx context.Context, id platform.ID) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to delete flavor", zap.Error(err), dur)
			return
		}
		l.logger.Debug("flavor delete", dur)
	}(time.Now())
	return l.underlying.DeleteFlavor(ctx, id)
}
