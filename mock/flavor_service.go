package mock

import (
	"context"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform"
)

var _ wikiflavor.FlavorService = (*FlavorService)(nil)

type FlavorService struct {
	FindFlavorsFn                func(context.Context) ([]wikiflavor.Flavor, error)
	FindFlavorsCalls             SafeCount
	FindFlavorByExtensionIDFn    func(context.Context, string) (*wikiflavor.Flavor, error)
	FindFlavorByExtensionIDCalls SafeCount
	CreateFlavorFn               func(context.Context, *wikiflavor.Flavor) error
	CreateFlavorCalls            SafeCount
	DeleteFlavorFn               func(context.Context, platform.ID) error
	DeleteFlavorCalls            SafeCount
}

func NewFlavorService() *FlavorService {
	return &FlavorService{
		FindFlavorsFn: func(ctx context.Context) ([]wikiflavor.Flavor, error) {
			return nil, nil
		},
		FindFlavorByExtensionIDFn: func(ctx context.Context, extensionID string) (*wikiflavor.Flavor, error) {
			return nil, nil
		},
		CreateFlavorFn: func(ctx context.Context, f *wikiflavor.Flavor) error {
			return nil
		},
		DeleteFlavorFn: func(ctx context.Context, id platform.ID) error {
			return nil
		},
	}
}

func (s *FlavorService) FindFlavors(ctx context.Context) ([]wikiflavor.Flavor, error) {
	defer s.FindFlavorsCalls.IncrFn()()
	return s.FindFlavorsFn(ctx)
}

func (s *FlavorService) FindFlavorByExtensionID(ctx context.Context, extensionID string) (*wikiflavor.Flavor, error) {
	defer s.FindFlavorByExtensionIDCalls.IncrFn()()
	return s.FindFlavorByExtensionIDFn(ctx, extensionID)
}

func (s *FlavorService) CreateFlavor(ctx context.Context, f *wikiflavor.Flavor) error {
	defer s.CreateFlavorCalls.IncrFn()()
	return s.CreateFlavorFn(ctx, f)
}

func (s *FlavorService) DeleteFlavor(ctx context.Context, id platform.ID) error {
	defer s.DeleteFlavorCalls.IncrFn()()
	return s.DeleteFlavorFn(ctx, id)
}
