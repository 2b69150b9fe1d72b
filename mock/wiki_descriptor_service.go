package mock

import (
	"context"
	"fmt"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
)

var _ wikiflavor.WikiDescriptorService = (*WikiDescriptorService)(nil)

type WikiDescriptorService struct {
	MainWikiIDFn          func(context.Context) (string, error)
	FindDescriptorByIDFn  func(context.Context, string) (*wikiflavor.WikiDescriptor, error)
	CreateDescriptorFn    func(context.Context, *wikiflavor.WikiDescriptor) error
	CreateDescriptorCalls SafeCount
}

func NewWikiDescriptorService() *WikiDescriptorService {
	return &WikiDescriptorService{
		MainWikiIDFn: func(ctx context.Context) (string, error) {
			return "xwiki", nil
		},
		FindDescriptorByIDFn: func(ctx context.Context, wikiID string) (*wikiflavor.WikiDescriptor, error) {
			return nil, &errors.Error{
				Code: errors.ENotFound,
				Msg:  fmt.Sprintf("wiki %q not found", wikiID),
			}
		},
		CreateDescriptorFn: func(ctx context.Context, d *wikiflavor.WikiDescriptor) error {
			return nil
		},
	}
}

func (s *WikiDescriptorService) MainWikiID(ctx context.Context) (string, error) {
	return s.MainWikiIDFn(ctx)
}

func (s *WikiDescriptorService) FindDescriptorByID(ctx context.Context, wikiID string) (*wikiflavor.WikiDescriptor, error) {
	return s.FindDescriptorByIDFn(ctx, wikiID)
}

func (s *WikiDescriptorService) CreateDescriptor(ctx context.Context, d *wikiflavor.WikiDescriptor) error {
	defer s.CreateDescriptorCalls.IncrFn()()
	return s.CreateDescriptorFn(ctx, d)
}
