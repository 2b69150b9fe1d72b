package mock

import (
	"context"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform"
)

var _ wikiflavor.WikiCreationService = (*WikiCreationService)(nil)

type WikiCreationService struct {
	CreateWikiFn     func(context.Context, wikiflavor.CreationRequest) (*wikiflavor.Job, error)
	CreateWikiCalls  SafeCount
	FindJobByIDFn    func(context.Context, platform.ID) (*wikiflavor.Job, error)
	FindJobByIDCalls SafeCount
}

func NewWikiCreationService() *WikiCreationService {
	return &WikiCreationService{
		CreateWikiFn: func(ctx context.Context, req wikiflavor.CreationRequest) (*wikiflavor.Job, error) {
			return nil, nil
		},
		FindJobByIDFn: func(ctx context.Context, id platform.ID) (*wikiflavor.Job, error) {
			return nil, nil
		},
	}
}

func (s *WikiCreationService) CreateWiki(ctx context.Context, req wikiflavor.CreationRequest) (*wikiflavor.Job, error) {
	defer s.CreateWikiCalls.IncrFn()()
	return s.CreateWikiFn(ctx, req)
}

func (s *WikiCreationService) FindJobByID(ctx context.Context, id platform.ID) (*wikiflavor.Job, error) {
	defer s.FindJobByIDCalls.IncrFn()()
	return s.FindJobByIDFn(ctx, id)
}
