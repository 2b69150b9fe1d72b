package inmem

import (
	"context"
	"fmt"
	"sync"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
)

var _ wikiflavor.WikiDescriptorService = (*WikiDescriptorService)(nil)

// WikiDescriptorService keeps wiki descriptors in memory. The main wiki is
// registered at construction time and cannot be removed.
type WikiDescriptorService struct {
	mainWikiID string

	mu          sync.RWMutex
	descriptors map[string]*wikiflavor.WikiDescriptor
}

func NewWikiDescriptorService(mainWikiID string) *WikiDescriptorService {
	s := &WikiDescriptorService{
		mainWikiID:  mainWikiID,
		descriptors: make(map[string]*wikiflavor.WikiDescriptor),
	}
	s.descriptors[mainWikiID] = &wikiflavor.WikiDescriptor{
		ID:         mainWikiID,
		PrettyName: mainWikiID,
	}
	return s
}

func (s *WikiDescriptorService) MainWikiID(ctx context.Context) (string, error) {
	return s.mainWikiID, nil
}

func (s *WikiDescriptorService) FindDescriptorByID(ctx context.Context, wikiID string) (*wikiflavor.WikiDescriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.descriptors[wikiID]
	if !ok {
		return nil, &errors.Error{
			Code: errors.ENotFound,
			Msg:  fmt.Sprintf("wiki %q not found", wikiID),
		}
	}

	snapshot := *d
	return &snapshot, nil
}

func (s *WikiDescriptorService) CreateDescriptor(ctx context.Context, d *wikiflavor.WikiDescriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.descriptors[d.ID]; ok {
		return &errors.Error{
			Code: errors.EConflict,
			Msg:  fmt.Sprintf("wiki %q already exists", d.ID),
		}
	}

	snapshot := *d
	s.descriptors[d.ID] = &snapshot
	return nil
}
