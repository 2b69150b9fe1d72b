// Package script is the wikiflavor facade exposed to the scripting layer of
// the host platform.
//
// Scripting callers cannot observe returned errors, so the facade never
// propagates failures: every operation returns its result or nil, and the
// error (if any) is recorded in the request's last-error slot where a later
// LastError call can pick it up.
package script

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/authorizer"
	icontext "github.com/xwikiorgci/application-wikiflavor/context"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
	"github.com/xwikiorgci/application-wikiflavor/kit/tracing"
)

// Service authorizes and delegates the "create wiki from flavor" action.
type Service struct {
	flavors     wikiflavor.FlavorService
	creator     wikiflavor.WikiCreationService
	descriptors wikiflavor.WikiDescriptorService
	log         *zap.Logger
}

func NewService(log *zap.Logger, flavors wikiflavor.FlavorService, creator wikiflavor.WikiCreationService, descriptors wikiflavor.WikiDescriptorService) *Service {
	return &Service{
		flavors:     flavors,
		creator:     creator,
		descriptors: descriptors,
		log:         log,
	}
}

// CreateWiki asynchronously creates a wiki with a flavor. The acting
// authorizer must hold the wiki-creation permission against the main wiki,
// and a flavor named by the request must come from the registry. Returns the
// job that creates the wiki, or nil if the request was rejected, in which
// case LastError carries the reason.
func (s *Service) CreateWiki(ctx context.Context, req wikiflavor.CreationRequest) *wikiflavor.Job {
	span, ctx := tracing.StartSpanFromContext(ctx)
	defer span.Finish()

	mainWikiID, err := s.descriptors.MainWikiID(ctx)
	if err != nil {
		s.recordFailure(ctx, err)
		return nil
	}

	// Verify that the user holds the wiki-creation permission.
	if _, _, err := authorizer.AuthorizeCreateWiki(ctx, mainWikiID); err != nil {
		if errors.ErrorCode(err) == errors.EUnauthorized {
			// denial is an expected outcome, record it without the warn log
			icontext.SetLastError(ctx, err)
		} else {
			s.recordFailure(ctx, err)
		}
		return nil
	}

	// Verify that if an extension id is provided, this extension is one of
	// the authorized flavors.
	if req.ExtensionID != "" {
		authorized, err := s.isAuthorizedFlavor(ctx, req.ExtensionID)
		if err != nil {
			s.recordFailure(ctx, err)
			return nil
		}
		if !authorized {
			s.recordFailure(ctx, &errors.Error{
				Code: errors.EInvalid,
				Msg:  fmt.Sprintf("the flavor %q is not authorized", req.ExtensionID),
			})
			return nil
		}
	}

	job, err := s.creator.CreateWiki(ctx, req)
	if err != nil {
		s.recordFailure(ctx, err)
		return nil
	}
	return job
}

// Flavors returns the list of available flavors, or nil if the registry
// could not be read (see LastError).
func (s *Service) Flavors(ctx context.Context) []wikiflavor.Flavor {
	flavors, err := s.flavors.FindFlavors(ctx)
	if err != nil {
		icontext.SetLastError(ctx, err)
		return nil
	}
	return flavors
}

// LastError returns the error recorded while performing the previously
// called action, or nil if no action failed yet in this request.
func (s *Service) LastError(ctx context.Context) error {
	return icontext.LastError(ctx)
}

func (s *Service) isAuthorizedFlavor(ctx context.Context, extensionID string) (bool, error) {
	flavors, err := s.flavors.FindFlavors(ctx)
	if err != nil {
		return false, err
	}
	for _, f := range flavors {
		if f.ExtensionID == extensionID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) recordFailure(ctx context.Context, err error) {
	icontext.SetLastError(ctx, err)
	s.log.Warn("Failed to create a new wiki.", zap.Error(err))
}
