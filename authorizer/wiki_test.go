package authorizer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/authorizer"
	pctx "github.com/xwikiorgci/application-wikiflavor/context"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform"
	"github.com/xwikiorgci/application-wikiflavor/mock"
)

func TestCreateWikiValidation(t *testing.T) {
	inner := mock.NewWikiCreationService()
	inner.CreateWikiFn = func(_ context.Context, req wikiflavor.CreationRequest) (*wikiflavor.Job, error) {
		return &wikiflavor.Job{ID: platform.ID(1), WikiID: req.WikiID, Status: wikiflavor.JobQueued}, nil
	}

	svc := authorizer.NewWikiCreationService(zaptest.NewLogger(t), inner, mock.NewWikiDescriptorService())

	req := wikiflavor.CreationRequest{WikiID: "sales", Owner: "sarah"}

	t.Run("authorized", func(t *testing.T) {
		ctx := pctx.SetAuthorizer(context.Background(), mock.NewAuthorizer("sarah", wikiflavor.Permission{
			Action:   wikiflavor.WriteAction,
			Resource: wikiflavor.Resource{Type: wikiflavor.WikisResourceType},
		}))

		job, err := svc.CreateWiki(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "sales", job.WikiID)
	})

	t.Run("permission scoped to another wiki", func(t *testing.T) {
		ctx := pctx.SetAuthorizer(context.Background(), mock.NewAuthorizer("sarah", wikiflavor.Permission{
			Action:   wikiflavor.WriteAction,
			Resource: wikiflavor.Resource{Type: wikiflavor.WikisResourceType, WikiID: "sales"},
		}))

		_, err := svc.CreateWiki(ctx, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, authorizer.ErrFailedPermission)
	})

	t.Run("no permissions", func(t *testing.T) {
		ctx := pctx.SetAuthorizer(context.Background(), mock.NewAuthorizer("intruder"))

		_, err := svc.CreateWiki(ctx, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, authorizer.ErrFailedPermission)
	})

	t.Run("no authorizer on context", func(t *testing.T) {
		_, err := svc.CreateWiki(context.Background(), req)
		require.Error(t, err)
		assert.NotErrorIs(t, err, authorizer.ErrFailedPermission)
	})
}

func TestFindJobByIDValidation(t *testing.T) {
	inner := mock.NewWikiCreationService()
	inner.FindJobByIDFn = func(_ context.Context, id platform.ID) (*wikiflavor.Job, error) {
		return &wikiflavor.Job{ID: id, WikiID: "sales", Status: wikiflavor.JobRunning}, nil
	}

	svc := authorizer.NewWikiCreationService(zaptest.NewLogger(t), inner, mock.NewWikiDescriptorService())

	t.Run("read permission on the wiki", func(t *testing.T) {
		ctx := pctx.SetAuthorizer(context.Background(), mock.NewAuthorizer("sarah", wikiflavor.Permission{
			Action:   wikiflavor.ReadAction,
			Resource: wikiflavor.Resource{Type: wikiflavor.WikisResourceType, WikiID: "sales"},
		}))

		job, err := svc.FindJobByID(ctx, platform.ID(7))
		require.NoError(t, err)
		assert.Equal(t, wikiflavor.JobRunning, job.Status)
	})

	t.Run("read permission on another wiki", func(t *testing.T) {
		ctx := pctx.SetAuthorizer(context.Background(), mock.NewAuthorizer("sarah", wikiflavor.Permission{
			Action:   wikiflavor.ReadAction,
			Resource: wikiflavor.Resource{Type: wikiflavor.WikisResourceType, WikiID: "finance"},
		}))

		_, err := svc.FindJobByID(ctx, platform.ID(7))
		require.Error(t, err)
		assert.ErrorIs(t, err, authorizer.ErrFailedPermission)
	})
}
