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

func TestFindFlavorsValidation(t *testing.T) {
	inner := mock.NewFlavorService()
	inner.FindFlavorsFn = func(context.Context) ([]wikiflavor.Flavor, error) {
		return []wikiflavor.Flavor{{ID: platform.ID(1), Name: "Knowledge Base", ExtensionID: "org.xwiki.contrib:kb-flavor"}}, nil
	}

	svc := authorizer.NewFlavorService(zaptest.NewLogger(t), inner)

	t.Run("read permission", func(t *testing.T) {
		ctx := pctx.SetAuthorizer(context.Background(), mock.NewAuthorizer("sarah", wikiflavor.Permission{
			Action:   wikiflavor.ReadAction,
			Resource: wikiflavor.Resource{Type: wikiflavor.FlavorsResourceType},
		}))

		got, err := svc.FindFlavors(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("write permission only", func(t *testing.T) {
		ctx := pctx.SetAuthorizer(context.Background(), mock.NewAuthorizer("sarah", wikiflavor.Permission{
			Action:   wikiflavor.WriteAction,
			Resource: wikiflavor.Resource{Type: wikiflavor.FlavorsResourceType},
		}))

		_, err := svc.FindFlavors(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, authorizer.ErrFailedPermission)
		assert.Equal(t, 1, inner.FindFlavorsCalls.Count())
	})
}

func TestWriteFlavorsValidation(t *testing.T) {
	inner := mock.NewFlavorService()
	svc := authorizer.NewFlavorService(zaptest.NewLogger(t), inner)

	readCtx := pctx.SetAuthorizer(context.Background(), mock.NewAuthorizer("sarah", wikiflavor.Permission{
		Action:   wikiflavor.ReadAction,
		Resource: wikiflavor.Resource{Type: wikiflavor.FlavorsResourceType},
	}))
	writeCtx := pctx.SetAuthorizer(context.Background(), mock.NewAuthorizer("admin", wikiflavor.Permission{
		Action:   wikiflavor.WriteAction,
		Resource: wikiflavor.Resource{Type: wikiflavor.FlavorsResourceType},
	}))

	t.Run("create", func(t *testing.T) {
		f := wikiflavor.Flavor{Name: "Forum", ExtensionID: "org.xwiki.contrib:forum-flavor"}

		err := svc.CreateFlavor(readCtx, &f)
		require.Error(t, err)
		assert.ErrorIs(t, err, authorizer.ErrFailedPermission)
		assert.Equal(t, 0, inner.CreateFlavorCalls.Count())

		require.NoError(t, svc.CreateFlavor(writeCtx, &f))
		assert.Equal(t, 1, inner.CreateFlavorCalls.Count())
	})

	t.Run("delete", func(t *testing.T) {
		err := svc.DeleteFlavor(readCtx, platform.ID(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, authorizer.ErrFailedPermission)
		assert.Equal(t, 0, inner.DeleteFlavorCalls.Count())

		require.NoError(t, svc.DeleteFlavor(writeCtx, platform.ID(1)))
		assert.Equal(t, 1, inner.DeleteFlavorCalls.Count())
	})
}
