package authorizer

import (
	"context"
	"fmt"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	icontext "github.com/xwikiorgci/application-wikiflavor/context"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
)

func isAllowed(a wikiflavor.Authorizer, p wikiflavor.Permission) error {
	pset, err := a.PermissionSet()
	if err != nil {
		return err
	}

	if !pset.Allowed(p) {
		return &errors.Error{
			Code: errors.EUnauthorized,
			Msg:  fmt.Sprintf("%s is unauthorized", p),
		}
	}
	return nil
}

func authorize(ctx context.Context, a wikiflavor.Action, rt wikiflavor.ResourceType, wikiID string) (wikiflavor.Authorizer, wikiflavor.Permission, error) {
	var p *wikiflavor.Permission
	var err error
	if wikiID != "" {
		p, err = wikiflavor.NewPermission(a, rt, wikiID)
	} else {
		p, err = wikiflavor.NewGlobalPermission(a, rt)
	}
	if err != nil {
		return nil, wikiflavor.Permission{}, err
	}
	auth, err := icontext.GetAuthorizer(ctx)
	if err != nil {
		return nil, wikiflavor.Permission{}, err
	}
	return auth, *p, isAllowed(auth, *p)
}

// AuthorizeCreateWiki authorizes the user in the context to create wikis.
// The permission is checked against the main wiki, the scope the host
// platform grants wiki creation on.
func AuthorizeCreateWiki(ctx context.Context, mainWikiID string) (wikiflavor.Authorizer, wikiflavor.Permission, error) {
	return authorize(ctx, wikiflavor.WriteAction, wikiflavor.WikisResourceType, mainWikiID)
}

// AuthorizeReadWiki authorizes the user in the context to read the given wiki.
func AuthorizeReadWiki(ctx context.Context, wikiID string) (wikiflavor.Authorizer, wikiflavor.Permission, error) {
	return authorize(ctx, wikiflavor.ReadAction, wikiflavor.WikisResourceType, wikiID)
}

// AuthorizeReadFlavors authorizes the user in the context to list the flavor
// registry.
func AuthorizeReadFlavors(ctx context.Context) (wikiflavor.Authorizer, wikiflavor.Permission, error) {
	return authorize(ctx, wikiflavor.ReadAction, wikiflavor.FlavorsResourceType, "")
}

// AuthorizeWriteFlavors authorizes the user in the context to change the
// flavor registry.
func AuthorizeWriteFlavors(ctx context.Context) (wikiflavor.Authorizer, wikiflavor.Permission, error) {
	return authorize(ctx, wikiflavor.WriteAction, wikiflavor.FlavorsResourceType, "")
}
