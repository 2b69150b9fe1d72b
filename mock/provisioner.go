package mock

import (
	"context"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
)

type Provisioner struct {
	ProvisionWikiFn       func(context.Context, *wikiflavor.WikiDescriptor) error
	ProvisionWikiCalls    SafeCount
	InstallExtensionFn    func(context.Context, string, string) error
	InstallExtensionCalls SafeCount
}

func NewProvisioner() *Provisioner {
	return &Provisioner{
		ProvisionWikiFn: func(ctx context.Context, d *wikiflavor.WikiDescriptor) error {
			return nil
		},
		InstallExtensionFn: func(ctx context.Context, wikiID, extensionID string) error {
			return nil
		},
	}
}

func (p *Provisioner) ProvisionWiki(ctx context.Context, d *wikiflavor.WikiDescriptor) error {
	defer p.ProvisionWikiCalls.IncrFn()()
	return p.ProvisionWikiFn(ctx, d)
}

func (p *Provisioner) InstallExtension(ctx context.Context, wikiID, extensionID string) error {
	defer p.InstallExtensionCalls.IncrFn()()
	return p.InstallExtensionFn(ctx, wikiID, extensionID)
}
