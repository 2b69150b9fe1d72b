package inmem

import (
	"context"

	"go.uber.org/zap"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/creation"
)

var _ creation.Provisioner = (*Provisioner)(nil)

// Provisioner is a stand-in for the wiki engine used in single-process
// deployments and tests: provisioning succeeds immediately and only leaves a
// log trail.
type Provisioner struct {
	log *zap.Logger
}

func NewProvisioner(log *zap.Logger) *Provisioner {
	return &Provisioner{log: log}
}

func (p *Provisioner) ProvisionWiki(ctx context.Context, d *wikiflavor.WikiDescriptor) error {
	p.log.Info("Provisioned wiki", zap.String("wiki_id", d.ID), zap.String("owner", d.Owner))
	return nil
}

func (p *Provisioner) InstallExtension(ctx context.Context, wikiID, extensionID string) error {
	p.log.Info("Installed extension", zap.String("wiki_id", wikiID), zap.String("extension_id", extensionID))
	return nil
}
