package flavors

import (
	"context"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	ierrors "github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
)

// seedFile is the on-disk flavor catalog, e.g.
//
//	[[flavor]]
//	name = "Knowledge Base"
//	description = "A wiki preloaded with knowledge base applications."
//	extension-id = "org.xwiki.contrib:kb-flavor"
//	version = "1.4"
type seedFile struct {
	Flavors []seedFlavor `toml:"flavor"`
}

type seedFlavor struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	ExtensionID string `toml:"extension-id"`
	Version     string `toml:"version"`
}

// Seed loads the flavor catalog at path and registers every flavor whose
// extension id is not yet known on svc. Returns the number of flavors added.
func Seed(ctx context.Context, log *zap.Logger, svc wikiflavor.FlavorService, path string) (int, error) {
	var file seedFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return 0, &ierrors.Error{
			Code: ierrors.EInvalid,
			Msg:  "unable to read flavor seed file",
			Err:  err,
		}
	}

	added := 0
	for _, sf := range file.Flavors {
		_, err := svc.FindFlavorByExtensionID(ctx, sf.ExtensionID)
		if err == nil {
			continue
		}
		if ierrors.ErrorCode(err) != ierrors.ENotFound {
			return added, err
		}

		f := wikiflavor.Flavor{
			Name:        sf.Name,
			Description: sf.Description,
			ExtensionID: sf.ExtensionID,
			Version:     sf.Version,
		}
		if err := svc.CreateFlavor(ctx, &f); err != nil {
			return added, err
		}
		added++
	}

	if added > 0 {
		log.Info("Seeded flavor registry", zap.Int("flavor_count", added), zap.String("path", path))
	}
	return added, nil
}
