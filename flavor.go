package wikiflavor

import (
	"context"

	"github.com/xwikiorgci/application-wikiflavor/kit/platform"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
)

// Flavor pairs a human-facing descriptor with the identifier of the extension
// that gets installed when the flavor is applied to a new wiki.
type Flavor struct {
	ID          platform.ID `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description string      `json:"description" db:"description"`
	ExtensionID string      `json:"extensionId" db:"extension_id"`
	Version     string      `json:"version" db:"version"`
}

// FlavorService represents the registry of flavors available for wiki creation.
type FlavorService interface {
	// FindFlavors returns the ordered list of available flavors.
	FindFlavors(ctx context.Context) ([]Flavor, error)

	// FindFlavorByExtensionID returns the flavor registered for the given
	// extension id, or an ENotFound error.
	FindFlavorByExtensionID(ctx context.Context, extensionID string) (*Flavor, error)

	// CreateFlavor registers f and sets f.ID.
	CreateFlavor(ctx context.Context, f *Flavor) error

	// DeleteFlavor removes the flavor with the given id.
	DeleteFlavor(ctx context.Context, id platform.ID) error
}

// Valid returns an error if the flavor is missing a name or extension id.
func (f *Flavor) Valid() error {
	if f.Name == "" {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "flavor name is required",
		}
	}
	if f.ExtensionID == "" {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "flavor extension id is required",
		}
	}
	return nil
}
