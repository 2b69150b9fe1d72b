package wikiflavor

import (
	"fmt"

	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
)

// Action is the kind of operation a permission allows.
type Action string

const (
	// ReadAction is the action for reading.
	ReadAction Action = "read"
	// WriteAction is the action for writing, including resource creation.
	WriteAction Action = "write"
)

// Valid checks if the action is a member of the Action enum.
func (a Action) Valid() error {
	switch a {
	case ReadAction, WriteAction:
	default:
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  fmt.Sprintf("invalid action type %q", a),
		}
	}
	return nil
}

// ResourceType is the class of resource a permission applies to.
type ResourceType string

const (
	// WikisResourceType gives access to wiki provisioning.
	WikisResourceType ResourceType = "wikis"
	// FlavorsResourceType gives access to the flavor registry.
	FlavorsResourceType ResourceType = "flavors"
)

// Valid checks if the resource type is a member of the ResourceType enum.
func (t ResourceType) Valid() error {
	switch t {
	case WikisResourceType, FlavorsResourceType:
	default:
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  fmt.Sprintf("invalid resource type %q", t),
		}
	}
	return nil
}

// Resource names a resource type, optionally scoped to one wiki.
type Resource struct {
	Type ResourceType `json:"type"`
	// WikiID scopes the permission to a single wiki; empty means all wikis.
	WikiID string `json:"wikiId,omitempty"`
}

// Permission defines an action and a resource.
type Permission struct {
	Action   Action   `json:"action"`
	Resource Resource `json:"resource"`
}

func (p Permission) String() string {
	if p.Resource.WikiID != "" {
		return fmt.Sprintf("%s:%s/%s", p.Action, p.Resource.Type, p.Resource.WikiID)
	}
	return fmt.Sprintf("%s:%s", p.Action, p.Resource.Type)
}

// Valid checks both halves of the permission.
func (p Permission) Valid() error {
	if err := p.Action.Valid(); err != nil {
		return err
	}
	return p.Resource.Type.Valid()
}

// Matches reports whether p grants what perm asks for. A permission without a
// wiki scope matches any wiki of its resource type.
func (p Permission) Matches(perm Permission) bool {
	if p.Action != perm.Action {
		return false
	}
	if p.Resource.Type != perm.Resource.Type {
		return false
	}
	if p.Resource.WikiID == "" {
		return true
	}
	return p.Resource.WikiID == perm.Resource.WikiID
}

// NewPermission returns a permission scoped to a single wiki.
func NewPermission(a Action, rt ResourceType, wikiID string) (*Permission, error) {
	p := &Permission{
		Action: a,
		Resource: Resource{
			Type:   rt,
			WikiID: wikiID,
		},
	}
	return p, p.Valid()
}

// NewGlobalPermission returns a permission covering all resources of a type.
func NewGlobalPermission(a Action, rt ResourceType) (*Permission, error) {
	p := &Permission{
		Action: a,
		Resource: Resource{
			Type: rt,
		},
	}
	return p, p.Valid()
}

// PermissionSet is the set of permissions an authorizer holds.
type PermissionSet []Permission

// Allowed reports whether the set grants p.
func (s PermissionSet) Allowed(p Permission) bool {
	for _, perm := range s {
		if perm.Matches(p) {
			return true
		}
	}
	return false
}

// Authorizer is the acting identity attached to a request. Implementations
// are supplied by the host platform and carried on the context.
type Authorizer interface {
	// PermissionSet returns the allowed permissions.
	PermissionSet() (PermissionSet, error)

	// Identifier returns the identity of the user behind the authorizer.
	Identifier() string

	// Kind describes the authorizer, e.g. "session" or "token".
	Kind() string
}
