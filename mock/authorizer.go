package mock

import (
	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
)

var _ wikiflavor.Authorizer = (*Authorizer)(nil)

// Authorizer is a mock implementation of wikiflavor.Authorizer. The zero
// value denies everything.
type Authorizer struct {
	Permissions wikiflavor.PermissionSet
	UserID      string
	AuthKind    string
	Err         error
}

// NewAuthorizer returns an authorizer granting the given permissions.
func NewAuthorizer(userID string, permissions ...wikiflavor.Permission) *Authorizer {
	return &Authorizer{
		Permissions: permissions,
		UserID:      userID,
		AuthKind:    "mock",
	}
}

func (a *Authorizer) PermissionSet() (wikiflavor.PermissionSet, error) {
	if a.Err != nil {
		return nil, a.Err
	}
	return a.Permissions, nil
}

func (a *Authorizer) Identifier() string {
	return a.UserID
}

func (a *Authorizer) Kind() string {
	if a.AuthKind == "" {
		return "mock"
	}
	return a.AuthKind
}
