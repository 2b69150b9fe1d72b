package wikiflavor

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/xwikiorgci/application-wikiflavor/kit/platform"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
)

// wikiIDPattern restricts wiki identifiers to what the descriptor store and
// the URL router can both carry.
var wikiIDPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// CreationRequest carries everything needed to provision a new wiki. It is
// consumed once; callers must not reuse it after submission.
type CreationRequest struct {
	// WikiID is the identifier of the wiki to create, e.g. "sales".
	WikiID string `json:"wikiId"`
	// PrettyName is the display name of the new wiki.
	PrettyName string `json:"prettyName"`
	// Owner is the identity that will own the new wiki.
	Owner string `json:"owner"`
	// Description is free-form text stored on the descriptor.
	Description string `json:"description,omitempty"`
	// ExtensionID optionally names the flavor to install after the wiki
	// exists. Empty means a bare wiki.
	ExtensionID string `json:"extensionId,omitempty"`
	// FailOnExist makes creation fail instead of reusing an existing
	// descriptor with the same id.
	FailOnExist bool `json:"failOnExist,omitempty"`
}

// Valid returns an error if the request cannot be submitted.
func (r *CreationRequest) Valid() error {
	if r.WikiID == "" {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "wiki id is required",
		}
	}
	if !wikiIDPattern.MatchString(r.WikiID) {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  fmt.Sprintf("wiki id %q must match %s", r.WikiID, wikiIDPattern),
		}
	}
	if r.Owner == "" {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "wiki owner is required",
		}
	}
	return nil
}

// WikiDescriptor describes a wiki known to the platform.
type WikiDescriptor struct {
	ID          string `json:"id"`
	PrettyName  string `json:"prettyName"`
	Owner       string `json:"owner"`
	Description string `json:"description,omitempty"`
}

// WikiDescriptorService gives access to the descriptors of existing wikis.
// The implementation is supplied by the host platform.
type WikiDescriptorService interface {
	// MainWikiID returns the identifier of the main wiki, the scope
	// against which the wiki-creation permission is checked.
	MainWikiID(ctx context.Context) (string, error)

	// FindDescriptorByID returns the descriptor of the given wiki, or an
	// ENotFound error.
	FindDescriptorByID(ctx context.Context, wikiID string) (*WikiDescriptor, error)

	// CreateDescriptor registers a new wiki descriptor.
	CreateDescriptor(ctx context.Context, d *WikiDescriptor) error
}

// JobStatus is the lifecycle state of a creation job.
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// Job is the handle returned for an asynchronous wiki creation.
type Job struct {
	ID         platform.ID `json:"id"`
	WikiID     string      `json:"wikiId"`
	Status     JobStatus   `json:"status"`
	Err        string      `json:"error,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	FinishedAt time.Time   `json:"finishedAt,omitempty"`
}

// Finished reports whether the job reached a terminal status.
func (j *Job) Finished() bool {
	return j.Status == JobSucceeded || j.Status == JobFailed
}

// WikiCreationService creates wikis asynchronously.
type WikiCreationService interface {
	// CreateWiki validates the request, queues the provisioning work and
	// returns the job handle.
	CreateWiki(ctx context.Context, req CreationRequest) (*Job, error)

	// FindJobByID returns the current state of a creation job.
	FindJobByID(ctx context.Context, id platform.ID) (*Job, error)
}
