package creation_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/creation"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
	"github.com/xwikiorgci/application-wikiflavor/mock"
)

type fixture struct {
	svc         *creation.Service
	descriptors *mock.WikiDescriptorService
	provisioner *mock.Provisioner
	clock       *clock.Mock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		descriptors: mock.NewWikiDescriptorService(),
		provisioner: mock.NewProvisioner(),
		clock:       clock.NewMock(),
	}
	f.clock.Set(time.Date(2024, 5, 17, 9, 0, 0, 0, time.UTC))
	f.svc = creation.NewService(
		zaptest.NewLogger(t),
		f.descriptors,
		f.provisioner,
		creation.WithClock(f.clock),
	)
	return f
}

func (f *fixture) createAndWait(t *testing.T, req wikiflavor.CreationRequest) *wikiflavor.Job {
	t.Helper()

	job, err := f.svc.CreateWiki(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, job)
	f.svc.Wait()

	done, err := f.svc.FindJobByID(context.Background(), job.ID)
	require.NoError(t, err)
	return done
}

func TestCreateWiki(t *testing.T) {
	f := newFixture(t)

	job := f.createAndWait(t, wikiflavor.CreationRequest{
		WikiID:      "sales",
		PrettyName:  "Sales",
		Owner:       "sarah",
		ExtensionID: "org.xwiki.contrib:kb-flavor",
	})

	assert.Equal(t, wikiflavor.JobSucceeded, job.Status)
	assert.Empty(t, job.Err)
	assert.Equal(t, f.clock.Now().UTC(), job.CreatedAt)
	assert.Equal(t, f.clock.Now().UTC(), job.FinishedAt)

	assert.Equal(t, 1, f.descriptors.CreateDescriptorCalls.Count())
	assert.Equal(t, 1, f.provisioner.ProvisionWikiCalls.Count())
	assert.Equal(t, 1, f.provisioner.InstallExtensionCalls.Count())
}

func TestCreateWiki_NoFlavor(t *testing.T) {
	f := newFixture(t)

	job := f.createAndWait(t, wikiflavor.CreationRequest{
		WikiID: "plain",
		Owner:  "sarah",
	})

	assert.Equal(t, wikiflavor.JobSucceeded, job.Status)
	assert.Equal(t, 0, f.provisioner.InstallExtensionCalls.Count())
}

func TestCreateWiki_InvalidRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateWiki(context.Background(), wikiflavor.CreationRequest{
		WikiID: "Not Valid",
		Owner:  "sarah",
	})
	require.Error(t, err)
	assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))
}

func TestCreateWiki_FailOnExist(t *testing.T) {
	f := newFixture(t)

	f.descriptors.FindDescriptorByIDFn = func(_ context.Context, wikiID string) (*wikiflavor.WikiDescriptor, error) {
		return &wikiflavor.WikiDescriptor{ID: wikiID}, nil
	}

	_, err := f.svc.CreateWiki(context.Background(), wikiflavor.CreationRequest{
		WikiID:      "sales",
		Owner:       "sarah",
		FailOnExist: true,
	})
	require.Error(t, err)
	assert.Equal(t, errors.EConflict, errors.ErrorCode(err))
}

func TestCreateWiki_ProvisioningFailure(t *testing.T) {
	f := newFixture(t)

	f.provisioner.ProvisionWikiFn = func(_ context.Context, d *wikiflavor.WikiDescriptor) error {
		return fmt.Errorf("engine unreachable")
	}

	job := f.createAndWait(t, wikiflavor.CreationRequest{
		WikiID: "sales",
		Owner:  "sarah",
	})

	assert.Equal(t, wikiflavor.JobFailed, job.Status)
	assert.Contains(t, job.Err, "engine unreachable")
	assert.False(t, job.FinishedAt.IsZero())
}

func TestCreateWiki_HandleNotSharedWithWorker(t *testing.T) {
	f := newFixture(t)

	// The returned handle must be detached from the copy the provisioning
	// goroutine mutates; the race detector trips here if it is not.
	for i := 0; i < 200; i++ {
		job, err := f.svc.CreateWiki(context.Background(), wikiflavor.CreationRequest{
			WikiID: fmt.Sprintf("wiki%d", i),
			Owner:  "sarah",
		})
		require.NoError(t, err)
		assert.Equal(t, wikiflavor.JobQueued, job.Status)
		assert.True(t, job.FinishedAt.IsZero())
	}
	f.svc.Wait()
}

func TestFindJobByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.FindJobByID(context.Background(), platform.ID(0xdead))
	require.Error(t, err)
	assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
}

func TestFindJobByID_ReturnsSnapshot(t *testing.T) {
	f := newFixture(t)

	job := f.createAndWait(t, wikiflavor.CreationRequest{
		WikiID: "sales",
		Owner:  "sarah",
	})

	// mutating the returned job must not leak into the store
	job.Status = wikiflavor.JobQueued
	again, err := f.svc.FindJobByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, wikiflavor.JobSucceeded, again.Status)
}
