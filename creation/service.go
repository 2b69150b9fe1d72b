package creation

import (
	"context"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
	"github.com/xwikiorgci/application-wikiflavor/kit/tracing"
	"github.com/xwikiorgci/application-wikiflavor/snowflake"
)

// Provisioner performs the provisioning steps that need the wiki engine
// itself: materializing the wiki and installing a flavor extension into it.
// The host platform supplies the implementation.
type Provisioner interface {
	ProvisionWiki(ctx context.Context, d *wikiflavor.WikiDescriptor) error
	InstallExtension(ctx context.Context, wikiID, extensionID string) error
}

var _ wikiflavor.WikiCreationService = (*Service)(nil)

// Service creates wikis asynchronously. CreateWiki queues the work and
// returns a job handle; the provisioning itself runs on its own goroutine and
// updates the job as it goes.
type Service struct {
	log         *zap.Logger
	descriptors wikiflavor.WikiDescriptorService
	provisioner Provisioner
	idGenerator platform.IDGenerator
	clock       clock.Clock
	metrics     *metrics

	mu   sync.RWMutex
	jobs map[platform.ID]*wikiflavor.Job
	wg   sync.WaitGroup
}

// Option is a functional option for the creation Service.
type Option func(*Service)

// WithClock sets the time source, for tests.
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithIDGenerator sets the job id generator, for tests.
func WithIDGenerator(g platform.IDGenerator) Option {
	return func(s *Service) {
		s.idGenerator = g
	}
}

// WithMetrics registers the service's metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *Service) {
		s.metrics = newMetrics(reg)
	}
}

func NewService(log *zap.Logger, descriptors wikiflavor.WikiDescriptorService, provisioner Provisioner, opts ...Option) *Service {
	s := &Service{
		log:         log,
		descriptors: descriptors,
		provisioner: provisioner,
		idGenerator: snowflake.NewIDGenerator(),
		clock:       clock.New(),
		metrics:     newMetrics(nil),
		jobs:        make(map[platform.ID]*wikiflavor.Job),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreateWiki validates req, queues the provisioning work and returns the job
// handle. The returned job is a snapshot; poll FindJobByID for progress.
func (s *Service) CreateWiki(ctx context.Context, req wikiflavor.CreationRequest) (*wikiflavor.Job, error) {
	span, ctx := tracing.StartSpanFromContext(ctx)
	defer span.Finish()

	if err := req.Valid(); err != nil {
		return nil, tracing.LogError(span, err)
	}

	if req.FailOnExist {
		_, err := s.descriptors.FindDescriptorByID(ctx, req.WikiID)
		if err == nil {
			return nil, tracing.LogError(span, &errors.Error{
				Code: errors.EConflict,
				Msg:  fmt.Sprintf("wiki %q already exists", req.WikiID),
			})
		}
		if errors.ErrorCode(err) != errors.ENotFound {
			return nil, tracing.LogError(span, err)
		}
	}

	job := &wikiflavor.Job{
		ID:        s.idGenerator.ID(),
		WikiID:    req.WikiID,
		Status:    wikiflavor.JobQueued,
		CreatedAt: s.clock.Now().UTC(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	s.log.Info("Wiki creation queued",
		zap.Stringer("job_id", job.ID),
		zap.String("wiki_id", req.WikiID),
		zap.String("extension_id", req.ExtensionID),
	)

	// Snapshot before the goroutine starts; transition mutates job under the
	// lock once provisioning is under way.
	snapshot := *job

	s.wg.Add(1)
	go s.run(job.ID, req)

	return &snapshot, nil
}

// FindJobByID returns the current state of a creation job.
func (s *Service) FindJobByID(ctx context.Context, id platform.ID) (*wikiflavor.Job, error) {
	span, _ := tracing.StartSpanFromContext(ctx)
	defer span.Finish()

	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, &errors.Error{
			Code: errors.ENotFound,
			Msg:  fmt.Sprintf("creation job %s not found", id),
		}
	}

	snapshot := *job
	return &snapshot, nil
}

// Wait blocks until all queued provisioning work has finished. Called on
// shutdown and by tests.
func (s *Service) Wait() {
	s.wg.Wait()
}

// run executes the provisioning steps for one job. It deliberately uses a
// background context: the request that queued the job may be long gone.
func (s *Service) run(jobID platform.ID, req wikiflavor.CreationRequest) {
	defer s.wg.Done()

	ctx := context.Background()
	start := s.clock.Now()

	s.transition(jobID, wikiflavor.JobRunning, nil)

	err := s.provision(ctx, req)

	status := wikiflavor.JobSucceeded
	if err != nil {
		status = wikiflavor.JobFailed
		s.log.Error("Wiki creation failed",
			zap.Stringer("job_id", jobID),
			zap.String("wiki_id", req.WikiID),
			zap.Error(err),
		)
	} else {
		s.log.Info("Wiki created",
			zap.Stringer("job_id", jobID),
			zap.String("wiki_id", req.WikiID),
		)
	}

	s.transition(jobID, status, err)
	s.metrics.observe(string(status), s.clock.Now().Sub(start).Seconds())
}

func (s *Service) provision(ctx context.Context, req wikiflavor.CreationRequest) error {
	d := &wikiflavor.WikiDescriptor{
		ID:          req.WikiID,
		PrettyName:  req.PrettyName,
		Owner:       req.Owner,
		Description: req.Description,
	}

	if _, err := s.descriptors.FindDescriptorByID(ctx, req.WikiID); err != nil {
		if errors.ErrorCode(err) != errors.ENotFound {
			return err
		}
		if err := s.descriptors.CreateDescriptor(ctx, d); err != nil {
			return err
		}
	} else if req.FailOnExist {
		// the descriptor appeared between submission and execution
		return &errors.Error{
			Code: errors.EConflict,
			Msg:  fmt.Sprintf("wiki %q already exists", req.WikiID),
		}
	}

	if err := s.provisioner.ProvisionWiki(ctx, d); err != nil {
		return err
	}

	if req.ExtensionID != "" {
		if err := s.provisioner.InstallExtension(ctx, req.WikiID, req.ExtensionID); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) transition(jobID platform.ID, status wikiflavor.JobStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return
	}

	job.Status = status
	if err != nil {
		job.Err = err.Error()
	}
	if job.Finished() {
		job.FinishedAt = s.clock.Now().UTC()
	}
}
