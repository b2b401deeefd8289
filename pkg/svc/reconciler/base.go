package reconciler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/devantler-tech/bergctl/pkg/client/bergenholm"
	"github.com/sirupsen/logrus"
)

// ErrNilClient is returned when a reconciler is used without a client.
var ErrNilClient = errors.New("bergenholm client is nil")

// Base holds what every reconciler needs: the REST client, the dry-run switch
// and a logger.
type Base struct {
	Client bergenholm.Interface
	DryRun bool
	Logger logrus.FieldLogger
}

// NewBase creates a Base. A nil logger discards log output.
func NewBase(client bergenholm.Interface, dryRun bool, logger logrus.FieldLogger) *Base {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	return &Base{Client: client, DryRun: dryRun, Logger: logger}
}

// New builds a reconciler of any type from a fresh Base.
func New[T any](
	client bergenholm.Interface,
	dryRun bool,
	logger logrus.FieldLogger,
	constructor func(*Base) T,
) T {
	return constructor(NewBase(client, dryRun, logger))
}

// Snapshot is the remote state of a resource as read before a decision.
type Snapshot struct {
	// Exists is false when the resource was not found.
	Exists bool
	// Params is the stored parameter set; nil when the resource does not exist.
	Params v1alpha1.Params
	// Installed is the host's installed flag; always false for groups.
	Installed bool
}

// read fetches a resource. A 404 yields a Snapshot with Exists false.
func (b *Base) read(ctx context.Context, kind bergenholm.Kind, id string) (Snapshot, error) {
	if b.Client == nil {
		return Snapshot{}, ErrNilClient
	}

	params, err := b.Client.Get(ctx, kind, id)
	if err != nil {
		if bergenholm.IsNotFound(err) {
			return Snapshot{}, nil
		}

		return Snapshot{}, fmt.Errorf("failed to read %s/%s: %w", kind, id, err)
	}

	return Snapshot{Exists: true, Params: params}, nil
}

// execute performs the write a plan calls for, unless the plan is a no-op or
// the reconciler runs dry. check forces a dry run for this call only.
func (b *Base) execute(ctx context.Context, kind bergenholm.Kind, id string, plan Plan, check bool) error {
	entry := b.Logger.WithFields(logrus.Fields{
		"kind":   string(kind),
		"id":     id,
		"action": plan.Action.String(),
	})

	if plan.Action == ActionNone {
		entry.Debug("resource already converged")

		return nil
	}

	if b.DryRun || check {
		entry.Info("dry-run: skipping write")

		return nil
	}

	var err error

	switch plan.Action {
	case ActionCreate:
		err = b.Client.Create(ctx, kind, id, plan.Payload)
	case ActionUpdate:
		err = b.Client.Update(ctx, kind, id, plan.Payload)
	case ActionDelete:
		err = b.Client.Delete(ctx, kind, id)
	case ActionNone:
	}

	if err != nil {
		return fmt.Errorf("failed to %s %s/%s: %w", plan.Action, kind, id, err)
	}

	entry.Info("resource reconciled")

	return nil
}
