package reconciler

import (
	"context"
	"fmt"
	"io"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/devantler-tech/bergctl/pkg/cli/parallel"
	"github.com/devantler-tech/bergctl/pkg/client/bergenholm"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// ClientFunc returns the client for a Bergenholm base URL.
type ClientFunc func(baseURL string) (bergenholm.Interface, error)

// ItemFailure records one manifest item that could not be reconciled.
type ItemFailure struct {
	Kind bergenholm.Kind `json:"kind"`
	ID   string          `json:"id"`
	Msg  string          `json:"msg"`
}

// Report is the outcome of applying a manifest. Results are listed in
// manifest order and only for items that were reconciled.
type Report struct {
	Changed bool                   `json:"changed"`
	Groups  []v1alpha1.GroupResult `json:"groups,omitempty"`
	Hosts   []v1alpha1.HostResult  `json:"hosts,omitempty"`
	Failed  []ItemFailure          `json:"failed,omitempty"`
}

// Applier reconciles every group and host of a manifest. Groups are applied
// before hosts so that hosts can reference groups created in the same run.
type Applier struct {
	// Clients resolves the client for each distinct URL in the manifest.
	Clients ClientFunc
	// DefaultURL is used for items when neither the item nor the manifest sets a URL.
	DefaultURL string
	// DryRun reports outcomes without writing.
	DryRun bool
	// Parallelism bounds how many items of one kind are reconciled at once.
	Parallelism int
	// ContinueOnError reconciles every item even after failures.
	ContinueOnError bool
	// Logger receives reconciliation logs. If nil, logs are discarded.
	Logger logrus.FieldLogger
}

type groupSlot struct {
	result v1alpha1.GroupResult
	done   bool
	err    error
}

type hostSlot struct {
	result v1alpha1.HostResult
	done   bool
	err    error
}

// Apply validates the manifest and reconciles its items. m is not modified.
// On failure the returned Report still holds the results of the items that
// were reconciled.
func (a *Applier) Apply(ctx context.Context, m v1alpha1.Manifest) (Report, error) {
	m.Groups = append([]v1alpha1.GroupInput(nil), m.Groups...)
	m.Hosts = append([]v1alpha1.HostInput(nil), m.Hosts...)
	m.URL = a.urlFor("", m.URL)

	err := m.Validate()
	if err != nil {
		return Report{}, err
	}

	logger := a.logger()

	clients, err := a.resolveClients(m)
	if err != nil {
		return Report{}, err
	}

	executor := parallel.NewExecutor(a.Parallelism)

	groups := make([]groupSlot, len(m.Groups))
	groupTasks := make([]parallel.Task, len(m.Groups))

	for i, in := range m.Groups {
		groupTasks[i] = func(ctx context.Context) error {
			itemURL := a.urlFor(in.URL, m.URL)
			r := NewGroupReconciler(clients[itemURL], a.DryRun, logger.WithField("url", itemURL))

			result, reconcileErr := r.Reconcile(ctx, in)
			groups[i] = groupSlot{result: result, done: reconcileErr == nil, err: reconcileErr}

			if reconcileErr != nil {
				return fmt.Errorf("group %s: %w", in.Name, reconcileErr)
			}

			return nil
		}
	}

	hosts := make([]hostSlot, len(m.Hosts))
	hostTasks := make([]parallel.Task, len(m.Hosts))

	for i, in := range m.Hosts {
		hostTasks[i] = func(ctx context.Context) error {
			itemURL := a.urlFor(in.URL, m.URL)
			r := NewHostReconciler(clients[itemURL], a.DryRun, logger.WithField("url", itemURL))

			result, reconcileErr := r.Reconcile(ctx, in)
			hosts[i] = hostSlot{result: result, done: reconcileErr == nil, err: reconcileErr}

			if reconcileErr != nil {
				return fmt.Errorf("host %s: %w", in.UUID, reconcileErr)
			}

			return nil
		}
	}

	run := executor.Execute
	if a.ContinueOnError {
		run = executor.ExecuteAll
	}

	groupErr := run(ctx, groupTasks...)
	if groupErr != nil && !a.ContinueOnError {
		return a.report(m, groups, nil), groupErr
	}

	hostErr := run(ctx, hostTasks...)

	return a.report(m, groups, hosts), multierr.Combine(groupErr, hostErr)
}

func (a *Applier) report(m v1alpha1.Manifest, groups []groupSlot, hosts []hostSlot) Report {
	var report Report

	for i, slot := range groups {
		switch {
		case slot.done:
			report.Groups = append(report.Groups, slot.result)
			report.Changed = report.Changed || slot.result.Changed
		case slot.err != nil:
			report.Failed = append(report.Failed, ItemFailure{
				Kind: bergenholm.KindGroup,
				ID:   m.Groups[i].Name,
				Msg:  slot.err.Error(),
			})
		}
	}

	for i, slot := range hosts {
		switch {
		case slot.done:
			report.Hosts = append(report.Hosts, slot.result)
			report.Changed = report.Changed || slot.result.Changed
		case slot.err != nil:
			report.Failed = append(report.Failed, ItemFailure{
				Kind: bergenholm.KindHost,
				ID:   m.Hosts[i].UUID,
				Msg:  slot.err.Error(),
			})
		}
	}

	return report
}

// resolveClients builds one client per distinct URL before any item runs.
func (a *Applier) resolveClients(m v1alpha1.Manifest) (map[string]bergenholm.Interface, error) {
	if a.Clients == nil {
		return nil, ErrNilClient
	}

	clients := make(map[string]bergenholm.Interface)

	add := func(itemURL string) error {
		resolved := a.urlFor(itemURL, m.URL)
		if _, ok := clients[resolved]; ok {
			return nil
		}

		client, err := a.Clients(resolved)
		if err != nil {
			return fmt.Errorf("client for %s: %w", resolved, err)
		}

		clients[resolved] = client

		return nil
	}

	for _, in := range m.Groups {
		err := add(in.URL)
		if err != nil {
			return nil, err
		}
	}

	for _, in := range m.Hosts {
		err := add(in.URL)
		if err != nil {
			return nil, err
		}
	}

	return clients, nil
}

func (a *Applier) urlFor(itemURL, manifestURL string) string {
	switch {
	case itemURL != "":
		return itemURL
	case manifestURL != "":
		return manifestURL
	case a.DefaultURL != "":
		return a.DefaultURL
	default:
		return v1alpha1.DefaultURL
	}
}

func (a *Applier) logger() logrus.FieldLogger {
	if a.Logger != nil {
		return a.Logger
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	return discard
}
