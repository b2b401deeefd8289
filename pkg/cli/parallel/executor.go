package parallel

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultMaxConcurrency is the concurrency used when none is configured.
const DefaultMaxConcurrency = 1

// Executor provides controlled parallel execution of tasks.
type Executor struct {
	maxConcurrency int64
}

// NewExecutor creates a new parallel executor with the specified max concurrency.
// If maxConcurrency <= 0, DefaultMaxConcurrency is used.
func NewExecutor(maxConcurrency int) *Executor {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}

	return &Executor{maxConcurrency: int64(maxConcurrency)}
}

// MaxConcurrency returns how many tasks may run at once.
func (executor *Executor) MaxConcurrency() int {
	return int(executor.maxConcurrency)
}

// Task represents a unit of work that can be executed in parallel.
type Task func(ctx context.Context) error

// Execute runs all tasks with controlled parallelism and stops at the first
// failure. Tasks that have not started when a task fails are skipped, and the
// first error is returned. With a concurrency of one, tasks run in order.
func (executor *Executor) Execute(ctx context.Context, tasks ...Task) error {
	if len(tasks) == 0 {
		return nil
	}

	if len(tasks) == 1 {
		return tasks[0](ctx)
	}

	if executor.maxConcurrency == 1 {
		for _, task := range tasks {
			err := task(ctx)
			if err != nil {
				return err
			}
		}

		return nil
	}

	sem := semaphore.NewWeighted(executor.maxConcurrency)
	group, groupCtx := errgroup.WithContext(ctx)

	for _, task := range tasks {
		group.Go(func() error {
			acquireErr := sem.Acquire(groupCtx, 1)
			if acquireErr != nil {
				return fmt.Errorf("acquire semaphore: %w", acquireErr)
			}

			defer sem.Release(1)

			if groupCtx.Err() != nil {
				return fmt.Errorf("task skipped: %w", groupCtx.Err())
			}

			return task(groupCtx)
		})
	}

	waitErr := group.Wait()
	if waitErr != nil {
		return fmt.Errorf("parallel execution: %w", waitErr)
	}

	return nil
}

// ExecuteAll runs every task with controlled parallelism regardless of
// failures. The returned error combines all task errors in task order.
func (executor *Executor) ExecuteAll(ctx context.Context, tasks ...Task) error {
	errs := make([]error, len(tasks))

	if executor.maxConcurrency == 1 {
		for i, task := range tasks {
			errs[i] = task(ctx)
		}

		return multierr.Combine(errs...)
	}

	group := new(errgroup.Group)
	group.SetLimit(int(executor.maxConcurrency))

	for i, task := range tasks {
		group.Go(func() error {
			errs[i] = task(ctx)

			return nil
		})
	}

	_ = group.Wait()

	return multierr.Combine(errs...)
}
