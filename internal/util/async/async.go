package async

import (
	"context"
	"errors"
	"fmt"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes all tasks concurrently and waits for every one of
// them to complete. Failures are collected and joined, so one failed task
// never masks another and never hides sibling successes.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "rig-master-0", Func: bootMaster},
//	    {Name: "rig-worker-0", Func: bootWorker},
//	}
//	if err := async.RunParallel(ctx, tasks); err != nil {
//	    return err
//	}
func RunParallel(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	type result struct {
		name string
		err  error
	}

	resultChan := make(chan result, len(tasks))

	for _, task := range tasks {
		task := task
		go func() {
			err := task.Func(ctx)
			resultChan <- result{name: task.Name, err: err}
		}()
	}

	// Every task is joined before any error is reported.
	var errs []error
	for i := 0; i < len(tasks); i++ {
		res := <-resultChan
		if res.err != nil {
			errs = append(errs, fmt.Errorf("task %s: %w", res.name, res.err))
		}
	}

	return errors.Join(errs...)
}
