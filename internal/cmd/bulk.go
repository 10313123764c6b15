package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/paystack/paystack-cli/internal/dryrun"
	"github.com/paystack/paystack-cli/internal/iocontext"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

// DefaultConcurrency is the default number of concurrent workers
const DefaultConcurrency = 5

// BulkResult is the outcome of one call in a bulk run.
type BulkResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// runBulkOperation executes operation for every id with bounded parallelism.
// Results keep the order of ids.
func runBulkOperation(
	ctx context.Context,
	ids []string,
	concurrency int64,
	progress bool,
	errOut io.Writer,
	operation func(ctx context.Context, id string) (any, error),
) []BulkResult {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if errOut == nil {
		errOut = io.Discard
	}

	sem := semaphore.NewWeighted(concurrency)
	var mu sync.Mutex
	results := make([]BulkResult, len(ids))
	total := len(ids)
	var done int64

	g, ctx := errgroup.WithContext(ctx)

	for i, id := range ids {
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = BulkResult{ID: id, Error: err.Error()}
				return nil
			}
			defer sem.Release(1)

			data, err := operation(ctx, id)
			if err != nil {
				results[i] = BulkResult{ID: id, Error: err.Error()}
			} else {
				results[i] = BulkResult{ID: id, Success: true, Data: data}
			}

			if progress && total > 0 {
				current := atomic.AddInt64(&done, 1)
				mu.Lock()
				_, _ = fmt.Fprintf(errOut, "\rProcessed %d/%d", current, total)
				mu.Unlock()
			}
			// Individual failures never cancel the rest of the run.
			return nil
		})
	}

	_ = g.Wait()

	if progress && total > 0 {
		_, _ = fmt.Fprintf(errOut, "\rProcessed %d/%d\n", atomic.LoadInt64(&done), total)
	}

	return results
}

// countResults returns success and failure counts from bulk results
func countResults(results []BulkResult) (success, failure int) {
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failure++
		}
	}
	return
}

// responseData decodes the data of resp for inclusion in a bulk result.
func responseData(resp *paystack.Response) any {
	data, err := decodeGeneric(resp.Data)
	if err != nil {
		return nil
	}
	return data
}

// printBulkResults writes results as {"items": [...]} in structured modes or a
// status table otherwise. It fails when any call failed.
func printBulkResults(cmd *cobra.Command, results []BulkResult, v view) error {
	success, failure := countResults(results)
	f := newFormatter(cmd)
	if f.Structured() {
		if err := f.Output(map[string]any{"items": results, "succeeded": success, "failed": failure}); err != nil {
			return err
		}
	} else {
		headers := []string{"ID", "STATUS"}
		typed := v.model != nil && v.model.row != nil
		if typed {
			headers = append(headers, v.model.headers...)
		} else {
			for _, c := range v.columns {
				headers = append(headers, c.header)
			}
		}
		f.StartTable(headers)
		for _, r := range results {
			status := "ok"
			if !r.Success {
				status = "error: " + r.Error
			}
			row := []string{r.ID, status}
			if typed {
				row = append(row, bulkModelRow(v.model, r.Data)...)
				f.Row(row...)
				continue
			}
			obj, _ := r.Data.(map[string]any)
			for _, c := range v.columns {
				if obj == nil {
					row = append(row, "")
					continue
				}
				row = append(row, c.render(obj))
			}
			f.Row(row...)
		}
		if err := f.EndTable(); err != nil {
			return err
		}
	}
	if failure > 0 {
		return fmt.Errorf("%d of %d requests failed", failure, len(results))
	}
	return nil
}

// bulkModelRow renders one result's data through the model, leaving the
// cells blank for failed calls or data the model cannot decode.
func bulkModelRow(mv *modelView, data any) []string {
	blank := make([]string, len(mv.headers))
	if data == nil {
		return blank
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return blank
	}
	cells, err := mv.row(raw)
	if err != nil {
		return blank
	}
	return cells
}

// addConcurrencyFlag registers --concurrency on a bulk command.
func addConcurrencyFlag(cmd *cobra.Command, p *int64) {
	cmd.Flags().Int64Var(p, "concurrency", DefaultConcurrency, "Maximum concurrent requests")
}

// runBulkCalls issues fn once per id. A single id renders like any other
// call; several run concurrently and render as a result table.
func runBulkCalls(cmd *cobra.Command, operation string, ids []string, concurrency int64, v view, fn func(ctx context.Context, c *paystack.Client, id string) (*paystack.Response, error)) error {
	if len(ids) == 1 {
		return runCall(cmd, operation, v, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
			return fn(ctx, c, ids[0])
		})
	}
	ctx := cmd.Context()
	if dryrun.IsEnabled(ctx) {
		return previewCall(cmd, operation, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
			var last *paystack.Response
			for _, id := range ids {
				resp, err := fn(ctx, c, id)
				if err != nil {
					return nil, err
				}
				last = resp
			}
			return last, nil
		})
	}
	client, err := getClient(cmd)
	if err != nil {
		return err
	}
	results := runBulkOperation(ctx, ids, concurrency, !flags.Quiet && !isJSON(cmd), iocontext.GetIO(ctx).ErrOut, func(ctx context.Context, id string) (any, error) {
		resp, err := fn(ctx, client, id)
		if err != nil {
			return nil, err
		}
		return responseData(resp), nil
	})
	return printBulkResults(cmd, results, v)
}
