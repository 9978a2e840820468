package cmd

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/newhook/glass/internal/api"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const statusTimeout = 5 * time.Second

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server health and issue counts",
	Long:  `Check that the server is reachable and summarize the cached issues by status.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	var (
		health *api.HealthResponse
		issues *api.ListIssuesResponse
	)
	g, ctx := errgroup.WithContext(GetContext())
	g.Go(func() error {
		ctx, cancel := context.WithTimeout(ctx, statusTimeout)
		defer cancel()
		var err error
		health, err = client.Health(ctx)
		return err
	})
	g.Go(func() error {
		ctx, cancel := context.WithTimeout(ctx, statusTimeout)
		defer cancel()
		var err error
		issues, err = client.ListIssues(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server at %s is not available: %w", client.BaseURL(), err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Server:  %s (%s)\n", client.BaseURL(), health.Status)
	fmt.Fprintf(out, "Issues:  %d\n", len(issues.Issues))

	for _, c := range countByStatus(issues.Issues) {
		fmt.Fprintf(out, "  %-18s %d\n", c.status, c.n)
	}
	return nil
}

type statusCount struct {
	status string
	n      int
}

// countByStatus tallies issues in lifecycle order, listing unknown statuses
// last in the order they were first seen.
func countByStatus(issues []api.Issue) []statusCount {
	order := []string{
		api.StatusPending,
		api.StatusAnalyzing,
		api.StatusPendingApproval,
		api.StatusInProgress,
		api.StatusPendingReview,
		api.StatusError,
	}
	counts := make(map[string]int)
	for _, issue := range issues {
		if _, ok := counts[issue.Status]; !ok && !slices.Contains(order, issue.Status) {
			order = append(order, issue.Status)
		}
		counts[issue.Status]++
	}

	var result []statusCount
	for _, status := range order {
		if n := counts[status]; n > 0 {
			result = append(result, statusCount{status, n})
		}
	}
	return result
}
