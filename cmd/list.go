package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/newhook/glass/internal/api"
	"github.com/newhook/glass/internal/app"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// defaultListWidth is used when stdout is not a terminal.
const defaultListWidth = 100

var flagListRefresh bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues",
	Long:  `Print the server's cached issue list, or refetch it from upstream with --refresh.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVarP(&flagListRefresh, "refresh", "r", false, "refresh the list from upstream first")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)
	ctx := GetContext()

	var resp *api.ListIssuesResponse
	if flagListRefresh {
		resp, err = client.RefreshIssues(ctx)
	} else {
		resp, err = client.ListIssues(ctx)
	}
	if err != nil {
		return err
	}

	width := defaultListWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	printIssues(cmd.OutOrStdout(), resp.Issues, width)
	return nil
}

// printIssues writes one row per issue, shrinking the title column to fit width.
func printIssues(w io.Writer, issues []api.Issue, width int) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "No issues")
		return
	}

	const fixed = 14 + 1 + 18 + 1 + 7 + 1 + 10 + 1
	titleWidth := max(width-fixed, 20)

	fmt.Fprintf(w, "%-14s %-18s %-*s %7s %s\n", "ID", "STATUS", titleWidth, "TITLE", "EVENTS", "LAST SEEN")
	for _, issue := range issues {
		id := issue.ShortID
		if id == "" {
			id = issue.ID
		}
		fmt.Fprintf(w, "%-14s %-18s %-*s %7d %s\n",
			app.Truncate(id, 14),
			issue.Status,
			titleWidth, app.Truncate(issue.Title, titleWidth),
			issue.EventCount,
			lastSeenDate(issue.LastSeen))
	}
}

func lastSeenDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
