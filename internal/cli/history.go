package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"pcrsim/internal/history"
)

func newHistoryCmd(stdout io.Writer) *cobra.Command {
	var (
		dbPath string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "list recent simulation runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				return &exitErr{code: exitUsage, err: fmt.Errorf("--db is required")}
			}
			store, err := history.Open(dbPath)
			if err != nil {
				return &exitErr{code: exitRuntime, err: err}
			}
			defer func() { _ = store.Close() }()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return &exitErr{code: exitRuntime, err: err}
			}
			fmt.Fprintln(stdout, "id\tcreated_at\ttemplate\tforward\treverse\tcircular\tamplicons\tspecific")
			for _, r := range runs {
				fmt.Fprintf(stdout, "%s\t%s\t%s\t%s\t%s\t%t\t%d\t%t\n",
					r.ID, r.CreatedAt.Format(time.RFC3339), r.TemplateID,
					r.Forward, r.Reverse, r.Circular, r.Amplicons, r.Specific)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "history database path")
	cmd.Flags().IntVar(&limit, "limit", 20, "max runs to list")
	return cmd
}
