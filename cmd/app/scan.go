package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"fleetops/cmd"
	"fleetops/internal/jobs"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "scan",
		Short: "Report documents whose duplicated fields disagree",
		Long: `scan reads every order and shipper once and prints the documents whose
duplicated fields disagree. It never writes.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return scan(c.Context())
		},
	})
}

func scan(ctx context.Context) (err error) {
	root, err := cmd.NewCompositionRoot(ctx, config, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := root.Close(context.Background()); err == nil {
			err = closeErr
		}
	}()

	job := jobs.NewConsistencyScanJob(root.CreateScanConsistencyQueryHandler(), "", logger)
	resp, err := job.Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLLECTION\tID\tFIELD\tKEPT\tDROPPED")
	for _, f := range resp.Findings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", f.Collection, f.DocumentID, f.Field, f.Kept, f.Dropped)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d orders, %d shippers, %d findings\n", resp.OrdersScanned, resp.ShippersScanned, len(resp.Findings))
	return nil
}
