package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/mchmarny/linkscore/pkg/config"
	"github.com/mchmarny/linkscore/pkg/data"
	urfave "github.com/urfave/cli/v3"
)

const limitFlagName = "limit"

func newHistoryCmd() *urfave.Command {
	return &urfave.Command{
		Name:            "history",
		HideHelpCommand: true,
		Usage:           "List previously scored runs, most recent first",
		Flags: []urfave.Flag{
			&urfave.IntFlag{
				Name:  limitFlagName,
				Usage: "Maximum number of runs to list",
				Value: data.RunLimitDefault,
			},
		},
		Action: cmdHistory,
	}
}

func cmdHistory(ctx context.Context, cmd *urfave.Command) error {
	cfg := getConfig(cmd)

	s, err := cfg.openStore()
	if err != nil {
		return err
	}

	runs, err := s.ListRuns(ctx, cmd.Int(limitFlagName))
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	w := cmd.Root().Writer
	if cfg.Format != config.FormatText {
		return encode(w, cfg.Format, runs)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tRECORDS\tAUROC\tAUPR\tNDCG\tINPUT")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.4f\t%.4f\t%.4f\t%s\n",
			r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Records, r.AUROC, r.AUPR, r.NDCG, r.Input)
	}
	return tw.Flush()
}
