package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mchmarny/linkscore/pkg/config"
	"github.com/mchmarny/linkscore/pkg/data"
	"github.com/mchmarny/linkscore/pkg/metric"
	"github.com/mchmarny/linkscore/pkg/net"
	"github.com/mchmarny/linkscore/pkg/result"
	urfave "github.com/urfave/cli/v3"
)

const missingInputMsg = "* You either did not specify input file path or output prefix"

const (
	hasHeaderFlagName = "has-header"
	inputPathFlagName = "fpath"
	outPrefixFlagName = "out"
)

func scoreFlags() []urfave.Flag {
	return []urfave.Flag{
		&urfave.BoolFlag{
			Name:  hasHeaderFlagName,
			Usage: "Skip the first row of the input file",
		},
		&urfave.StringFlag{
			Name:  inputPathFlagName,
			Usage: "Path (or http/https URL) to the tab separated result file",
		},
		&urfave.StringFlag{
			Name:  outPrefixFlagName,
			Usage: "Output path prefix for the ROC and PR images",
		},
	}
}

// scoredRun is the document encoded for json and yaml output.
type scoredRun struct {
	Input         string `json:"input" yaml:"input"`
	metric.Report `yaml:",inline"`
}

func cmdScore(ctx context.Context, cmd *urfave.Command) error {
	fpath := cmd.String(inputPathFlagName)
	out := cmd.String(outPrefixFlagName)

	if fpath == "" && out == "" {
		fmt.Fprintln(cmd.Root().Writer, missingInputMsg)
		return urfave.ShowAppHelp(cmd)
	}
	if fpath == "" {
		return errors.New("input file path required (--fpath)")
	}
	if out == "" {
		return errors.New("output prefix required (--out)")
	}

	cfg := getConfig(cmd)

	tbl, err := loadTable(ctx, cfg.Dir, fpath, cmd.Bool(hasHeaderFlagName))
	if err != nil {
		return err
	}

	rep, err := metric.NewReporter(cfg.Config.Plot).Evaluate(tbl, out)
	if err != nil {
		return fmt.Errorf("scoring %s: %w", fpath, err)
	}

	if err := printReport(cmd, cfg.Format, fpath, rep); err != nil {
		return fmt.Errorf("printing report: %w", err)
	}

	if cfg.historyEnabled() {
		if err := saveRun(ctx, cfg, fpath, out, rep); err != nil {
			return err
		}
	}

	return nil
}

// loadTable reads a local file or downloads a remote one first.
func loadTable(ctx context.Context, dir, fpath string, hasHeader bool) (*result.Table, error) {
	path := fpath
	if net.IsRemote(fpath) {
		token, err := getToken(dir)
		if err != nil {
			slog.Debug("no stored token, downloading anonymously", "error", err)
		}

		tmp, cleanup, err := net.DownloadTemp(ctx, net.GetClient(ctx, token), fpath)
		defer cleanup()
		if err != nil {
			return nil, fmt.Errorf("downloading %s: %w", fpath, err)
		}
		path = tmp
	}

	tbl, err := result.Load(path, hasHeader)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", fpath, err)
	}
	return tbl, nil
}

func printReport(cmd *urfave.Command, format, input string, rep *metric.Report) error {
	w := cmd.Root().Writer
	if format == config.FormatText {
		_, err := fmt.Fprintf(w, "AUROC: %s\nAUPR: %s\nNDCG: %s\n",
			formatFloat(rep.AUROC), formatFloat(rep.AUPR), formatFloat(rep.NDCG))
		return err
	}
	return encode(w, format, &scoredRun{Input: input, Report: *rep})
}

// formatFloat prints the shortest exact form, keeping a decimal point on
// whole numbers (1.0, not 1).
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, ".eN") || strings.Contains(s, "Inf") {
		return s
	}
	return s + ".0"
}

func saveRun(ctx context.Context, cfg *appConfig, input, out string, rep *metric.Report) error {
	s, err := cfg.openStore()
	if err != nil {
		return err
	}

	r := &data.Run{
		Input:     input,
		Records:   rep.Records,
		Positives: rep.Positives,
		Negatives: rep.Negatives,
		AUROC:     rep.AUROC,
		AUPR:      rep.AUPR,
		NDCG:      rep.NDCG,
		OutPrefix: out,
	}
	if err := s.SaveRun(ctx, r); err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	slog.Debug("run saved", "id", r.ID, "db", cfg.DBPath)
	return nil
}
