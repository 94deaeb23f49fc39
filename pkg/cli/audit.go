package cli

import (
	"context"
	"errors"
	"log/slog"
	"time"

	urfave "github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/fairlens/fairlens/pkg/dataset"
	"github.com/fairlens/fairlens/pkg/fairness"
)

var (
	fileFlag = &urfave.StringSliceFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Path to a CSV dataset (repeatable)",
	}

	dbFlag = &urfave.StringFlag{
		Name:  "db",
		Usage: "Path to a SQLite database to load the dataset from",
	}

	tableFlag = &urfave.StringFlag{
		Name:  "table",
		Usage: "Table name when loading from SQLite",
	}

	sensitiveFlag = &urfave.StringFlag{
		Name:  "sensitive",
		Usage: "Sensitive attribute column",
		Value: "gender",
	}

	yTrueFlag = &urfave.StringFlag{
		Name:  "y-true",
		Usage: "Ground-truth label column",
		Value: "label",
	}

	yPredFlag = &urfave.StringFlag{
		Name:  "y-pred",
		Usage: "Prediction column",
		Value: "prediction",
	}

	auditCmd = &urfave.Command{
		Name:    "audit",
		Aliases: []string{"a"},
		Usage:   "Run a fairness audit over one or more datasets",
		Action:  cmdAudit,
		Flags: []urfave.Flag{
			fileFlag,
			dbFlag,
			tableFlag,
			sensitiveFlag,
			yTrueFlag,
			yPredFlag,
		},
	}
)

func cmdAudit(ctx context.Context, cmd *urfave.Command) error {
	defer elapsed(time.Now(), "audit")

	cols := fairness.Columns{
		Sensitive: cmd.String(sensitiveFlag.Name),
		YTrue:     cmd.String(yTrueFlag.Name),
		YPred:     cmd.String(yPredFlag.Name),
	}

	files := cmd.StringSlice(fileFlag.Name)
	dbPath := cmd.String(dbFlag.Name)

	switch {
	case dbPath != "":
		table := cmd.String(tableFlag.Name)
		if table == "" {
			return errors.New("--table is required with --db")
		}
		ds, err := dataset.LoadTable(ctx, dbPath, table)
		if err != nil {
			return err
		}
		result, err := fairness.Audit(ds, cols)
		if err != nil {
			return err
		}
		return encode(result)

	case len(files) == 1:
		result, err := auditFile(files[0], cols)
		if err != nil {
			return err
		}
		return encode(result)

	case len(files) > 1:
		// Audits are pure and share nothing, so files run in
		// parallel without coordination.
		results := make(map[string]*fairness.AuditResult, len(files))
		var g errgroup.Group
		out := make([]*fairness.AuditResult, len(files))
		for i, path := range files {
			i, path := i, path
			g.Go(func() error {
				r, err := auditFile(path, cols)
				if err != nil {
					return err
				}
				out[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		for i, path := range files {
			results[path] = out[i]
		}
		return encode(results)

	default:
		return errors.New("either --file or --db is required")
	}
}

func auditFile(path string, cols fairness.Columns) (*fairness.AuditResult, error) {
	slog.Debug("auditing dataset", "path", path)
	ds, err := dataset.LoadCSVFile(path)
	if err != nil {
		return nil, err
	}
	return fairness.Audit(ds, cols)
}
