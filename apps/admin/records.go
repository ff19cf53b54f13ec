package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"

	"github.com/trezcool/recordsync/apps"
	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/attendance"
	"github.com/trezcool/recordsync/services/report"
	"github.com/trezcool/recordsync/storage/csvstore"
)

const suggestionCount = 3

func (cli *commandLine) list(ctx context.Context) error {
	records := cli.attSvc.QueryAll(ctx)
	if len(records) == 0 {
		fmt.Fprintln(cli.out, "No attendance records.")
		return nil
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tCLASSES\tTIME IN\tTIME OUT")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", rec.ID, rec.Name, rec.Status, rec.ClassesAttended, rec.TimeIn, rec.TimeOut)
	}
	return w.Flush()
}

func (cli *commandLine) show(ctx context.Context, name string) error {
	rec, err := cli.attSvc.GetByName(ctx, name)
	if err == attendance.ErrNotFound {
		if names := cli.attSvc.SuggestNames(ctx, name, suggestionCount); len(names) > 0 {
			fmt.Fprintf(cli.out, "Did you mean: %s?\n", strings.Join(names, ", "))
		}
		return err
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 1, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", rec.ID)
	fmt.Fprintf(w, "Name:\t%s\n", rec.Name)
	fmt.Fprintf(w, "Status:\t%s\n", rec.Status)
	fmt.Fprintf(w, "Classes attended:\t%d\n", rec.ClassesAttended)
	fmt.Fprintf(w, "Time in:\t%s\n", rec.TimeIn)
	fmt.Fprintf(w, "Time out:\t%s\n", rec.TimeOut)
	fmt.Fprintf(w, "Picture:\t%s\n", rec.ImgPath)
	return w.Flush()
}

func (cli *commandLine) recompute(ctx context.Context, start, end string) error {
	res, err := cli.attSvc.RecomputeFromSettings(ctx, start, end)
	if err != nil {
		return err
	}
	cli.printRecompute(ctx, res)
	return nil
}

// printRecompute prints a recompute outcome in store order.
func (cli *commandLine) printRecompute(ctx context.Context, res attendance.RecomputeResult) {
	fmt.Fprintf(cli.out, "%d records updated\n", res.Updated)
	for _, rec := range cli.attSvc.QueryAll(ctx) {
		if ch, ok := res.Changed[rec.ID]; ok && ch.Old != ch.New {
			fmt.Fprintf(cli.out, "  %s: %q -> %q\n", rec.ID, ch.Old, ch.New)
		}
	}
	for _, rErr := range res.Errors {
		fmt.Fprintf(cli.out, "  skipped %s\n", rErr.Error())
	}
}

func (cli *commandLine) logout(ctx context.Context, yes bool) error {
	if !yes && cli.interactive() {
		fmt.Fprint(cli.out, "Clear all attendance records? [y/N] ")
		answer, _ := bufio.NewReader(cli.in).ReadString('\n')
		if a := core.CleanString(answer, true /* lower */); a != "y" && a != "yes" {
			fmt.Fprintln(cli.out, "Aborted.")
			return nil
		}
	}

	n, err := cli.attSvc.Clear(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d records deleted\n", n)
	return nil
}

func (cli *commandLine) export(ctx context.Context, path, format string) error {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	var buf bytes.Buffer
	records := cli.attSvc.QueryAll(ctx)
	switch format {
	case "xlsx":
		if err := report.WriteXLSX(&buf, records); err != nil {
			return err
		}
	case "csv":
		if err := csvstore.Encode(&buf, records); err != nil {
			return errors.Wrap(err, "encoding records")
		}
	default:
		return apps.NewArgumentError(fmt.Sprintf("unsupported export format %q (want xlsx or csv)", format))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	fmt.Fprintf(cli.out, "%d records exported to %s\n", len(records), path)
	return nil
}
