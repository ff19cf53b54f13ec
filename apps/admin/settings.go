package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/recordsync/apps"
	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/attendance"
	"github.com/trezcool/recordsync/core/settings"
	"github.com/trezcool/recordsync/services/schedwatch"
)

func (cli *commandLine) settings(ctx context.Context, start string, duration int) error {
	s := cli.settingsSvc.Get(ctx)
	if start != "" || duration != 0 {
		var err error
		s, err = cli.settingsSvc.Update(ctx, settings.Settings{ClassStartTime: start, ClassDurationMinutes: duration})
		if err != nil {
			var vErrs validator.ValidationErrors
			if errors.As(err, &vErrs) {
				return apps.NewArgumentError(fieldErrorsText(core.TranslateErrors(vErrs, cli.translator)))
			}
			return err
		}
	}
	fmt.Fprintf(cli.out, "Class start time: %s\n", s.ClassStartTime)
	fmt.Fprintf(cli.out, "Class duration:   %d minutes\n", s.ClassDurationMinutes)
	return nil
}

// watch recomputes statuses on every settings change until ctx is done.
func (cli *commandLine) watch(ctx context.Context) error {
	w := schedwatch.New(cli.conf.SettingsPath(), cli.attSvc, cli.logger)
	w.OnRecompute = func(res attendance.RecomputeResult, err error) {
		if err == nil {
			cli.printRecompute(ctx, res)
		}
	}
	fmt.Fprintf(cli.out, "Watching %s (Press Ctrl+C to stop)\n", cli.conf.SettingsPath())
	return w.Run(ctx)
}

// fieldErrorsText joins translated field errors as "field: message" pairs.
func fieldErrorsText(fldErrs map[string]string) string {
	parts := make([]string, 0, len(fldErrs))
	for fld, msg := range fldErrs {
		parts = append(parts, fld+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
