package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/attendance"
	"github.com/trezcool/recordsync/core/settings"
	"github.com/trezcool/recordsync/services/rfid"
	"github.com/trezcool/recordsync/storage/database"
)

var (
	isTerminalFunc = term.IsTerminal        // mockable
	migrateFunc    = database.RunMigrations // mockable

	// mockable
	openPortFunc = func(port string, baudRate int) (io.ReadCloser, string, error) {
		return rfid.Open(port, baudRate)
	}

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf        *core.Config
	logger      core.Logger
	attSvc      attendance.Service
	settingsSvc settings.Service
	translator  ut.Translator
	db          *sqlx.DB // nil unless storage is postgres

	in  io.Reader
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  scan [-port PORT] [-baud RATE] [-stdin] - record scans from the RFID reader (or stdin)")
	fmt.Fprintln(cli.out, "  list - print every attendance record")
	fmt.Fprintln(cli.out, "  show -name NAME - print one student's record")
	fmt.Fprintln(cli.out, "  recompute [-start \"08:00 AM\"] [-end \"09:00 AM\"] - reclassify every record")
	fmt.Fprintln(cli.out, "  logout [-yes] - clear all attendance records")
	fmt.Fprintln(cli.out, "  settings [-start \"08:00 AM\"] [-duration MINUTES] - print or update class settings")
	fmt.Fprintln(cli.out, "  export -o FILE [-format xlsx|csv] - export attendance records")
	fmt.Fprintln(cli.out, "  watch - recompute statuses whenever the settings file changes")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run database migrations (postgres storage only)")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	scanCmd := cli.newFlagSet("scan")
	scanPort := scanCmd.String("port", cli.conf.Serial.Port, "The reader's serial device. Auto-detected when empty.")
	scanBaud := scanCmd.Int("baud", cli.conf.Serial.BaudRate, "The reader's baud rate.")
	scanStdin := scanCmd.Bool("stdin", false, "Read \"name, number, status\" lines from stdin instead of the reader.")

	showCmd := cli.newFlagSet("show")
	showName := showCmd.String("name", "", "The student's full name.")

	recomputeCmd := cli.newFlagSet("recompute")
	recomputeStart := recomputeCmd.String("start", "", "Class start time. Defaults to the saved setting.")
	recomputeEnd := recomputeCmd.String("end", "", "Class end time. Defaults to start + the saved duration.")

	logoutCmd := cli.newFlagSet("logout")
	logoutYes := logoutCmd.Bool("yes", false, "Do not ask for confirmation.")

	settingsCmd := cli.newFlagSet("settings")
	settingsStart := settingsCmd.String("start", "", "New class start time, e.g. \"08:00 AM\".")
	settingsDuration := settingsCmd.Int("duration", 0, "New class duration in minutes.")

	exportCmd := cli.newFlagSet("export")
	exportOut := exportCmd.String("o", "", "The output file.")
	exportFormat := exportCmd.String("format", "", "xlsx or csv. Guessed from the output file when empty.")

	parse := func(fs *flag.FlagSet) error {
		if err := fs.Parse(args[2:]); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return errHelp
			}
			return err
		}
		return nil
	}

	switch args[1] {
	case "scan":
		if err := parse(scanCmd); err != nil {
			return err
		}
		return cli.scan(ctx, *scanPort, *scanBaud, *scanStdin)
	case "list":
		return cli.list(ctx)
	case "show":
		if err := parse(showCmd); err != nil {
			return err
		}
		if core.CleanString(*showName) == "" {
			showCmd.Usage()
			return errHelp
		}
		return cli.show(ctx, *showName)
	case "recompute":
		if err := parse(recomputeCmd); err != nil {
			return err
		}
		return cli.recompute(ctx, *recomputeStart, *recomputeEnd)
	case "logout":
		if err := parse(logoutCmd); err != nil {
			return err
		}
		return cli.logout(ctx, *logoutYes)
	case "settings":
		if err := parse(settingsCmd); err != nil {
			return err
		}
		return cli.settings(ctx, *settingsStart, *settingsDuration)
	case "export":
		if err := parse(exportCmd); err != nil {
			return err
		}
		if *exportOut == "" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.export(ctx, *exportOut, *exportFormat)
	case "watch":
		return cli.watch(ctx)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// interactive reports whether cli.in is a terminal.
func (cli *commandLine) interactive() bool {
	f, ok := cli.in.(*os.File)
	return ok && isTerminalFunc(int(f.Fd()))
}
