package main

import (
	"context"
	"fmt"

	"github.com/trezcool/recordsync/core/attendance"
	"github.com/trezcool/recordsync/services/rfid"
)

// scan feeds reader lines into the record store until ctx is done or the input ends.
func (cli *commandLine) scan(ctx context.Context, port string, baudRate int, stdin bool) error {
	rd := rfid.NewReader(cli.attSvc, cli.logger)
	rd.OnScan = func(rec attendance.Record) {
		fmt.Fprintf(cli.out, "%s (%s) -> %s\n", rec.Name, rec.ID, rec.Status)
	}

	if stdin {
		if cli.interactive() {
			fmt.Fprintln(cli.out, `Enter scans as "name, number, status" (Ctrl+D to stop)`)
		}
		return rd.Run(ctx, cli.in)
	}

	p, name, err := openPortFunc(port, baudRate)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()
	// closing the port releases a pending read
	stop := context.AfterFunc(ctx, func() { _ = p.Close() })
	defer stop()

	fmt.Fprintf(cli.out, "Using serial port: %s\n", name)
	fmt.Fprintln(cli.out, "Waiting for RFID scans... (Press Ctrl+C to stop)")
	return rd.Run(ctx, p)
}
