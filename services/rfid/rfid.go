// Package rfid turns lines from the RFID reader ("name, number, status") into scan events.
package rfid

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/attendance"
)

const DefaultBaudRate = 9600

var (
	// errors
	ErrBadLine = errors.New("bad line received")
	ErrNoPort  = errors.New("no RFID reader detected")

	byIDDir       = "/dev/serial/by-id" // mockable
	fallbackPorts = []string{"/dev/ttyACM0", "/dev/ttyUSB0"}
)

// FormatStudentID turns the reader's card number into a student ID: 7 -> "00-007".
func FormatStudentID(number string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil || n < 0 {
		return "", errors.Wrapf(ErrBadLine, "invalid card number %q", number)
	}
	return fmt.Sprintf("00-%03d", n), nil
}

// ParseLine parses one "name, number, status" line.
func ParseLine(line string) (attendance.ScanEvent, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return attendance.ScanEvent{}, errors.Wrapf(ErrBadLine, "%q", line)
	}
	id, err := FormatStudentID(parts[1])
	if err != nil {
		return attendance.ScanEvent{}, err
	}
	return attendance.ScanEvent{
		ID:     id,
		Name:   strings.TrimSpace(parts[0]),
		Status: strings.TrimSpace(parts[2]),
	}, nil
}

// FindPort picks the reader's serial device, preferring stable /dev/serial/by-id links.
func FindPort() (string, error) {
	if entries, err := os.ReadDir(byIDDir); err == nil && len(entries) > 0 {
		return filepath.Join(byIDDir, entries[0].Name()), nil
	}
	for _, port := range fallbackPorts {
		if _, err := os.Stat(port); err == nil {
			return port, nil
		}
	}
	return "", ErrNoPort
}

// Open opens `port` (auto-detected when empty) and drops whatever the reader buffered before.
func Open(port string, baudRate int) (serial.Port, string, error) {
	if port == "" {
		var err error
		if port, err = FindPort(); err != nil {
			return nil, "", err
		}
	}
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}

	p, err := serial.Open(port, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, port, errors.Wrapf(err, "opening %s", port)
	}
	if err = p.ResetInputBuffer(); err != nil {
		_ = p.Close()
		return nil, port, errors.Wrapf(err, "resetting %s", port)
	}
	return p, port, nil
}

// Reader feeds scan lines into the attendance service.
type Reader struct {
	svc    attendance.Service
	logger core.Logger

	// OnScan, when set, is called after each recorded scan.
	OnScan func(attendance.Record)
}

func NewReader(svc attendance.Service, logger core.Logger) *Reader {
	return &Reader{svc: svc, logger: logger}
}

// Run reads lines from r until EOF or ctx is done. Bad lines and failed scans are
// logged and skipped. A read blocked on r is only released by closing r.
func (rd *Reader) Run(ctx context.Context, r io.Reader) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					if err != nil {
						return errors.Wrap(err, "reading scans")
					}
				default:
				}
				return nil
			}
			rd.handle(ctx, line)
		}
	}
}

func (rd *Reader) handle(ctx context.Context, line string) {
	line = strings.TrimSpace(strings.ToValidUTF8(line, ""))
	if line == "" {
		return
	}
	ev, err := ParseLine(line)
	if err != nil {
		rd.logger.Warn("skipping scan line", err)
		return
	}
	rec, err := rd.svc.UpsertScan(ctx, ev)
	if err != nil {
		rd.logger.Error("recording scan", err, map[string]interface{}{"id": ev.ID})
		return
	}
	rd.logger.Info(fmt.Sprintf("%s (%s) -> %s", rec.Name, rec.ID, rec.Status))
	if rd.OnScan != nil {
		rd.OnScan(rec)
	}
}
