package staging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/errs"
)

// BatchPath returns the newline-delimited JSON file for one entity type.
func BatchPath(dir string, entity domainsync.EntityType) string {
	return filepath.Join(dir, fmt.Sprintf("%s.ndjson", entity))
}

// WriteBatch writes one record per line. An existing batch is replaced,
// never appended: each export cycle owns the staging directory.
func WriteBatch(dir string, entity domainsync.EntityType, records []json.RawMessage) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrapf(err, "create staging directory %q", dir)
	}

	f, err := os.Create(BatchPath(dir, entity))
	if err != nil {
		return errs.Wrapf(err, "create batch file for %s", entity)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, record := range records {
		if _, err := w.Write(record); err != nil {
			return errs.Wrapf(err, "write %s record", entity)
		}
		if err := w.WriteByte('\n'); err != nil {
			return errs.Wrapf(err, "write %s record", entity)
		}
	}
	if err := w.Flush(); err != nil {
		return errs.Wrapf(err, "flush %s batch", entity)
	}
	return f.Close()
}

// maxLineBytes caps a single record line. Longer lines are treated like
// malformed ones: counted as skipped, never fatal.
const maxLineBytes = 4 * 1024 * 1024

// ReadBatch decodes one staged batch. Malformed and oversized lines are
// discarded and counted, never fatal; an absent batch file means zero
// records. Blank lines are ignored without counting.
func ReadBatch(dir string, entity domainsync.EntityType) (records []json.RawMessage, skipped int, err error) {
	f, err := os.Open(BatchPath(dir, entity))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, errs.Wrapf(err, "open batch file for %s", entity)
	}
	defer f.Close()

	reader := bufio.NewReaderSize(f, 64*1024)
	for {
		line, tooLong, readErr := readLine(reader)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, 0, errs.Wrapf(readErr, "read batch file for %s", entity)
		}

		switch {
		case tooLong:
			skipped++
		case len(line) == 0:
			// blank line
		case !json.Valid(line):
			skipped++
		default:
			record := make(json.RawMessage, len(line))
			copy(record, line)
			records = append(records, record)
		}

		if errors.Is(readErr, io.EOF) {
			return records, skipped, nil
		}
	}
}

// readLine accumulates one newline-terminated line. Once the line exceeds
// maxLineBytes it is abandoned and the reader resynchronizes at the next
// newline, so one runaway record cannot fail the batch.
func readLine(r *bufio.Reader) ([]byte, bool, error) {
	var line []byte
	for {
		chunk, err := r.ReadSlice('\n')
		line = append(line, chunk...)
		if errors.Is(err, bufio.ErrBufferFull) {
			if len(line) > maxLineBytes {
				return nil, true, discardLine(r)
			}
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, false, err
		}
		return bytes.TrimRight(line, "\r\n"), false, err
	}
}

func discardLine(r *bufio.Reader) error {
	for {
		_, err := r.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return err
	}
}
