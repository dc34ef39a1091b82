package journal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// WriteBackup writes entries as an xz compressed JSON array.
func WriteBackup(w io.Writer, entries []Entry) error {
	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}

	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("xz writer: %w", err)
	}
	if _, err := xw.Write(data); err != nil {
		xw.Close()
		return fmt.Errorf("write backup: %w", err)
	}
	return xw.Close()
}

// ReadBackup reads a backup written by WriteBackup. Unlike a store load a
// corrupt backup is an error.
func ReadBackup(r io.Reader) ([]Entry, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("xz reader: %w", err)
	}

	var entries []Entry
	if err := json.NewDecoder(xr).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	if err := checkEntries(entries); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	return entries, nil
}
