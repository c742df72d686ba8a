// Package export renders the check-in history as '|'-delimited text and
// hands the written file to whatever share mechanism the caller supplies.
package export

import (
	"bufio"
	"bytes"
	"fmt"
	"goaltracker/internal/models"
	"goaltracker/internal/providers"
	"goaltracker/internal/storage"
	"goaltracker/internal/structures"
	"io"
	"path/filepath"
)

const (
	MimeType = "text/csv"
	Header   = "Timestamp|Counter"
)

type SharerInterface interface {
	Share(path, mimeType string) error
}

type ExporterInterface interface {
	Export(history []models.HistoryEntry, sharer SharerInterface) (string, error)
	WriteTo(w io.Writer, history []models.HistoryEntry) error
}

type Exporter struct {
	path   string
	logger providers.Logger
}

func NewExporter(conf *structures.Config, logger providers.Logger) ExporterInterface {
	return &Exporter{
		path:   filepath.Join(conf.Export.Dir, conf.Export.FileName),
		logger: logger,
	}
}

// WriteTo writes the header line followed by one stored history line per
// entry. Fields are written as-is with no CSV quoting, so the file reads back
// with models.ParseHistoryEntry.
func (e *Exporter) WriteTo(w io.Writer, history []models.HistoryEntry) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	for _, h := range history {
		if _, err := bw.WriteString(h.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (e *Exporter) Export(history []models.HistoryEntry, sharer SharerInterface) (string, error) {
	var buf bytes.Buffer
	if err := e.WriteTo(&buf, history); err != nil {
		return "", fmt.Errorf("render history: %w", err)
	}
	if err := storage.WriteFileAtomic(e.path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", e.path, err)
	}
	e.logger.Infof(providers.TypeTracker, "Exported %d history entries to %s", len(history), e.path)

	if sharer != nil {
		if err := sharer.Share(e.path, MimeType); err != nil {
			return "", fmt.Errorf("share %s: %w", e.path, err)
		}
	}
	return e.path, nil
}

// LogSharer stands in for a platform share sheet where none exists.
type LogSharer struct {
	logger providers.Logger
}

func NewLogSharer(logger providers.Logger) *LogSharer {
	return &LogSharer{logger: logger}
}

func (s *LogSharer) Share(path, mimeType string) error {
	s.logger.Infof(providers.TypeTracker, "Export ready for sharing: %s (%s)", path, mimeType)
	return nil
}
