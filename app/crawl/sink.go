package crawl

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
)

var _ RecordSink = (*FileSink)(nil)

// FileSink appends records to a two-column flat file, one line per credit.
// Writes are serialized so workers can share one sink.
type FileSink struct {
	file   *os.File
	writer *csv.Writer

	mu    sync.Mutex
	count int
}

func NewFileSink(path string) (*FileSink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}

	return &FileSink{
		file:   file,
		writer: csv.NewWriter(file),
	}, nil
}

func (s *FileSink) Write(record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writer.Write([]string{record.Actor, record.Title}); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	s.count++

	return nil
}

// Count returns the number of records written so far
func (s *FileSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Close flushes buffered records and closes the file
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return fmt.Errorf("failed to flush records: %w", err)
	}

	if err := s.file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	return nil
}
