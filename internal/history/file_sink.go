package history

import (
	"fmt"
	"path/filepath"
	"time"

	"main/internal/schema"
)

// Timestamps on persisted lines carry microsecond precision.
const lineTimeLayout = "2006-01-02 15:04:05.000000"

// FileName returns the conventional output file for a persist kind.
func FileName(kind schema.PersistKind) string {
	switch kind {
	case schema.PersistPosition:
		return "positions.txt"
	case schema.PersistRisk:
		return "risk.txt"
	case schema.PersistExecution:
		return "executions.txt"
	case schema.PersistStreaming:
		return "streaming.txt"
	case schema.PersistInquiry:
		return "allinquiries.txt"
	default:
		return "history.txt"
	}
}

// FileSink appends "<timestamp>, <body>" lines to one file per persist kind.
type FileSink struct {
	dir     string
	writers map[schema.PersistKind]*AppendWriter
}

// NewFileSink creates a sink writing under the given directory.
func NewFileSink(dir string) *FileSink {
	return &FileSink{
		dir:     dir,
		writers: make(map[schema.PersistKind]*AppendWriter),
	}
}

// Write appends one timestamped record line to the kind's file.
func (s *FileSink) Write(kind schema.PersistKind, at time.Time, _ string, body string) error {
	w, ok := s.writers[kind]
	if !ok {
		opened, err := OpenAppend(filepath.Join(s.dir, FileName(kind)))
		if err != nil {
			return err
		}
		s.writers[kind] = opened
		w = opened
	}
	return w.WriteLine(fmt.Sprintf("%s, %s", at.Format(lineTimeLayout), body))
}

// Close flushes and closes every open file.
func (s *FileSink) Close() error {
	var first error
	for _, w := range s.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.writers = make(map[schema.PersistKind]*AppendWriter)
	return first
}
