package history

import (
	"bufio"
	"os"
	"path/filepath"
)

const writerBufferSize = 64 * 1024

// AppendWriter is a buffered append-only line writer over a single file.
type AppendWriter struct {
	file *os.File
	buf  *bufio.Writer
}

// OpenAppend opens (creating if needed) a file for append-only line writes,
// ensuring the parent directory exists.
func OpenAppend(path string) (*AppendWriter, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &AppendWriter{
		file: file,
		buf:  bufio.NewWriterSize(file, writerBufferSize),
	}, nil
}

// WriteLine appends one record line.
func (w *AppendWriter) WriteLine(line string) error {
	if _, err := w.buf.WriteString(line); err != nil {
		return err
	}
	return w.buf.WriteByte('\n')
}

// Flush pushes buffered lines to the file.
func (w *AppendWriter) Flush() error {
	return w.buf.Flush()
}

// Close flushes and closes the file.
func (w *AppendWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
