package io

import "io"

// CountingWriter forwards writes to Delegate and counts the bytes the delegate accepted.
type CountingWriter struct {
	Delegate     io.Writer
	BytesWritten int
}

func (w *CountingWriter) Write(p []byte) (int, error) {
	n, err := w.Delegate.Write(p)
	w.BytesWritten += n
	return n, err
}

// Size returns how many bytes the file writes, without keeping them.
func Size(f File) (int, error) {
	counter := &CountingWriter{Delegate: io.Discard}
	_, err := f.WriteTo(counter)
	return counter.BytesWritten, err
}
