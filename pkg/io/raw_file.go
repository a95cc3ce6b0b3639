package io

import (
	"io"
)

// RawFile is an output file held in memory.
type RawFile struct {
	FPath   string
	Content []byte
}

type File interface {
	Path() string
	WriteTo(io.Writer) (int64, error)
}

func (r *RawFile) Path() string {
	return r.FPath
}

func (r *RawFile) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Content)
	return int64(n), err
}

// FromMap builds raw files from a path to content map, sorted by path.
func FromMap(contents map[string]string) []File {
	files := make([]File, 0, len(contents))
	for path, content := range contents {
		files = append(files, &RawFile{FPath: path, Content: []byte(content)})
	}
	SortByPath(files)
	return files
}
