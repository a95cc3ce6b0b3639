package io

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/alitto/pond"
	"github.com/klothoplatform/servgraph/pkg/logging"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	maxWriters = 8
	maxQueued  = 1000
)

func SortByPath(files []File) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path() < files[j].Path()
	})
}

// OutputTo writes the files under `dest`, replacing existing files. Files are written
// concurrently and the first error cancels the remaining writes.
func OutputTo(ctx context.Context, files []File, dest string) error {
	log := logging.GetLogger(ctx).Named("io")

	pool := pond.New(maxWriters, maxQueued)
	defer pool.StopAndWait()

	group, ctx := pool.GroupContext(ctx)
	for _, f := range files {
		f := f
		group.Submit(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeFile(log, f, dest)
		})
	}
	return group.Wait()
}

func writeFile(log *zap.Logger, f File, dest string) error {
	if !filepath.IsLocal(f.Path()) {
		return errors.Errorf("refusing to write %q outside of %s", f.Path(), dest)
	}
	path := filepath.Join(dest, f.Path())
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return errors.Wrapf(err, "could not create directory for %s", f.Path())
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return errors.Wrapf(err, "could not open %s", path)
	}
	counter := &CountingWriter{Delegate: file}
	_, err = f.WriteTo(counter)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "could not write %s", path)
	}
	log.Debug("Wrote file", logging.FileField(f.Path(), counter.BytesWritten))
	return nil
}
