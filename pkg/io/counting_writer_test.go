package io

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type shortWriter struct{ limit int }

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		return w.limit, errors.New("short write")
	}
	return len(p), nil
}

func TestCountingWriter(t *testing.T) {
	assert := assert.New(t)

	var sb strings.Builder
	counter := CountingWriter{Delegate: &sb}

	_, err := counter.Write([]byte("service: "))
	assert.NoError(err)
	_, err = counter.Write([]byte("images\n"))
	assert.NoError(err)
	assert.Equal(16, counter.BytesWritten)
	assert.Equal("service: images\n", sb.String())

	partial := CountingWriter{Delegate: &shortWriter{limit: 3}}
	n, err := partial.Write([]byte("resize.js"))
	assert.Error(err)
	assert.Equal(3, n)
	assert.Equal(3, partial.BytesWritten, "only accepted bytes are counted")
}

func TestSize(t *testing.T) {
	assert := assert.New(t)

	size, err := Size(&RawFile{FPath: "resize.js", Content: []byte("exports.handler = 1\n")})
	assert.NoError(err)
	assert.Equal(20, size)

	size, err = Size(&RawFile{FPath: "empty"})
	assert.NoError(err)
	assert.Zero(size)
}
