package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// EntryLeveller filters entries by logger name. A level set for `compiler` also applies to
// `compiler.rules` unless that name has its own level.
type EntryLeveller struct {
	zapcore.Core

	levels map[string]zapcore.Level
}

func NewEntryLeveller(core zapcore.Core, levels map[string]zapcore.Level) *EntryLeveller {
	copied := make(map[string]zapcore.Level, len(levels))
	for k, v := range levels {
		copied[k] = v
	}
	return &EntryLeveller{Core: core, levels: copied}
}

func (el *EntryLeveller) With(f []zapcore.Field) zapcore.Core {
	return &EntryLeveller{
		Core:   el.Core.With(f),
		levels: el.levels,
	}
}

// levelFor walks from the full logger name up to the root ("") and returns the first
// configured level.
func (el *EntryLeveller) levelFor(name string) (zapcore.Level, bool) {
	for {
		if lvl, ok := el.levels[name]; ok {
			return lvl, true
		}
		if name == "" {
			return 0, false
		}
		idx := strings.LastIndex(name, ".")
		if idx < 0 {
			name = ""
		} else {
			name = name[:idx]
		}
	}
}

func (el *EntryLeveller) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	lvl, ok := el.levelFor(e.LoggerName)
	if !ok {
		return el.Core.Check(e, ce)
	}
	if e.Level < lvl {
		return ce
	}
	return ce.AddCore(e, el)
}
