package transcoder

import (
	"reflect"
	"sync"
)

const (
	// Pool limits to prevent memory bloat
	poolMaxEntries  = 1024
	poolInitEntries = 16
)

// mapEntry is one map entry collected for sorting.
type mapEntry struct {
	key  reflect.Value
	val  reflect.Value
	text string
}

var entryPool = sync.Pool{
	New: func() any {
		buf := make([]mapEntry, 0, poolInitEntries)
		return &buf
	},
}

func getEntries() *[]mapEntry {
	return entryPool.Get().(*[]mapEntry)
}

func putEntries(buf *[]mapEntry) {
	if buf == nil || cap(*buf) > poolMaxEntries {
		return // reject oversized
	}
	clear(*buf)
	*buf = (*buf)[:0]
	entryPool.Put(buf)
}
