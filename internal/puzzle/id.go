package puzzle

import (
	"fmt"
	"sync/atomic"
	"time"
)

var idCounter atomic.Uint64

// NewID returns an item id of the form "ai-<prefix>-<unix-millis>-<n>".
// n increases for every call in the process, so ids never repeat and sort
// by creation within a millisecond.
func NewID(prefix string) string {
	n := idCounter.Add(1)
	return fmt.Sprintf("ai-%s-%d-%d", prefix, time.Now().UnixMilli(), n)
}
