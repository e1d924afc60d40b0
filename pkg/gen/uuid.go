package gen

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces opaque row identifiers.
type IDGenerator func() string

func UUID() IDGenerator {
	return func() string {
		return uuid.Must(uuid.NewRandom()).String()
	}
}

// Sequence returns a generator yielding prefix-1, prefix-2, ... Useful in tests.
func Sequence(prefix string) IDGenerator {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}

func (g IDGenerator) Next() string {
	if g == nil {
		return uuid.Nil.String()
	}

	return g()
}
