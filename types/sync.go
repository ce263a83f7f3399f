// SPDX-License-Identifier: MIT
package types

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type (
	// SafeCounter is a thread-safe counter.
	SafeCounter struct {
		m   sync.Mutex
		val int
	}
)

const (
	BufferedErrChanSize = 5
)

// Synchronization errors.
var (
	ErrInvalidGoroutineCount = errors.New("invalid goroutine count")
)

// Inc increments the counter, returning the new value.
func (c *SafeCounter) Inc() int {
	c.m.Lock()
	defer c.m.Unlock()
	c.val++

	return c.val
}

// Value returns the current value of the counter.
func (c *SafeCounter) Value() int {
	c.m.Lock()
	defer c.m.Unlock()
	return c.val
}

// Reset the counter to zero.
func (c *SafeCounter) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.val = 0
}

// MonitorChannels waits for operations goroutines to report on either done or errChan.
//
// Each goroutine must send exactly one message. errPrefix should be in the singular form.
func MonitorChannels(ctx context.Context, operations int, done chan struct{}, errChan chan error, errPrefix string) (err error) {
	if operations < 1 {
		err = fmt.Errorf("%s %w: %d", errPrefix, ErrInvalidGoroutineCount, operations)
		return
	}

	for index := 0; index < operations; index++ {
		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("%w, %w", err, ctx.Err())
			}
			return ctx.Err()
		case <-done:
		case e := <-errChan:
			if err != nil {
				err = fmt.Errorf("%w, %w", err, e)
			} else {
				err = fmt.Errorf("%s %w", errPrefix, e)
			}
		}
	}

	return
}
