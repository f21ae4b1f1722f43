package convert

import (
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
)

// ConvertLines converts each line independently on a worker pool and returns
// the results in input order. Lines carry no cross-line state, and the
// converter is immutable, so the only coordination needed is the indexed
// result slice.
//
// workers <= 0 uses one worker per CPU. A panicking line task downgrades to
// pass-through for that line; the rest of the batch is unaffected.
func (c *Converter) ConvertLines(lines []string, profileName string, workers int) ([]string, error) {
	profile, err := c.registry.Resolve(profileName)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(lines) {
		workers = len(lines)
	}
	out := make([]string, len(lines))
	if len(lines) == 0 {
		return out, nil
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				out[i] = c.convertLine(lines[i], profile, i)
			}
		}()
	}
	for i := range lines {
		indices <- i
	}
	close(indices)
	wg.Wait()
	return out, nil
}

// convertLine isolates one line's conversion so an unexpected panic cannot
// take down the whole batch.
func (c *Converter) convertLine(line string, profile *Profile, index int) (result string) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("line %d: conversion panicked, passing line through unconverted: %v", index, r)
			result = line
		}
	}()
	return c.ConvertWith(line, profile)
}
