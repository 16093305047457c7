// Copyright (c) 2020 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

package timelinestore

import (
	"sync"
	"time"
)

// Profiler measures named operations. Serialization profiling is keyed by
// container type, storage profiling by operation name.
type Profiler interface {
	StartTiming(name string)
	StopTiming(name string)
}

// TimingProfiler collects wall clock samples per name.
type TimingProfiler struct {
	mu      sync.Mutex
	started map[string]time.Time
	samples map[string][]time.Duration
}

// NewTimingProfiler creates an empty TimingProfiler.
func NewTimingProfiler() *TimingProfiler {
	return &TimingProfiler{
		started: map[string]time.Time{},
		samples: map[string][]time.Duration{},
	}
}

func (p *TimingProfiler) StartTiming(name string) {
	p.mu.Lock()
	p.started[name] = time.Now()
	p.mu.Unlock()
}

func (p *TimingProfiler) StopTiming(name string) {
	p.mu.Lock()
	if start, ok := p.started[name]; ok {
		p.samples[name] = append(p.samples[name], time.Since(start))
		delete(p.started, name)
	}
	p.mu.Unlock()
}

// Samples returns the recorded durations for a name.
func (p *TimingProfiler) Samples(name string) []time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.samples[name]
}
