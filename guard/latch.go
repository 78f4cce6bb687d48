/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package guard

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Latch is the one-way freeze state of an entity. It starts unfrozen
// and flips to frozen exactly once, when the entity's identity hash is
// first computed. Once frozen it stays frozen for the lifetime of the
// entity.
//
// Frozen() is a lock-free atomic load, so the hot path of every guarded
// mutation costs a single atomic read. The capture site is written
// under the mutex before the frozen flag becomes observable through
// Site(), so a caller that sees a non-empty site always sees the site
// of the first freeze.
//
// The zero value is ready to use (unfrozen).
type Latch struct {
	frozen atomic.Bool

	mu   sync.Mutex
	site string
}

// Freeze transitions the latch to frozen. It is idempotent: only the
// first call performs the transition and, when capture is true, records
// the current call stack (at most depth frames, skipping skip frames
// above Freeze itself). It reports whether this call performed the
// transition.
func (l *Latch) Freeze(capture bool, depth, skip int) bool {
	if l.frozen.Load() {
		return false
	}

	var site string
	if capture {
		// Capture before taking the lock; discarded if we lose the race.
		site = Capture(depth, skip+1)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.frozen.CompareAndSwap(false, true) {
		return false
	}
	if capture {
		l.site = site
	}
	return true
}

// Frozen reports whether the latch has been frozen.
func (l *Latch) Frozen() bool {
	return l.frozen.Load()
}

// Site returns the capture site recorded at freeze time, or "" when the
// latch is unfrozen or was frozen without capture.
func (l *Latch) Site() string {
	if !l.frozen.Load() {
		return ""
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.site
}

// Capture renders the current call stack, at most depth frames deep,
// skipping skip frames above Capture itself. Frames inside the runtime
// are omitted.
func Capture(depth, skip int) string {
	if depth <= 0 {
		return ""
	}
	pcs := make([]uintptr, depth)
	// +2 skips runtime.Callers and Capture.
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if f.Function != "" && !strings.HasPrefix(f.Function, "runtime.") {
			b.WriteString(f.Function)
			b.WriteString("\n\t")
			b.WriteString(f.File)
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(f.Line))
			b.WriteByte('\n')
		}
		if !more {
			break
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
