// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"slices"

	"github.com/go4org/hashtriemap"
)

// Summary records the files handled during one run of [Apply].
// It is safe for concurrent use while the run is in progress.
type Summary struct {
	files hashtriemap.HashTrieMap[string, *record]
}

// record is written only by the worker that claimed its path.
type record struct {
	outcome Outcome // zero until the file is processed successfully
}

// claim reserves path for processing. It reports false if path was already
// claimed during this run.
func (s *Summary) claim(path string) (*record, bool) {
	rec := new(record)
	actual, loaded := s.files.LoadOrStore(path, rec)
	return actual, !loaded
}

// Count returns the number of files with outcome o.
func (s *Summary) Count(o Outcome) int {
	var n int
	for _, rec := range s.files.All() {
		if rec.outcome == o {
			n++
		}
	}
	return n
}

// Paths returns the sorted paths of files with outcome o.
func (s *Summary) Paths(o Outcome) []string {
	var paths []string
	for path, rec := range s.files.All() {
		if rec.outcome == o {
			paths = append(paths, path)
		}
	}
	slices.Sort(paths)
	return paths
}

// Total returns the number of files processed successfully.
func (s *Summary) Total() int { return s.Count(Added) + s.Count(Present) }
