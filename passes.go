// Copyright (C) 2024-2026, AnaxMapper
//
// This file is part of TopoForge program.
//
// TopoForge is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// TopoForge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with TopoForge.  If not, see <https://www.gnu.org/licenses/>.

// Worker pool for independent reconstruction passes. A pass never reads or
// writes another pass's state, so whole passes are the unit of work: passes
// are striped over the workers by worker id, results come back unordered over
// one channel and are reassembled by the record index each result carries
package main

import (
	"runtime"
)

// To avoid drowning in goroutines on big machines when each pass is tiny,
// auto mode caps the worker count. An explicit -t= value is not capped;
// that is intentional.
const MAX_PASS_WORKERS = 16

type PassInput struct {
	Idx   int
	Lines []*Polyline
	Opts  PassOptions
}

type PassResult struct {
	Idx   int
	Polys []*PolygonFeature
	Mlog  *MiniLogger
}

// RunPasses executes every pass and returns their outputs indexed by
// PassInput.Idx. Per-pass log output is buffered in MiniLoggers and merged
// into the main log in index order, so interleaving never garbles it.
func RunPasses(passes []PassInput) [][]*PolygonFeature {
	out := make([][]*PolygonFeature, len(passes))
	if len(passes) == 0 {
		return out
	}
	workerCount := int(config.Threads)
	if workerCount == 0 { // auto mode
		workerCount = runtime.NumCPU()
		if workerCount > MAX_PASS_WORKERS {
			workerCount = MAX_PASS_WORKERS
		}
	}
	if workerCount > len(passes) {
		workerCount = len(passes)
	}
	Log.Verbose(1, "Running %d reconstruction pass(es) on %d worker(s)\n",
		len(passes), workerCount)

	results := make(chan PassResult)
	for i := 0; i < workerCount; i++ {
		go PassWorker(i, workerCount, passes, results)
	}

	mlogs := make([]*MiniLogger, len(passes))
	for done := 0; done < len(passes); done++ {
		res := <-results
		out[res.Idx] = res.Polys
		mlogs[res.Idx] = res.Mlog
	}
	for _, mlog := range mlogs {
		Log.Merge(mlog, "")
	}
	return out
}

// PassWorker claims every workerCount-th pass starting at its own id
func PassWorker(id int, workerCount int, passes []PassInput, replyTo chan<- PassResult) {
	for k := id; k < len(passes); k += workerCount {
		p := passes[k]
		mlog := CreateMiniLogger()
		polys := ReconstructPolygons(p.Lines, p.Opts, mlog)
		replyTo <- PassResult{Idx: p.Idx, Polys: polys, Mlog: mlog}
	}
}
