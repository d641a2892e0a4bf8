// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

type phase struct {
	name    string
	ops     int
	elapsed time.Duration
}

// report collects per-phase timings of one benchmark run.
type report struct {
	title  string
	phases []phase
}

// measure runs fn and records how long it took to perform ops operations.
func (r *report) measure(name string, ops int, fn func() error) error {
	start := time.Now()
	if err := fn(); err != nil {
		return err
	}

	r.phases = append(r.phases, phase{name: name, ops: ops, elapsed: time.Since(start)})
	log.WithField("phase", name).
		WithField("ops", ops).
		Debug("phase done")
	return nil
}

func (r *report) render(w io.Writer) {
	_, _ = fmt.Fprintln(w, r.title)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Phase", "Ops", "Total", "Per op"})

	for _, p := range r.phases {
		per := time.Duration(0)
		if p.ops > 0 {
			per = p.elapsed / time.Duration(p.ops)
		}
		table.Append([]string{p.name, fmt.Sprint(p.ops), p.elapsed.String(), per.String()})
	}
	table.Render()
}
