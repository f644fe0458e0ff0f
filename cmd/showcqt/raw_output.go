package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/noriah/showcqt/dsp"
	"github.com/noriah/showcqt/processor"
)

// RawOutput prints the mixed intensity of every frame as a line of numbers.
type RawOutput struct {
	columns int
	w       *bufio.Writer
}

var _ processor.Output = &RawOutput{}

func NewRawOutput(w io.Writer, columns int) *RawOutput {
	return &RawOutput{
		columns: columns,
		w:       bufio.NewWriter(w),
	}
}

// Write prints frame rows, each column is the loudest of its bins scaled to
// [0, 100].
func (d *RawOutput) Write(row []dsp.Power, frame bool) error {
	if !frame {
		return nil
	}

	columns := min(d.columns, len(row))

	for col := 0; col < columns; col++ {
		start, end := col*len(row)/columns, (col+1)*len(row)/columns

		peak := 0.0
		for _, p := range row[start:end] {
			peak = max(peak, p.Mix)
		}

		fmt.Fprintf(d.w, "%6.3f ", peak*100/dsp.MaxIntensity)
	}

	fmt.Fprintln(d.w)

	return d.w.Flush()
}
