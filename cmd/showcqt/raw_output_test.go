package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/noriah/showcqt/dsp"
)

func TestRawOutput(t *testing.T) {
	var buf bytes.Buffer
	out := NewRawOutput(&buf, 2)

	row := []dsp.Power{{Mix: 0}, {Mix: 51}, {Mix: 255}, {Mix: 10}}

	if err := out.Write(row, false); err != nil || buf.Len() != 0 {
		t.Fatalf("printed a row between frames: %q %v", buf.String(), err)
	}

	if err := out.Write(row, true); err != nil {
		t.Fatal(err)
	}

	if got, want := buf.String(), "20.000 100.000 \n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRawOutputNarrowRow(t *testing.T) {
	var buf bytes.Buffer
	out := NewRawOutput(&buf, 50)

	if err := out.Write(make([]dsp.Power, 3), true); err != nil {
		t.Fatal(err)
	}

	if fields := strings.Fields(buf.String()); len(fields) != 3 {
		t.Errorf("got %d columns for 3 bins", len(fields))
	}
}
