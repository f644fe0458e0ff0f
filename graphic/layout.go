package graphic

import (
	"math"

	"github.com/noriah/showcqt/config"
	"github.com/noriah/showcqt/dsp"
	"github.com/nsf/termbox-go"
)

// noteNames labels the semitones of an octave starting at E.
const noteNames = "EF G A BC D "

// The font color sweeps across the octave starting at this bin.
const fontStart = (12*3 + 8) * config.BinsPerSemitone

// layout maps bins onto terminal cells.
type layout struct {
	columns []int  // bin drawn in each column
	labels  []rune // note name row

	barRows     int
	historyRows int
}

func newLayout(width, height, bins int) layout {
	width = max(min(width, bins), 0)
	height = max(height, 1)

	l := layout{
		columns:     make([]int, width),
		labels:      make([]rune, width),
		barRows:     (height - 1) / 2,
		historyRows: height - 1 - (height-1)/2,
	}

	last := -1
	for col := range l.columns {
		lo := col * bins / width
		hi := (col + 1) * bins / width
		bin := (lo + hi) / 2

		l.columns[col] = bin

		semitone := bin / config.BinsPerSemitone
		if semitone != last {
			l.labels[col] = noteName(bin)
		} else {
			l.labels[col] = ' '
		}
		last = semitone
	}

	return l
}

// noteName returns the label of the semitone holding bin.
func noteName(bin int) rune {
	return rune(noteNames[(bin/config.BinsPerSemitone)%12])
}

// fontColor is the blue share of the label color at bin.
func fontColor(bin int) float64 {
	if bin < fontStart || bin >= fontStart+config.BinsPerOctave {
		return 0
	}

	fx := float64(bin-fontStart) / config.BinsPerOctave
	sv := math.Sin(math.Pi * fx)

	return sv * sv * dsp.MaxIntensity
}

func fontAttr(bin int) termbox.Attribute {
	fc := fontColor(bin)
	return rgbAttr(dsp.MaxIntensity-fc, 0, fc)
}

// barShade is the brightness of a bar cell at height h for a bin of power raw.
func barShade(raw, h float64) float64 {
	if raw <= h {
		return 0
	}
	return (raw - h) / (raw + 0.0001)
}

// powerAttr colors a bin red for left, green for mix and blue for right.
func powerAttr(p dsp.Power, mul float64) termbox.Attribute {
	return rgbAttr(mul*p.Left, mul*p.Mix, mul*p.Right)
}

// rgbAttr picks the closest entry of the 6x6x6 color cube of Output256.
func rgbAttr(r, g, b float64) termbox.Attribute {
	q := func(v float64) int {
		return min(max(int(v/dsp.MaxIntensity*5+0.5), 0), 5)
	}

	// Output256 colors are offset by one, zero is the default color.
	return termbox.Attribute(16 + 36*q(r) + 6*q(g) + q(b) + 1)
}
