// Package graphic draws the transform output on the terminal with termbox.
package graphic

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/noriah/showcqt/dsp"
	"github.com/noriah/showcqt/util"
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
)

const (
	// BarRune is the block we use for bars
	BarRune rune = '█'

	// NumRunes number of runes for sub step bars
	NumRunes = 8

	// MaxHistory is the most history rows kept, more than any terminal shows
	MaxHistory = 512
)

var barRunes = [NumRunes]rune{
	' ',
	'▁',
	'▂',
	'▃',
	'▄',
	'▅',
	'▆',
	'▇',
}

// Display draws bars, note names and a scrolling history of the bins.
type Display struct {
	mu sync.Mutex

	bins    int
	history *util.History

	restore func()
	closed  bool
}

// New returns a display for rows of bins entries.
func New(bins int) *Display {
	return &Display{
		bins:    bins,
		history: util.NewHistory(MaxHistory, bins),
	}
}

// Init sets up the terminal.
func (d *Display) Init() error {
	restore, err := normalizeTerminal()
	if err != nil {
		return errors.Wrap(err, "failed to normalize terminal")
	}

	if err := termbox.Init(); err != nil {
		restore()
		return errors.Wrap(err, "failed to init termbox")
	}

	termbox.SetInputMode(termbox.InputEsc)
	termbox.SetOutputMode(termbox.Output256)
	termbox.HideCursor()

	d.restore = restore

	return nil
}

// Start polls terminal events. The returned context is canceled when the user
// quits.
func (d *Display) Start(ctx context.Context) context.Context {
	dispCtx, dispCancel := context.WithCancel(ctx)
	go eventPoller(dispCtx, dispCancel)
	return dispCtx
}

func eventPoller(ctx context.Context, fn context.CancelFunc) {
	defer fn()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		switch ev := termbox.PollEvent(); ev.Type {
		case termbox.EventKey:
			switch {
			case ev.Ch == 'q', ev.Ch == 'Q':
				return
			case ev.Key == termbox.KeyCtrlC, ev.Key == termbox.KeyEsc:
				return
			}

		case termbox.EventInterrupt, termbox.EventError:
			return
		}
	}
}

// Close restores the terminal.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || d.restore == nil {
		return nil
	}

	d.closed = true

	termbox.Interrupt()
	termbox.Close()
	d.restore()

	return nil
}

// Write records row and redraws on frame rows.
func (d *Display) Write(row []dsp.Power, frame bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.history.Push(row)

	if !frame || d.closed {
		return nil
	}

	return d.draw()
}

func (d *Display) draw() error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return err
	}

	width, height := termbox.Size()
	l := newLayout(width, height, d.bins)

	newest := d.history.Row(0)

	for col, bin := range l.columns {
		drawBar(col, l.barRows, newest[bin])
		termbox.SetCell(col, l.barRows, l.labels[col], fontAttr(bin), powerAttr(newest[bin], 1))

		for age := 0; age < l.historyRows; age++ {
			row := d.history.Row(age)
			if row == nil {
				break
			}

			termbox.SetCell(col, l.barRows+1+age, ' ', termbox.ColorDefault, powerAttr(row[bin], 1))
		}
	}

	return termbox.Flush()
}

func drawBar(col, rows int, p dsp.Power) {
	if rows < 1 || p.Raw <= 0 {
		return
	}

	eighths := int(min(p.Raw, 1) * float64(rows*NumRunes))
	full, top := eighths/NumRunes, eighths%NumRunes

	for y := 0; y < full; y++ {
		// height of the cell center
		h := (float64(y) + 0.5) / float64(rows)
		termbox.SetCell(col, rows-1-y, BarRune, powerAttr(p, barShade(p.Raw, h)), termbox.ColorDefault)
	}

	if top > 0 && full < rows {
		h := float64(full) / float64(rows)
		termbox.SetCell(col, rows-1-full, barRunes[top], powerAttr(p, barShade(p.Raw, h)), termbox.ColorDefault)
	}
}

// normalizeTerminal looks for incompatibilities in the terminal configuration
// with termbox and makes some adjustments to avoid problems.
//
// Returns a function that restores the terminal configuration.
func normalizeTerminal() (func(), error) {
	prevTERMINFO, had := os.LookupEnv("TERMINFO")

	if strings.HasPrefix(os.Getenv("TERM"), "tmux") {
		// Some combinations of TERMINFO with TERM in some Tmux value
		// will cause Termbox to fail.
		if err := os.Unsetenv("TERMINFO"); err != nil {
			return nil, err
		}
	}

	return func() {
		if had {
			os.Setenv("TERMINFO", prevTERMINFO)
		}
	}, nil
}
