package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"hashhunt/hunt"
)

const recentMatches = 8

// watchState is the sink behind the live view. The searcher writes to it
// from one goroutine while the render loop reads snapshots.
type watchState struct {
	mu         sync.Mutex
	opts       hunt.Options
	limit      uint64
	started    time.Time
	iterations uint64
	markers    uint64
	found      []hunt.Match
	done       bool
	summary    hunt.Summary
	err        error
}

type watchSnapshot struct {
	opts       hunt.Options
	limit      uint64
	elapsed    time.Duration
	iterations uint64
	markers    uint64
	found      []hunt.Match
	done       bool
	summary    hunt.Summary
	err        error
}

func newWatchState(opts hunt.Options, limit uint64) *watchState {
	return &watchState{opts: opts, limit: limit, started: time.Now()}
}

func (w *watchState) Match(m hunt.Match) {
	w.mu.Lock()
	w.found = append(w.found, m)
	w.mu.Unlock()
}

func (w *watchState) Progress(p hunt.Progress) {
	w.mu.Lock()
	w.markers = p.Marker
	if p.Iterations > w.iterations {
		w.iterations = p.Iterations
	}
	w.mu.Unlock()
}

func (w *watchState) Chunk(total uint64) {
	w.mu.Lock()
	if total > w.iterations {
		w.iterations = total
	}
	w.mu.Unlock()
}

func (w *watchState) finish(sum hunt.Summary, err error) {
	w.mu.Lock()
	w.done = true
	w.summary = sum
	w.iterations = sum.Iterations
	w.err = err
	w.mu.Unlock()
}

func (w *watchState) snapshot() watchSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	found := make([]hunt.Match, len(w.found))
	copy(found, w.found)
	elapsed := time.Since(w.started)
	if w.done {
		elapsed = w.summary.Elapsed
	}
	return watchSnapshot{
		opts:       w.opts,
		limit:      w.limit,
		elapsed:    elapsed,
		iterations: w.iterations,
		markers:    w.markers,
		found:      found,
		done:       w.done,
		summary:    w.summary,
		err:        w.err,
	}
}

// runWatch drives the search behind a full-screen view until the user
// quits or ctx is cancelled. The search keeps running to its limit unless
// the user quits first.
func runWatch(
	ctx context.Context,
	s tcell.Screen,
	searcher *hunt.Searcher,
	limit uint64,
	state *watchState,
) (hunt.Summary, error) {
	if err := s.Init(); err != nil {
		return hunt.Summary{}, fmt.Errorf("screen start failed: %w", err)
	}
	defer s.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	quit := make(chan struct{})
	// Input handler; PollEvent returns nil once the screen is finalized.
	go func() {
		defer close(quit)
		for {
			switch ev := s.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return
				case tcell.KeyRune:
					if ev.Rune() == 'q' || ev.Rune() == 'Q' {
						return
					}
				}
			case *tcell.EventResize:
				s.Sync()
			}
		}
	}()

	type result struct {
		sum hunt.Summary
		err error
	}
	results := make(chan result, 1)
	go func() {
		sum, err := searcher.Run(ctx, limit, state)
		state.finish(sum, err)
		results <- result{sum, err}
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	var (
		final    result
		finished bool
	)
	for {
		select {
		case <-quit:
			cancel()
			if !finished {
				final = <-results
			}
			return final.sum, final.err
		case <-ctx.Done():
			if !finished {
				final = <-results
			}
			return final.sum, final.err
		case r := <-results:
			final, finished = r, true
			renderWatch(s, state.snapshot())
		case <-ticker.C:
			if !finished {
				renderWatch(s, state.snapshot())
			}
		}
	}
}

func renderWatch(s tcell.Screen, snap watchSnapshot) {
	s.Clear()
	w, h := s.Size()
	if w <= 20 || h <= 10 {
		s.Show()
		return
	}

	title := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	dim := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	plain := tcell.StyleDefault

	drawText(s, 1, 1, title, fmt.Sprintf("hashhunt | %s | pattern %q (%s) | length %d | workers %d",
		snap.opts.Algorithm, snap.opts.Pattern, snap.opts.Mode, snap.opts.Length, snap.opts.Workers))

	frac := 1.0
	if snap.limit > 0 {
		frac = float64(snap.iterations) / float64(snap.limit)
	}
	drawBar(s, 1, 3, w-2, frac)

	rate := 0.0
	if secs := snap.elapsed.Seconds(); secs > 0 {
		rate = float64(snap.iterations) / secs
	}
	drawText(s, 1, 5, plain, fmt.Sprintf("Iterations: %d / %d  (%.1f%%)", snap.iterations, snap.limit, frac*100))
	drawText(s, 1, 6, plain, fmt.Sprintf("Rate: %.0f/s  Elapsed: %s  Markers: %d",
		rate, snap.elapsed.Truncate(time.Millisecond), snap.markers))
	drawText(s, 1, 7, plain, fmt.Sprintf("Matches: %d", len(snap.found)))

	recent := snap.found
	if len(recent) > recentMatches {
		recent = recent[len(recent)-recentMatches:]
	}
	match := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for i, m := range recent {
		y := 9 + i
		if y >= h-2 {
			break
		}
		drawText(s, 3, y, match, fmt.Sprintf("%s --> %s", m.Candidate, m.Digest))
	}

	status := "q: stop"
	switch {
	case snap.done && snap.err != nil:
		status = fmt.Sprintf("stopped: %v | q: exit", snap.err)
	case snap.done:
		status = "done | q: exit"
	}
	drawText(s, 1, h-2, dim, status)
	s.Show()
}

// drawBar renders a progress bar whose fill shades from purple to green.
func drawBar(s tcell.Screen, x, y, width int, frac float64) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	inner := width - 2
	if inner <= 0 {
		return
	}
	filled := int(frac * float64(inner))
	s.SetContent(x, y, '[', nil, tcell.StyleDefault)
	for i := 0; i < inner; i++ {
		if i < filled {
			c := barColor(float64(i) / float64(inner))
			s.SetContent(x+1+i, y, '█', nil, tcell.StyleDefault.Foreground(c))
		} else {
			s.SetContent(x+1+i, y, '·', nil, tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
		}
	}
	s.SetContent(x+1+inner, y, ']', nil, tcell.StyleDefault)
}

// barColor interpolates purple -> orange -> green over t in [0,1].
func barColor(t float64) tcell.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	r1, g1, b1 := 120, 80, 255 // Deep purple
	r2, g2, b2 := 255, 150, 50 // Orange
	r3, g3, b3 := 50, 255, 120 // Green

	var r, g, b int
	if t < 0.5 {
		blend := t * 2
		r = int(float64(r1) + blend*float64(r2-r1))
		g = int(float64(g1) + blend*float64(g2-g1))
		b = int(float64(b1) + blend*float64(b2-b1))
	} else {
		blend := (t - 0.5) * 2
		r = int(float64(r2) + blend*float64(r3-r2))
		g = int(float64(g2) + blend*float64(g3-g2))
		b = int(float64(b2) + blend*float64(b3-b2))
	}
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	w, _ := s.Size()
	col := x
	for _, r := range str {
		if col >= w {
			return
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
}
