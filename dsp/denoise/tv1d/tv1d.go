package tv1d

import (
	"errors"

	"github.com/cwbudde/algo-waveform/dsp/core"
)

// Errors returned by the denoiser.
var (
	ErrNegativeLambda = errors.New("tv1d: lambda must be >= 0")
	ErrLengthMismatch = errors.New("tv1d: dst and src lengths differ")
)

// Denoise returns the exact TV-L1 denoised copy of input for the given
// smoothing weight. The input is never mutated; the result is freshly
// allocated and has the same length. lambda = 0 returns an exact copy.
func Denoise(input []float64, lambda float64) ([]float64, error) {
	var f Filter
	return f.Denoise(input, lambda)
}

// Filter is a reusable TV-L1 denoiser. It owns the two breakpoint index
// buffers the algorithm needs as scratch, so repeated calls on same-length
// records allocate nothing beyond the output. A Filter must not be shared
// between goroutines; independent Filters are fully isolated.
type Filter struct {
	lowStart []int
	upStart  []int
}

// NewFilter returns a Filter with no pre-allocated scratch.
func NewFilter() *Filter {
	return &Filter{}
}

// Denoise returns the denoised copy of input, reusing the filter scratch.
func (f *Filter) Denoise(input []float64, lambda float64) ([]float64, error) {
	out := make([]float64, len(input))
	if err := f.DenoiseInto(out, input, lambda); err != nil {
		return nil, err
	}
	return out, nil
}

// DenoiseInto writes the denoised src into dst. Both slices must have the
// same length. dst may be src itself: the algorithm never reads a sample it
// has already overwritten, so in-place operation is safe.
func (f *Filter) DenoiseInto(dst, src []float64, lambda float64) error {
	if lambda < 0 {
		return ErrNegativeLambda
	}
	if len(dst) != len(src) {
		return ErrLengthMismatch
	}
	n := len(src)
	if n == 0 {
		return nil
	}
	if lambda == 0 || n == 1 {
		copy(dst, src)
		return nil
	}

	f.lowStart = core.EnsureIntLen(f.lowStart, n)
	f.upStart = core.EnsureIntLen(f.upStart, n)

	t := tube{
		dst:      dst,
		lowStart: f.lowStart,
		upStart:  f.upStart,
		lowFirst: src[0] - lambda,
		upFirst:  src[0] + lambda,
	}
	t.lowCurr = t.lowFirst
	t.upCurr = t.upFirst
	t.lowStart[0] = 0
	t.upStart[0] = 0
	t.run(src, lambda)

	return nil
}

// tube is the per-invocation state of the taut-string pass: two stacks of
// segment start indices (one per monotone envelope), the running mean of the
// newest segment of each envelope, and the value and start of the oldest
// still-unresolved segment. Indices below segStart hold final output.
type tube struct {
	dst      []float64
	lowStart []int // start index of each open lower-envelope segment
	upStart  []int // start index of each open upper-envelope segment
	jLow     int   // top of the lower stack
	jUp      int   // top of the upper stack
	jSeg     int   // oldest unresolved segment (common to both stacks)
	segStart int   // start index of that segment
	lowFirst float64
	lowCurr  float64
	upFirst  float64
	upCurr   float64
}

// run performs the single left-to-right pass. len(src) >= 2 and lambda > 0;
// the boundary state has been seeded from src[0] +/- lambda by the caller.
func (t *tube) run(src []float64, lambda float64) {
	twoLambda := 2 * lambda
	last := len(src) - 1

	for i := 1; i < last; i++ {
		x := src[i]
		if x >= t.lowCurr {
			if x <= t.upCurr {
				// Inside the tube: absorb the sample into the upper mean.
				t.upCurr += (x - t.upCurr) / float64(i-t.upStart[t.jUp]+1)
				t.dst[t.segStart] = t.upFirst
				t.unwindUp(i)
				if t.jUp == t.jSeg {
					t.commitLow(i)
					t.upFirst = t.upCurr
					t.jUp = t.jSeg
					t.upStart[t.jUp] = t.segStart
				} else {
					t.dst[t.upStart[t.jUp]] = t.upCurr
				}
			} else {
				// Above the tube: open a new upper segment at i.
				t.jUp++
				t.upStart[t.jUp] = i
				t.dst[i] = x
				t.upCurr = x
			}

			// Either way the sample extends the lower mean.
			t.lowCurr += (x - t.lowCurr) / float64(i-t.lowStart[t.jLow]+1)
			t.dst[t.segStart] = t.lowFirst
			t.unwindLow(i)
			if t.jLow == t.jSeg {
				t.commitUp(i)
				t.jLow = t.jSeg
				t.lowStart[t.jLow] = t.segStart
				if t.segStart == i {
					t.lowFirst = t.upFirst - twoLambda
				} else {
					t.lowFirst = t.lowCurr
				}
			} else {
				t.dst[t.lowStart[t.jLow]] = t.lowCurr
			}
		} else {
			// Below the tube: open a new lower segment at i, and extend the
			// upper mean with the same sample.
			t.jLow++
			t.lowStart[t.jLow] = i
			t.dst[i] = x
			t.lowCurr = x

			t.upCurr += (x - t.upCurr) / float64(i-t.upStart[t.jUp]+1)
			t.dst[t.segStart] = t.upFirst
			t.unwindUp(i)
			if t.jUp == t.jSeg {
				t.commitLow(i)
				t.jUp = t.jSeg
				t.upStart[t.jUp] = t.segStart
				if t.segStart == i {
					t.upFirst = t.lowFirst + twoLambda
				} else {
					t.upFirst = t.upCurr
				}
			} else {
				t.dst[t.upStart[t.jUp]] = t.upCurr
			}
		}
	}

	t.finish(last, src[last], lambda)
}

// unwindUp folds the updated upper mean back over previously closed upper
// segments whose value it no longer exceeds, merging them into one. Every
// segment is retired at most once across the whole pass, which is what
// keeps the total cost linear.
func (t *tube) unwindUp(i int) {
	for t.jUp > t.jSeg {
		ind := t.upStart[t.jUp-1]
		if t.upCurr > t.dst[ind] {
			break
		}
		t.upCurr += (t.dst[ind] - t.upCurr) * float64(t.upStart[t.jUp]-ind) / float64(i-ind+1)
		t.jUp--
	}
}

// unwindLow is the mirror image of unwindUp for the lower envelope.
func (t *tube) unwindLow(i int) {
	for t.jLow > t.jSeg {
		ind := t.lowStart[t.jLow-1]
		if t.lowCurr < t.dst[ind] {
			break
		}
		t.lowCurr += (t.dst[ind] - t.lowCurr) * float64(t.lowStart[t.jLow]-ind) / float64(i-ind+1)
		t.jLow--
	}
}

// commitLow finalizes the oldest lower segments while the upper mean has
// fallen to (or below) their value: their plateaus are written to dst and
// can never change again.
func (t *tube) commitLow(i int) {
	for t.upCurr <= t.lowFirst && t.jSeg < t.jLow {
		t.jSeg++
		segEnd := t.lowStart[t.jSeg]
		t.upCurr += (t.upCurr - t.lowFirst) * float64(segEnd-t.segStart) / float64(i-segEnd+1)
		for t.segStart < segEnd {
			t.dst[t.segStart] = t.lowFirst
			t.segStart++
		}
		t.lowFirst = t.dst[t.segStart]
	}
}

// commitUp is the mirror image of commitLow for the upper envelope.
func (t *tube) commitUp(i int) {
	for t.lowCurr >= t.upFirst && t.jSeg < t.jUp {
		t.jSeg++
		segEnd := t.upStart[t.jSeg]
		t.lowCurr += (t.lowCurr - t.upFirst) * float64(segEnd-t.segStart) / float64(i-segEnd+1)
		for t.segStart < segEnd {
			t.dst[t.segStart] = t.upFirst
			t.segStart++
		}
		t.upFirst = t.dst[t.segStart]
	}
}

// finish resolves the remaining open segments against the right boundary
// condition src[last] +/- lambda, mirroring the seeding at the left edge.
func (t *tube) finish(i int, x, lambda float64) {
	switch {
	case x+lambda <= t.lowCurr:
		// The last sample forces a final negative jump: flush all lower
		// segments and end on x + lambda.
		for t.jSeg < t.jLow {
			t.jSeg++
			segEnd := t.lowStart[t.jSeg]
			for t.segStart < segEnd {
				t.dst[t.segStart] = t.lowFirst
				t.segStart++
			}
			t.lowFirst = t.dst[t.segStart]
		}
		for t.segStart < i {
			t.dst[t.segStart] = t.lowFirst
			t.segStart++
		}
		t.dst[i] = x + lambda

	case x-lambda >= t.upCurr:
		// Final positive jump.
		for t.jSeg < t.jUp {
			t.jSeg++
			segEnd := t.upStart[t.jSeg]
			for t.segStart < segEnd {
				t.dst[t.segStart] = t.upFirst
				t.segStart++
			}
			t.upFirst = t.dst[t.segStart]
		}
		for t.segStart < i {
			t.dst[t.segStart] = t.upFirst
			t.segStart++
		}
		t.dst[i] = x - lambda

	default:
		// No jump at the edge: close the pass on whichever envelope binds.
		t.lowCurr += (x + lambda - t.lowCurr) / float64(i-t.lowStart[t.jLow]+1)
		t.dst[t.segStart] = t.lowFirst
		t.unwindLow(i)
		if t.jLow == t.jSeg {
			if t.upFirst >= t.lowCurr {
				// A single segment remains.
				for t.segStart <= i {
					t.dst[t.segStart] = t.lowCurr
					t.segStart++
				}
				return
			}
			t.upCurr += (x - lambda - t.upCurr) / float64(i-t.upStart[t.jUp]+1)
			t.dst[t.segStart] = t.upFirst
			t.unwindUp(i)
			for t.jSeg < t.jUp {
				t.jSeg++
				segEnd := t.upStart[t.jSeg]
				for t.segStart < segEnd {
					t.dst[t.segStart] = t.upFirst
					t.segStart++
				}
				t.upFirst = t.dst[t.segStart]
			}
			t.segStart = t.upStart[t.jUp]
			for t.segStart <= i {
				t.dst[t.segStart] = t.upCurr
				t.segStart++
			}
			return
		}
		for t.jSeg < t.jLow {
			t.jSeg++
			segEnd := t.lowStart[t.jSeg]
			for t.segStart < segEnd {
				t.dst[t.segStart] = t.lowFirst
				t.segStart++
			}
			t.lowFirst = t.dst[t.segStart]
		}
		t.segStart = t.lowStart[t.jLow]
		for t.segStart <= i {
			t.dst[t.segStart] = t.lowCurr
			t.segStart++
		}
	}
}
