// Package streambench reference implementations for verification
package streambench

// Expected64 holds the value every element of each float64 array must
// carry after a run. Each kernel applies one identical update to every
// element, so a single scalar per array tracks the whole array.
type Expected64 struct {
	A, B, C, D, E float64
}

// Expected32 is the float32 counterpart of Expected64.
type Expected32 struct {
	A, B, C, D, E float32
}

// Reference contains simple, correct replays of the kernel arithmetic.
// These run single threaded and in order, and are what the validator
// trusts.
type Reference struct{}

// Final64 replays trials rounds of the kernel sequence in float64,
// starting from the canonical initial values and the one warm-up
// doubling of A.
//
// E only changes when scatter is enabled, and it takes D's value, so a
// scatter-only run leaves every touched element of E at 1.
func (r Reference) Final64(trials int, gather, scatter bool) Expected64 {
	aj, bj, cj := 1.0, 2.0, 0.0
	dj, ej := 1.0, 0.0

	// Warm-up pass.
	aj = 2.0 * aj

	for k := 0; k < trials; k++ {
		cj = aj
		bj = scalar * cj
		cj = aj + bj
		aj = bj + scalar*cj
		if gather {
			dj = aj
		}
		if scatter {
			ej = dj
		}
	}

	return Expected64{A: aj, B: bj, C: cj, D: dj, E: ej}
}

// Final32 replays trials rounds of the kernel sequence in float32.
func (r Reference) Final32(trials int, gather, scatter bool) Expected32 {
	var aj, bj, cj float32 = 1.0, 2.0, 0.0
	var dj, ej float32 = 1.0, 0.0

	aj = 2.0 * aj

	for k := 0; k < trials; k++ {
		cj = aj
		bj = scalar * cj
		cj = aj + bj
		aj = bj + scalar*cj
		if gather {
			dj = aj
		}
		if scatter {
			ej = dj
		}
	}

	return Expected32{A: aj, B: bj, C: cj, D: dj, E: ej}
}

// Dot64 recomputes the indirect dot product sequentially over the
// observed arrays.
func (r Reference) Dot64(d, b []float64, idx []int32) float64 {
	var x float64
	for j := range d {
		x += d[j] * b[idx[j]]
	}
	return x
}

// Dot32 recomputes the indirect dot product sequentially in float32.
func (r Reference) Dot32(d, b []float32, idx []int32) float32 {
	var x float32
	for j := range d {
		x += d[j] * b[idx[j]]
	}
	return x
}
