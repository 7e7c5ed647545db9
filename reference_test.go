package streambench

import "testing"

func TestReferenceRecurrence(t *testing.T) {
	exp := Reference{}.Final64(10, false, false)

	// After the warm-up doubling each trial multiplies a by 15:
	// c=a, b=3a, c=4a, a=b+3c=15a. Ten trials from a=2 give 2*15^10.
	if exp.A != 1153300781250.0 {
		t.Errorf("A = %v, want 1153300781250", exp.A)
	}
	if exp.B != 230660156250.0 {
		t.Errorf("B = %v, want 230660156250", exp.B)
	}
	if exp.C != 307546875000.0 {
		t.Errorf("C = %v, want 307546875000", exp.C)
	}
	// D and E never move without gather and scatter.
	if exp.D != 1 || exp.E != 0 {
		t.Errorf("D, E = %v, %v, want 1, 0", exp.D, exp.E)
	}
}

func TestReferenceDeterministic(t *testing.T) {
	first := Reference{}.Final64(10, true, true)
	second := Reference{}.Final64(10, true, true)
	if first != second {
		t.Fatalf("two float64 replays differ: %+v vs %+v", first, second)
	}

	f32a := Reference{}.Final32(10, true, true)
	f32b := Reference{}.Final32(10, true, true)
	if f32a != f32b {
		t.Fatalf("two float32 replays differ: %+v vs %+v", f32a, f32b)
	}
}

func TestReferenceGatherScatter(t *testing.T) {
	gatherOnly := Reference{}.Final64(3, true, false)
	if gatherOnly.D != gatherOnly.A {
		t.Errorf("with gather, D must track A: D = %v, A = %v", gatherOnly.D, gatherOnly.A)
	}
	if gatherOnly.E != 0 {
		t.Errorf("without scatter, E must stay 0, got %v", gatherOnly.E)
	}

	both := Reference{}.Final64(3, true, true)
	if both.E != both.D {
		t.Errorf("with scatter, E must track D: E = %v, D = %v", both.E, both.D)
	}

	// Scatter without gather spreads the untouched initial D.
	scatterOnly := Reference{}.Final64(3, false, true)
	if scatterOnly.D != 1 || scatterOnly.E != 1 {
		t.Errorf("scatter only: D = %v, E = %v, want 1, 1", scatterOnly.D, scatterOnly.E)
	}
}

func TestReferenceFloat32Recurrence(t *testing.T) {
	// Five trials keep every value below 2^24, so the float32 replay
	// is exact and must agree with the float64 one.
	exp32 := Reference{}.Final32(5, true, true)
	exp64 := Reference{}.Final64(5, true, true)

	if float64(exp32.A) != exp64.A || float64(exp32.B) != exp64.B ||
		float64(exp32.C) != exp64.C || float64(exp32.D) != exp64.D ||
		float64(exp32.E) != exp64.E {
		t.Errorf("float32 replay %+v diverges from float64 %+v", exp32, exp64)
	}
}

func TestReferenceDot(t *testing.T) {
	d := []float64{1, 2, 3}
	b := []float64{10, 20, 30, 40}
	idx := []int32{3, 0, 1}

	if got := (Reference{}).Dot64(d, b, idx); got != 120 {
		t.Errorf("Dot64 = %v, want 120", got)
	}

	d32 := []float32{1, 2, 3}
	b32 := []float32{10, 20, 30, 40}
	if got := (Reference{}).Dot32(d32, b32, idx); got != 120 {
		t.Errorf("Dot32 = %v, want 120", got)
	}
}
