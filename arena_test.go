package streambench

import (
	"testing"
)

func TestArenaAlignment(t *testing.T) {
	for _, size := range []int{1, 63, 64, 65, 4096} {
		a, err := NewArena(size)
		if err != nil {
			t.Fatalf("NewArena(%d): %v", size, err)
		}
		if addr := uintptr(a.base); addr%memoryAlignment != 0 {
			t.Errorf("NewArena(%d) base %#x not %d byte aligned", size, addr, memoryAlignment)
		}
		if a.Size() != size {
			t.Errorf("NewArena(%d).Size() = %d", size, a.Size())
		}
	}
}

func TestArenaRejectsBadSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := NewArena(size); !IsMemoryError(err) {
			t.Errorf("NewArena(%d) error = %v, want memory error", size, err)
		}
	}
}

func TestArenaAllocContiguous(t *testing.T) {
	a, err := NewArena(256)
	if err != nil {
		t.Fatal(err)
	}

	first, err := a.Alloc(128)
	if err != nil {
		t.Fatalf("first Alloc: %v", err)
	}
	second, err := a.Alloc(64)
	if err != nil {
		t.Fatalf("second Alloc: %v", err)
	}

	if gap := uintptr(second.ptr) - uintptr(first.ptr); gap != 128 {
		t.Errorf("buffers not contiguous: gap = %d, want 128", gap)
	}
}

func TestArenaExhaustion(t *testing.T) {
	a, err := NewArena(64)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Alloc(64); err != nil {
		t.Fatalf("Alloc within capacity: %v", err)
	}
	if _, err := a.Alloc(1); !IsMemoryError(err) {
		t.Errorf("Alloc past capacity error = %v, want memory error", err)
	}
}

func TestBufferViews(t *testing.T) {
	a, err := NewArena(64)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := a.Alloc(64)
	if err != nil {
		t.Fatal(err)
	}

	f64 := buf.Float64()
	if len(f64) != 8 {
		t.Fatalf("Float64 view length = %d, want 8", len(f64))
	}
	if n := len(buf.Float32()); n != 16 {
		t.Fatalf("Float32 view length = %d, want 16", n)
	}
	if n := len(buf.Int32()); n != 16 {
		t.Fatalf("Int32 view length = %d, want 16", n)
	}

	f64[0] = 42.5
	if buf.Float64()[0] != 42.5 {
		t.Errorf("Float64 view write lost: %v", buf.Float64()[0])
	}
}

func TestZeroBufferViews(t *testing.T) {
	var zero Buffer
	if zero.Float64() != nil {
		t.Error("zero Buffer Float64 view must be nil")
	}
	if zero.Float32() != nil {
		t.Error("zero Buffer Float32 view must be nil")
	}
	if zero.Int32() != nil {
		t.Error("zero Buffer Int32 view must be nil")
	}
}
