package streambench

import "unsafe"

// memoryAlignment is the byte alignment of the arena base. 64 matches
// the cache line size of current x86 and ARM server cores.
const memoryAlignment = 64

// Arena is one contiguous allocation that every benchmark array is
// carved from. Buffers are handed out sequentially with no padding
// between them, so a configured element offset shifts the relative
// placement of neighboring arrays exactly the way oversized static
// arrays would.
type Arena struct {
	raw  []byte
	base unsafe.Pointer
	size int
	next int
}

// NewArena allocates size bytes with the base aligned to
// memoryAlignment.
func NewArena(size int) (*Arena, error) {
	if size <= 0 {
		return nil, NewMemoryError("NewArena", "size must be positive", nil)
	}

	raw := make([]byte, size+memoryAlignment)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	aligned := (addr + memoryAlignment - 1) &^ (memoryAlignment - 1)
	pad := int(aligned - addr)

	return &Arena{
		raw:  raw,
		base: unsafe.Pointer(&raw[pad]),
		size: size,
	}, nil
}

// Size returns the arena capacity in bytes.
func (a *Arena) Size() int {
	return a.size
}

// Alloc carves off the next size bytes of the arena.
func (a *Arena) Alloc(size int) (Buffer, error) {
	if size < 0 {
		return Buffer{}, NewMemoryError("Alloc", "size must be non-negative", nil)
	}
	if a.next+size > a.size {
		return Buffer{}, ErrArenaExhausted
	}

	buf := Buffer{ptr: unsafe.Add(a.base, a.next), size: size}
	a.next += size
	return buf, nil
}

// Buffer is a typed window onto a byte range of an Arena.
type Buffer struct {
	ptr  unsafe.Pointer
	size int
}

// Float32 returns the buffer as a float32 slice.
//
// Example:
//
//	buf, _ := arena.Alloc(1024)
//	f32 := buf.Float32() // 256 float32 values
func (b Buffer) Float32() []float32 {
	if b.ptr == nil {
		return nil
	}
	return unsafe.Slice((*float32)(b.ptr), b.size/4)
}

// Float64 returns the buffer as a float64 slice. The caller must have
// carved the buffer on an 8 byte boundary.
func (b Buffer) Float64() []float64 {
	if b.ptr == nil {
		return nil
	}
	return unsafe.Slice((*float64)(b.ptr), b.size/8)
}

// Int32 returns the buffer as an int32 slice.
func (b Buffer) Int32() []int32 {
	if b.ptr == nil {
		return nil
	}
	return unsafe.Slice((*int32)(b.ptr), b.size/4)
}
