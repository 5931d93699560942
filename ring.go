// Copyright (C) 2024-2026, AnaxMapper
//
// This file is part of TopoForge program.
//
// TopoForge is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// TopoForge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with TopoForge.  If not, see <https://www.gnu.org/licenses/>.

// Implements ring buffer (a fixed size power of two queue). Not intended to
// be thread-safe or such, just when I need a fast queue. The dangling-arc
// pruner runs one reachability search per segment and reuses a single buffer
// of endnode ids for all of them, hence Reset.
package main

const MAX_RING_CAPACITY = uint32(2147483648)

// RingU32 is so called because the values stored in it are uint32 integers
// (endnode ids). Beware: the routines perform no overflow or underflow
// checking for Enqueue's and Dequeue's. The end user is solely responsible to
// ascertain they don't dequeue an empty ring or enqueue a full ring.
type RingU32 struct {
	read     uint32
	write    uint32
	capacity uint32 // never changes after initialization
	buf      []uint32
}

// The argument capacity is how much data you expect to hold in ring buffer.
// This function will upsize it automatically to a power of two if non-power of
// two capacity is provided.
func CreateRingU32(capacity uint32) *RingU32 {
	iCap := RoundPOW2_Uint32(capacity)
	if iCap < capacity {
		Log.Panic("Integer overflow when computing ring capacity (before rounding up to power of two: %d). Specified capacity clearly exceeds the possible maximum\n",
			capacity)
	}
	if iCap > MAX_RING_CAPACITY {
		Log.Panic("Exceeds maximum ring capacity: %d (%d rounded up to power of two)\n",
			iCap, capacity)
	}
	capacity = iCap
	return &RingU32{
		read:     0,
		write:    0,
		capacity: capacity,
		buf:      make([]uint32, capacity, capacity),
	}
}

func RoundPOW2_Uint32(x uint32) uint32 {
	if x <= 2 {
		return x
	}

	x--

	for tmp := x >> 1; tmp != 0; tmp >>= 1 {
		x |= tmp
	}

	return x + 1
}

func (r *RingU32) mask(val uint32) uint32 {
	return val & (r.capacity - 1)
}

func (r *RingU32) Enqueue(item uint32) {
	r.buf[r.mask(r.write)] = item
	r.write++
}

func (r *RingU32) Dequeue() uint32 {
	res := r.buf[r.mask(r.read)]
	r.read++
	return res
}

func (r *RingU32) Empty() bool {
	return r.read == r.write
}

func (r *RingU32) Size() uint32 {
	return r.write - r.read
}

func (r *RingU32) Full() bool {
	return r.Size() == r.capacity
}

// Reset empties the ring without releasing the buffer
func (r *RingU32) Reset() {
	r.read = 0
	r.write = 0
}
