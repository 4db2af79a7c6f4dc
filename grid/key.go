package grid

// Key packs a point into a canonical 64-bit value by bit-interleaving the
// two coordinates (Morton order). Negative coordinates are zigzag-encoded
// first so the full 32-bit range of each axis maps to a distinct key.
// Distinct points always produce distinct keys, which makes Key suitable
// as the identity for visited-sets over arbitrary world coordinates.
func Key(p Point) uint64 {
	return interleave(zigzag(p.X)) | interleave(zigzag(p.Y))<<1
}

// zigzag folds a signed coordinate into an unsigned one, keeping small
// magnitudes small: 0, -1, 1, -2, 2 ... -> 0, 1, 2, 3, 4 ...
func zigzag(v int) uint32 {
	n := int32(v)
	return uint32((n << 1) ^ (n >> 31))
}

// interleave spreads the bits of v so they occupy the even bit positions
// of the result.
func interleave(v uint32) uint64 {
	x := uint64(v)
	x = (x | x<<16) & 0x0000ffff0000ffff
	x = (x | x<<8) & 0x00ff00ff00ff00ff
	x = (x | x<<4) & 0x0f0f0f0f0f0f0f0f
	x = (x | x<<2) & 0x3333333333333333
	x = (x | x<<1) & 0x5555555555555555
	return x
}
