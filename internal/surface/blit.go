package surface

// CopyCropped copies the overlapping top-left rectangle of src into dst.
// Both are row-major with no row padding; srcW and dstW are the strides.
// Destination pixels outside the overlap keep their previous values. It
// returns the number of rows copied.
func CopyCropped(dst []uint32, dstW, dstH int, src []uint32, srcW, srcH int) int {
	w := min(srcW, dstW)
	h := min(srcH, dstH)
	if w <= 0 || h <= 0 {
		return 0
	}

	rows := 0
	for y := 0; y < h; y++ {
		s := y * srcW
		d := y * dstW
		if s+w > len(src) || d+w > len(dst) {
			break
		}
		copy(dst[d:d+w], src[s:s+w])
		rows++
	}
	return rows
}
