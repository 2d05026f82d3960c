package image

// FlattenOver composites straight-alpha RGBA pixels in src over the opaque
// color bg and writes fully opaque pixels to dst. dst and src must have the
// same length and may alias.
func FlattenOver(dst, src []uint8, bg [4]uint8) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]
	for i := 0; i+3 < len(src); i += 4 {
		a := uint32(src[i+3])
		switch a {
		case 255:
			dst[i], dst[i+1], dst[i+2] = src[i], src[i+1], src[i+2]
		case 0:
			dst[i], dst[i+1], dst[i+2] = bg[0], bg[1], bg[2]
		default:
			inv := 255 - a
			//nolint:gosec // G115: weighted average of two bytes stays in [0,255]
			dst[i] = uint8((uint32(src[i])*a + uint32(bg[0])*inv + 127) / 255)
			//nolint:gosec // G115: see above
			dst[i+1] = uint8((uint32(src[i+1])*a + uint32(bg[1])*inv + 127) / 255)
			//nolint:gosec // G115: see above
			dst[i+2] = uint8((uint32(src[i+2])*a + uint32(bg[2])*inv + 127) / 255)
		}
		dst[i+3] = 255
	}
}
