// Package color converts 8-bit sRGB channels to and from linear light.
//
// Gradients that opt into linear-light blending call these on every pixel,
// so both directions are served from lookup tables built once at init.
//
// References:
//   - sRGB specification: https://www.w3.org/Graphics/Color/sRGB
package color

import "math"

// sRGBToLinearLUT maps an sRGB byte to linear light in [0, 1].
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT maps linear light quantized to 12 bits back to an sRGB byte.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := range sRGBToLinearLUT {
		sRGBToLinearLUT[i] = float32(decode(float64(i) / 255))
	}
	for i := range linearToSRGBLUT {
		linearToSRGBLUT[i] = toByte(encode(float64(i) / 4095))
	}
}

// decode is the sRGB electro-optical transfer function.
func decode(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// encode is the inverse of decode.
func encode(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

func toByte(s float64) uint8 {
	v := math.Round(s * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// SRGBToLinearFast converts an sRGB byte to linear light.
//
//	SRGBToLinearFast(128) // ~0.2159, not 0.5
func SRGBToLinearFast(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGBFast converts linear light to an sRGB byte.
// Input outside [0, 1] is clamped.
func LinearToSRGBFast(l float32) uint8 {
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	return linearToSRGBLUT[int(l*4095+0.5)]
}

// SRGBToLinear is the exact, table-free form of SRGBToLinearFast.
func SRGBToLinear(s uint8) float32 {
	return float32(decode(float64(s) / 255))
}

// LinearToSRGB is the exact, table-free form of LinearToSRGBFast.
func LinearToSRGB(l float32) uint8 {
	return toByte(encode(math.Max(0, math.Min(1, float64(l)))))
}
