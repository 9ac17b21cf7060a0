// Package gf implements arithmetic in GF(2^8) using the polynomial
// representation reduced modulo the Rijndael irreducible polynomial
// x^8 + x^4 + x^3 + x + 1 (0x11B).
package gf

import "errors"

const (
	// Poly is the Rijndael reduction polynomial x^8 + x^4 + x^3 + x + 1.
	Poly = 0x11B

	// reduce is Poly without the x^8 term, XORed in when a shift overflows.
	reduce = byte(Poly & 0xFF)

	// generator of the multiplicative group used for the log/exp tables
	generator = 3
)

// ErrDivisionByZero is returned by Div when the divisor is zero.
var ErrDivisionByZero = errors.New("gf: division by zero")

// exp holds two periods so that exp[log a + log b] needs no modular reduction.
var (
	exp [510]byte
	log [256]byte
)

func init() {
	x := byte(1)
	for i := 0; i < 255; i++ {
		exp[i] = x
		exp[i+255] = x
		log[x] = byte(i)
		x = MulSlow(x, generator)
	}
}

// Add returns a + b. Addition in characteristic 2 is XOR.
func Add(a, b byte) byte {
	return a ^ b
}

// Sub returns a - b, which is the same operation as Add.
func Sub(a, b byte) byte {
	return a ^ b
}

// XTime multiplies a by x (the byte 0x02).
func XTime(a byte) byte {
	if a&0x80 == 0 {
		return a << 1
	}
	return (a << 1) ^ reduce
}

// MulSlow multiplies a and b one bit at a time. It does not depend on the
// lookup tables and is used to build them.
func MulSlow(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		a = XTime(a)
		b >>= 1
	}
	return p
}

// Mul returns the product of a and b in GF(2^8).
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return exp[int(log[a])+int(log[b])]
}

// Inverse returns the multiplicative inverse of a. Zero has no inverse and
// maps to zero, which is the convention the S-box relies on.
func Inverse(a byte) byte {
	if a == 0 {
		return 0
	}
	return exp[255-int(log[a])]
}

// Div returns a / b.
func Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	return exp[int(log[a])+255-int(log[b])], nil
}

// Pow returns a raised to the n-th power. Negative exponents use the inverse.
func Pow(a byte, n int) byte {
	if n == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	e := (int(log[a]) * n) % 255
	if e < 0 {
		e += 255
	}
	return exp[e]
}

// Log returns the discrete logarithm of a to base 3. The second result is
// false for a == 0, which has no logarithm.
func Log(a byte) (byte, bool) {
	if a == 0 {
		return 0, false
	}
	return log[a], true
}

// Exp returns 3^n.
func Exp(n int) byte {
	n %= 255
	if n < 0 {
		n += 255
	}
	return exp[n]
}
