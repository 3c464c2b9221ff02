// Package field implements scalar arithmetic over the binary extension
// fields GF(2^n) for n in [1,7], the leaf component the matrix and
// coder layers are built on.
package field

import "github.com/minio/erasurecore/internal/codeerr"

// divisors holds the fixed irreducible polynomial used to reduce products
// for each supported field degree, indexed by n.
var divisors = [8]int{
	0: 0, // unused, n starts at 1
	1: 3,
	2: 7,
	3: 11,
	4: 19,
	5: 37,
	6: 67,
	7: 131,
}

// Field represents GF(2^n): order = 2^n elements, addition is XOR,
// multiplication is polynomial multiplication modulo Divisor.
type Field struct {
	n       int
	order   int
	divisor int
}

// New builds the field GF(2^n). n must be in [1,7].
func New(n int) (*Field, error) {
	if n < 1 || n > 7 {
		return nil, codeerr.NewValueError("n", n, "in [1,7]")
	}
	return &Field{n: n, order: 1 << uint(n), divisor: divisors[n]}, nil
}

// N returns the field degree.
func (f *Field) N() int { return f.n }

// Order returns 2^n, the number of elements in the field.
func (f *Field) Order() int { return f.order }

// Divisor returns the irreducible polynomial (as an integer bitmask) used
// to reduce products.
func (f *Field) Divisor() int { return f.divisor }

// Validate reports whether a is a valid element of the field.
func (f *Field) Validate(a int) error {
	if a < 0 || a >= f.order {
		return codeerr.NewValueError("element", a, "in [0,order)")
	}
	return nil
}

// Add returns a+b, which in characteristic 2 is bitwise XOR.
func (f *Field) Add(a, b int) int {
	return a ^ b
}

// Negate returns -a. In characteristic 2 every element is its own
// additive inverse, so Negate is the identity function.
func (f *Field) Negate(a int) int {
	return a
}

// Sub returns a-b, identical to Add in characteristic 2.
func (f *Field) Sub(a, b int) int {
	return a ^ b
}

// Multiply returns a*b reduced modulo Divisor.
//
// The product of two polynomials of degree < n is formed bit by bit
// (result ^= a<<i for every set bit i of b), then reduced by repeatedly
// XORing a shifted copy of Divisor into the high bits until the result
// fits back under Order.
func (f *Field) Multiply(a, b int) int {
	if f.n == 1 {
		// GF(2): multiplication degenerates to the AND of two single bits.
		return a & b
	}
	result := 0
	for i := 0; i < f.n; i++ {
		if b&(1<<uint(i)) != 0 {
			result ^= a << uint(i)
		}
	}
	for result >= f.order {
		hi := highestBit(result)
		shift := hi - highestBit(f.divisor)
		result ^= f.divisor << uint(shift)
	}
	return result
}

// highestBit returns the index of the highest set bit of x. x must be > 0.
func highestBit(x int) int {
	bit := 0
	for x > 1 {
		x >>= 1
		bit++
	}
	return bit
}

// Invert returns the unique b such that Multiply(a,b) == 1. Fails with
// NoInverse when a == 0. The search is a brute-force scan since Order is
// at most 128 for the supported degrees.
func (f *Field) Invert(a int) (int, error) {
	if a == 0 {
		return 0, codeerr.NewNoInverseElement(a)
	}
	for b := 1; b < f.order; b++ {
		if f.Multiply(a, b) == 1 {
			return b, nil
		}
	}
	// Unreachable for a properly constructed field: every nonzero element
	// has an inverse.
	return 0, codeerr.NewNoInverseElement(a)
}

// Divide returns Multiply(a, Invert(b)), propagating NoInverse when b == 0.
func (f *Field) Divide(a, b int) (int, error) {
	inv, err := f.Invert(b)
	if err != nil {
		return 0, err
	}
	return f.Multiply(a, inv), nil
}

// MatrixOf returns the n*n binary matrix M_a over GF(2), row-major, such
// that the binary expansion of Multiply(a, x) equals M_a times the binary
// expansion of x. Column c holds the bits of Multiply(a, 2^c).
func (f *Field) MatrixOf(a int) ([][]byte, error) {
	if err := f.Validate(a); err != nil {
		return nil, err
	}
	m := make([][]byte, f.n)
	for r := range m {
		m[r] = make([]byte, f.n)
	}
	for c := 0; c < f.n; c++ {
		p := f.Multiply(a, 1<<uint(c))
		for r := 0; r < f.n; r++ {
			m[r][c] = byte((p >> uint(r)) & 1)
		}
	}
	return m, nil
}
