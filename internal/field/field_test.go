package field

import "testing"

func mustNew(t *testing.T, n int) *Field {
	t.Helper()
	f, err := New(n)
	if err != nil {
		t.Fatalf("New(%d): %v", n, err)
	}
	return f
}

func TestNewRejectsOutOfRangeDegree(t *testing.T) {
	for _, n := range []int{-1, 0, 8, 20} {
		if _, err := New(n); err == nil {
			t.Errorf("New(%d): expected error, got nil", n)
		}
	}
}

func TestDivisorTable(t *testing.T) {
	want := map[int]int{1: 3, 2: 7, 3: 11, 4: 19, 5: 37, 6: 67, 7: 131}
	for n, divisor := range want {
		f := mustNew(t, n)
		if f.Divisor() != divisor {
			t.Errorf("F(%d).Divisor() = %d, want %d", n, f.Divisor(), divisor)
		}
		if f.Order() != 1<<uint(n) {
			t.Errorf("F(%d).Order() = %d, want %d", n, f.Order(), 1<<uint(n))
		}
	}
}

// S1 (field table).
func TestConcreteScenarios(t *testing.T) {
	f3 := mustNew(t, 3)
	if got := f3.Multiply(6, 5); got != 3 {
		t.Errorf("F(3).Multiply(6,5) = %d, want 3", got)
	}

	f4 := mustNew(t, 4)
	inv, err := f4.Invert(9)
	if err != nil {
		t.Fatalf("F(4).Invert(9): %v", err)
	}
	if f4.Multiply(9, inv) != 1 {
		t.Errorf("F(4).Invert(9) = %d, but Multiply(9,%d) = %d, want 1", inv, inv, f4.Multiply(9, inv))
	}

	f2 := mustNew(t, 2)
	div, err := f2.Divide(2, 3)
	if err != nil {
		t.Fatalf("F(2).Divide(2,3): %v", err)
	}
	if f2.Multiply(div, 3) != 2 {
		t.Errorf("F(2).Divide(2,3) = %d, but Multiply(%d,3) = %d, want 2", div, div, f2.Multiply(div, 3))
	}
}

func TestAddIsCommutativeAndSelfInverse(t *testing.T) {
	for n := 1; n <= 7; n++ {
		f := mustNew(t, n)
		for a := 0; a < f.Order(); a++ {
			if f.Add(a, f.Negate(a)) != 0 {
				t.Fatalf("F(%d): add(%d, negate(%d)) != 0", n, a, a)
			}
			for b := 0; b < f.Order(); b++ {
				if f.Add(a, b) != f.Add(b, a) {
					t.Fatalf("F(%d): add(%d,%d) != add(%d,%d)", n, a, b, b, a)
				}
			}
		}
	}
}

func TestMultiplyIsCommutativeAndZeroDivisorFree(t *testing.T) {
	for n := 1; n <= 7; n++ {
		f := mustNew(t, n)
		for a := 0; a < f.Order(); a++ {
			for b := 0; b < f.Order(); b++ {
				if f.Multiply(a, b) != f.Multiply(b, a) {
					t.Fatalf("F(%d): multiply(%d,%d) != multiply(%d,%d)", n, a, b, b, a)
				}
				if f.Multiply(a, b) == 0 && a != 0 && b != 0 {
					t.Fatalf("F(%d): multiply(%d,%d) = 0 but neither operand is 0", n, a, b)
				}
			}
		}
	}
}

// Exactly order-1 ordered pairs satisfy multiply(a,b)=1.
func TestMultiplicativeGroupHasExactlyOrderMinusOneUnitPairs(t *testing.T) {
	for n := 1; n <= 7; n++ {
		f := mustNew(t, n)
		count := 0
		for a := 0; a < f.Order(); a++ {
			for b := 0; b < f.Order(); b++ {
				if f.Multiply(a, b) == 1 {
					count++
				}
			}
		}
		if count != f.Order()-1 {
			t.Fatalf("F(%d): found %d unit pairs, want %d", n, count, f.Order()-1)
		}
	}
}

func TestInvertFailsOnZero(t *testing.T) {
	for n := 1; n <= 7; n++ {
		f := mustNew(t, n)
		if _, err := f.Invert(0); err == nil {
			t.Fatalf("F(%d): Invert(0) should fail", n)
		}
	}
}

func TestEveryNonzeroElementHasUniqueInverse(t *testing.T) {
	for n := 1; n <= 7; n++ {
		f := mustNew(t, n)
		for a := 1; a < f.Order(); a++ {
			inv, err := f.Invert(a)
			if err != nil {
				t.Fatalf("F(%d): Invert(%d): %v", n, a, err)
			}
			if f.Multiply(a, inv) != 1 {
				t.Fatalf("F(%d): Multiply(%d, Invert(%d)=%d) != 1", n, a, a, inv)
			}
		}
	}
}

// matrix_of(add(a,b)) = matrix_of(a) XOR matrix_of(b), componentwise.
func TestMatrixOfIsLinearInAddition(t *testing.T) {
	for n := 1; n <= 7; n++ {
		f := mustNew(t, n)
		for a := 0; a < f.Order(); a++ {
			for b := 0; b < f.Order(); b++ {
				ma, err := f.MatrixOf(a)
				if err != nil {
					t.Fatalf("F(%d): MatrixOf(%d): %v", n, a, err)
				}
				mb, err := f.MatrixOf(b)
				if err != nil {
					t.Fatalf("F(%d): MatrixOf(%d): %v", n, b, err)
				}
				mab, err := f.MatrixOf(f.Add(a, b))
				if err != nil {
					t.Fatalf("F(%d): MatrixOf(add(%d,%d)): %v", n, a, b, err)
				}
				for r := 0; r < n; r++ {
					for c := 0; c < n; c++ {
						if mab[r][c] != ma[r][c]^mb[r][c] {
							t.Fatalf("F(%d): matrix_of(add(%d,%d))[%d][%d] mismatch", n, a, b, r, c)
						}
					}
				}
			}
		}
	}
}

// matrix_of(a) applied to the binary expansion of x equals the binary
// expansion of multiply(a,x) -- the contract MatrixOf's doc promises.
func TestMatrixOfMatchesMultiplication(t *testing.T) {
	for n := 1; n <= 7; n++ {
		f := mustNew(t, n)
		for a := 0; a < f.Order(); a++ {
			m, err := f.MatrixOf(a)
			if err != nil {
				t.Fatalf("F(%d): MatrixOf(%d): %v", n, a, err)
			}
			for x := 0; x < f.Order(); x++ {
				want := f.Multiply(a, x)
				got := 0
				for r := 0; r < n; r++ {
					bit := byte(0)
					for c := 0; c < n; c++ {
						xBit := byte((x >> uint(c)) & 1)
						bit ^= m[r][c] & xBit
					}
					got |= int(bit) << uint(r)
				}
				if got != want {
					t.Fatalf("F(%d): MatrixOf(%d) * bits(%d) = %d, want %d", n, a, x, got, want)
				}
			}
		}
	}
}
