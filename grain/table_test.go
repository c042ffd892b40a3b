// SPDX-License-Identifier: EPL-2.0

package grain

import (
	"errors"
	"math"
	"testing"
)

func TestTable_Sine(t *testing.T) {
	t.Parallel()

	for _, length := range []int{2, 3, 64, 513, DefaultTableLength} {
		table, err := Table(Sine, length)
		if err != nil {
			t.Fatalf("Table(Sine, %d) error = %v", length, err)
		}

		if len(table) != length {
			t.Fatalf("Table(Sine, %d) len = %d", length, len(table))
		}

		if math.Abs(float64(table[0])) > 1e-5 {
			t.Errorf("length %d: table[0] = %v, want ≈0", length, table[0])
		}
		if math.Abs(float64(table[length-1])) > 1e-5 {
			t.Errorf("length %d: table[last] = %v, want ≈0", length, table[length-1])
		}
	}
}

func TestTable_SinePeak(t *testing.T) {
	t.Parallel()

	// 4n+1 points put the quarter cycle exactly on an index
	table, err := Table(Sine, 401)
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	if math.Abs(float64(table[100]-1)) > 1e-6 {
		t.Errorf("table[100] = %v, want 1", table[100])
	}
	if math.Abs(float64(table[300]+1)) > 1e-6 {
		t.Errorf("table[300] = %v, want -1", table[300])
	}
}

func TestTable_Errors(t *testing.T) {
	t.Parallel()

	for _, length := range []int{-1, 0, 1} {
		if _, err := Table(Sine, length); !errors.Is(err, ErrLengthTooShort) {
			t.Errorf("Table(Sine, %d) error = %v, want ErrLengthTooShort", length, err)
		}
	}

	if _, err := Table(WaveShape(42), 16); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("Table(unknown) error = %v, want ErrUnknownShape", err)
	}
}

func BenchmarkTable(b *testing.B) {
	b.ReportAllocs()

	for range b.N {
		_, _ = Table(Sine, DefaultTableLength)
	}
}
