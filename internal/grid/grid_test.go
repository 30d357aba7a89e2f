package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/eigensim/internal/quantum"
)

func TestAxis_Validate(t *testing.T) {
	tests := []struct {
		name string
		axis Axis
		ok   bool
	}{
		{"two points", Axis{Min: 0, Max: 1, Count: 2}, true},
		{"one point", Axis{Min: 0, Max: 1, Count: 1}, false},
		{"zero points", Axis{Min: 0, Max: 1, Count: 0}, false},
		{"reversed", Axis{Min: 1, Max: 0, Count: 10}, false},
		{"empty range", Axis{Min: 1, Max: 1, Count: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.axis.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, quantum.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestAxis_Points(t *testing.T) {
	a := Axis{Min: -1, Max: 1, Count: 5}
	if a.Step() != 0.5 {
		t.Errorf("step = %v, want 0.5", a.Step())
	}
	want := []float64{-1, -0.5, 0, 0.5, 1}
	for i, p := range a.Points() {
		if math.Abs(p-want[i]) > 1e-15 {
			t.Errorf("point %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis("-10:10:500")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if a.Min != -10 || a.Max != 10 || a.Count != 500 {
		t.Errorf("parsed %+v", a)
	}
	if a.String() != "-10:10:500" {
		t.Errorf("String() = %q", a.String())
	}

	for _, bad := range []string{"", "1:2", "a:2:3", "0:1:x", "0:1:1"} {
		if _, err := ParseAxis(bad); !errors.Is(err, quantum.ErrInvalidArgument) {
			t.Errorf("ParseAxis(%q) = %v, want ErrInvalidArgument", bad, err)
		}
	}
}

func TestNew_Rejects(t *testing.T) {
	ok := Axis{Min: 0, Max: 1, Count: 3}
	cases := [][]Axis{
		nil,
		{ok, ok, ok, ok},
		{ok, {Min: 0, Max: 1, Count: 1}},
	}
	for _, axes := range cases {
		if _, err := New(axes...); !errors.Is(err, quantum.ErrInvalidArgument) {
			t.Errorf("New(%v) = %v, want ErrInvalidArgument", axes, err)
		}
	}
}

func TestGrid_FlatteningIsRowMajor(t *testing.T) {
	g, err := New(
		Axis{Min: 0, Max: 1, Count: 2},
		Axis{Min: 0, Max: 2, Count: 3},
		Axis{Min: 0, Max: 3, Count: 4},
	)
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 24 {
		t.Fatalf("size = %d, want 24", g.Size())
	}
	strides := g.Strides()
	if strides[0] != 12 || strides[1] != 4 || strides[2] != 1 {
		t.Errorf("strides = %v, want [12 4 1]", strides)
	}

	idx := make([]int, 3)
	flat := 0
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 4; k++ {
				if got := g.Index([]int{i, j, k}); got != flat {
					t.Fatalf("Index(%d,%d,%d) = %d, want %d", i, j, k, got, flat)
				}
				u := g.Unflatten(flat, idx)
				if u[0] != i || u[1] != j || u[2] != k {
					t.Fatalf("Unflatten(%d) = %v", flat, u)
				}
				flat++
			}
		}
	}
}

func TestSample_UsesGridOrder(t *testing.T) {
	g, _ := New(Axis{Min: 0, Max: 1, Count: 2}, Axis{Min: 10, Max: 30, Count: 3})
	v := Sample(g, quantum.PotentialFunc(func(r []float64) float64 {
		return 100*r[0] + r[1]
	}))
	want := []float64{10, 20, 30, 110, 120, 130}
	for i := range want {
		if v[i] != want[i] {
			t.Errorf("v[%d] = %v, want %v", i, v[i], want[i])
		}
	}
}

func TestGrid_LineAndSlice(t *testing.T) {
	g, _ := New(Axis{Min: 0, Max: 1, Count: 2}, Axis{Min: 0, Max: 2, Count: 3})
	vec := []float64{0, 1, 2, 3, 4, 5}

	row, err := g.Line(vec, 1, []int{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if row[0] != 3 || row[1] != 4 || row[2] != 5 {
		t.Errorf("line along axis 1 = %v", row)
	}

	col, err := g.Line(vec, 0, []int{0, 2})
	if err != nil {
		t.Fatal(err)
	}
	if col[0] != 2 || col[1] != 5 {
		t.Errorf("line along axis 0 = %v", col)
	}

	plane, err := g.Slice2D(vec, 0, 1, []int{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if plane[1][2] != 5 || plane[0][1] != 1 {
		t.Errorf("slice = %v", plane)
	}

	if _, err := g.Line(vec[:3], 0, []int{0, 0}); !errors.Is(err, quantum.ErrDimensionMismatch) {
		t.Errorf("short vector: %v", err)
	}
}
