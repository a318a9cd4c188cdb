package cpu

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/storch/internal/tensor"
)

func fromF64(t *testing.T, data []float64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromSlice(data, shape, tensor.CPU)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	return raw
}

func fromF32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromSlice(data, shape, tensor.CPU)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	return raw
}

func wantF64(t *testing.T, got *tensor.RawTensor, want []float64) {
	t.Helper()
	data := got.AsFloat64()
	if len(data) != len(want) {
		t.Fatalf("result has %d elements, want %d", len(data), len(want))
	}
	for i := range want {
		if math.Abs(data[i]-want[i]) > 1e-9 {
			t.Errorf("result[%d] = %v, want %v", i, data[i], want[i])
		}
	}
}

// Element-wise Tests

func TestAddSameShape(t *testing.T) {
	cpu := New()
	a := fromF64(t, []float64{1, 2, 3}, tensor.Shape{3})
	b := fromF64(t, []float64{10, 20, 30}, tensor.Shape{3})

	wantF64(t, cpu.Add(a, b), []float64{11, 22, 33})

	// Operands are untouched.
	wantF64(t, a, []float64{1, 2, 3})
}

func TestAddBroadcast(t *testing.T) {
	cpu := New()
	a := fromF64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	row := fromF64(t, []float64{10, 20, 30}, tensor.Shape{3})
	col := fromF64(t, []float64{100, 200}, tensor.Shape{2, 1})

	wantF64(t, cpu.Add(a, row), []float64{11, 22, 33, 14, 25, 36})
	wantF64(t, cpu.Add(a, col), []float64{101, 102, 103, 204, 205, 206})

	out := cpu.Add(col, row)
	if !out.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("broadcast shape = %v, want [2 3]", out.Shape())
	}
	wantF64(t, out, []float64{110, 120, 130, 210, 220, 230})
}

func TestSubMulDiv(t *testing.T) {
	cpu := New()
	a := fromF64(t, []float64{10, 20, 30}, tensor.Shape{3})
	b := fromF64(t, []float64{2, 4, 5}, tensor.Shape{3})

	wantF64(t, cpu.Sub(a, b), []float64{8, 16, 25})
	wantF64(t, cpu.Mul(a, b), []float64{20, 80, 150})
	wantF64(t, cpu.Div(a, b), []float64{5, 5, 6})
}

func TestPow(t *testing.T) {
	cpu := New()
	a := fromF64(t, []float64{2, 3, 4}, tensor.Shape{3})
	b := fromF64(t, []float64{2}, tensor.Shape{1})

	wantF64(t, cpu.Pow(a, b), []float64{4, 9, 16})
}

func TestFloat32Kernels(t *testing.T) {
	cpu := New()
	a := fromF32(t, []float32{1, 2}, tensor.Shape{2})
	b := fromF32(t, []float32{3, 4}, tensor.Shape{2})

	sum := cpu.Add(a, b)
	if sum.DType() != tensor.Float32 {
		t.Fatalf("dtype = %v, want Float32", sum.DType())
	}
	got := sum.AsFloat32()
	if got[0] != 4 || got[1] != 6 {
		t.Errorf("float32 add = %v, want [4 6]", got)
	}

	scaled := cpu.MulScalar(a, 2).AsFloat32()
	if scaled[0] != 2 || scaled[1] != 4 {
		t.Errorf("float32 mul scalar = %v, want [2 4]", scaled)
	}
}

func TestScalarOps(t *testing.T) {
	cpu := New()
	x := fromF64(t, []float64{1, 2, 4}, tensor.Shape{3})

	wantF64(t, cpu.AddScalar(x, 1), []float64{2, 3, 5})
	wantF64(t, cpu.SubScalar(x, 1), []float64{0, 1, 3})
	wantF64(t, cpu.MulScalar(x, 3), []float64{3, 6, 12})
	wantF64(t, cpu.DivScalar(x, 2), []float64{0.5, 1, 2})
	wantF64(t, cpu.Neg(x), []float64{-1, -2, -4})
}

func TestUnaryOps(t *testing.T) {
	cpu := New()

	wantF64(t, cpu.Abs(fromF64(t, []float64{-3, 0, 3}, tensor.Shape{3})), []float64{3, 0, 3})
	wantF64(t, cpu.Sqrt(fromF64(t, []float64{4, 9}, tensor.Shape{2})), []float64{2, 3})
	wantF64(t, cpu.Exp(fromF64(t, []float64{0, 1}, tensor.Shape{2})), []float64{1, math.E})
	wantF64(t, cpu.Log(fromF64(t, []float64{1, math.E}, tensor.Shape{2})), []float64{0, 1})
}

func TestMixedDTypesPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Add with mixed dtypes should panic")
		}
	}()
	cpu := New()
	cpu.Add(fromF64(t, []float64{1}, tensor.Shape{1}), fromF32(t, []float32{1}, tensor.Shape{1}))
}

// Comparison Tests

func TestComparisons(t *testing.T) {
	cpu := New()
	a := fromF64(t, []float64{1, 2, 3}, tensor.Shape{3})
	b := fromF64(t, []float64{2, 2, 2}, tensor.Shape{3})

	tests := []struct {
		name string
		got  *tensor.RawTensor
		want []bool
	}{
		{"eq", cpu.Eq(a, b), []bool{false, true, false}},
		{"ne", cpu.Ne(a, b), []bool{true, false, true}},
		{"gt", cpu.Gt(a, b), []bool{false, false, true}},
		{"ge", cpu.Ge(a, b), []bool{false, true, true}},
		{"lt", cpu.Lt(a, b), []bool{true, false, false}},
		{"le", cpu.Le(a, b), []bool{true, true, false}},
	}

	for _, tt := range tests {
		if tt.got.DType() != tensor.Bool {
			t.Errorf("%s: dtype = %v, want Bool", tt.name, tt.got.DType())
			continue
		}
		data := tt.got.AsBool()
		for i := range tt.want {
			if data[i] != tt.want[i] {
				t.Errorf("%s[%d] = %v, want %v", tt.name, i, data[i], tt.want[i])
			}
		}
	}
}

func TestComparisonBroadcast(t *testing.T) {
	cpu := New()
	a := fromF64(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	s := fromF64(t, []float64{2.5}, tensor.Shape{1})

	out := cpu.Gt(a, s)
	if !out.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("broadcast compare shape = %v, want [2 2]", out.Shape())
	}
	want := []bool{false, false, true, true}
	for i, v := range out.AsBool() {
		if v != want[i] {
			t.Errorf("gt[%d] = %v, want %v", i, v, want[i])
		}
	}
}

// Reduction Tests

func TestSum(t *testing.T) {
	cpu := New()
	x := fromF64(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})

	out := cpu.Sum(x)
	if out.Item() != 10 {
		t.Errorf("Sum = %v, want 10", out.Item())
	}
}

func TestSumDim(t *testing.T) {
	cpu := New()
	x := fromF64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	rows := cpu.SumDim(x, 1, false)
	if !rows.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("SumDim(1) shape = %v, want [2]", rows.Shape())
	}
	wantF64(t, rows, []float64{6, 15})

	cols := cpu.SumDim(x, 0, true)
	if !cols.Shape().Equal(tensor.Shape{1, 3}) {
		t.Fatalf("SumDim(0, keep) shape = %v, want [1 3]", cols.Shape())
	}
	wantF64(t, cols, []float64{5, 7, 9})
}

func TestSumDimNegativeIndex(t *testing.T) {
	cpu := New()
	x := fromF64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	wantF64(t, cpu.SumDim(x, -1, false), []float64{6, 15})
}

func TestMeanDim(t *testing.T) {
	cpu := New()
	x := fromF64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	wantF64(t, cpu.MeanDim(x, 0, false), []float64{2.5, 3.5, 4.5})
	wantF64(t, cpu.MeanDim(x, 1, true), []float64{2, 5})
}

func TestSumDimInnerDims(t *testing.T) {
	cpu := New()
	x := fromF64(t, []float64{
		1, 2,
		3, 4,

		5, 6,
		7, 8,
	}, tensor.Shape{2, 2, 2})

	mid := cpu.SumDim(x, 1, false)
	if !mid.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("SumDim(1) shape = %v, want [2 2]", mid.Shape())
	}
	wantF64(t, mid, []float64{4, 6, 12, 14})
}

func TestMeanDimAgainstStat(t *testing.T) {
	cpu := New()
	rng := rand.New(rand.NewSource(1))

	const rows, cols = 7, 5
	raw := make([]float64, rows*cols)
	for i := range raw {
		raw[i] = rng.NormFloat64()
	}
	x := fromF64(t, raw, tensor.Shape{rows, cols})

	got := cpu.MeanDim(x, 1, false).AsFloat64()
	for r := 0; r < rows; r++ {
		want := stat.Mean(raw[r*cols:(r+1)*cols], nil)
		if math.Abs(got[r]-want) > 1e-12 {
			t.Errorf("MeanDim row %d = %v, want %v", r, got[r], want)
		}
	}
}

// MatMul Tests

func TestMatMulFloat64(t *testing.T) {
	cpu := New()
	a := fromF64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := fromF64(t, []float64{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	out := cpu.MatMul(a, b)
	if !out.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("MatMul shape = %v, want [2 2]", out.Shape())
	}
	wantF64(t, out, []float64{58, 64, 139, 154})
}

func TestMatMulFloat32(t *testing.T) {
	cpu := New()
	a := fromF32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := fromF32(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	out := cpu.MatMul(a, b).AsFloat32()
	want := []float32{19, 22, 43, 50}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("MatMul[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestMatMulIncompatiblePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MatMul with incompatible shapes should panic")
		}
	}()
	cpu := New()
	cpu.MatMul(fromF64(t, []float64{1, 2}, tensor.Shape{1, 2}), fromF64(t, []float64{1, 2, 3}, tensor.Shape{1, 3}))
}

// Shape Tests

func TestReshape(t *testing.T) {
	cpu := New()
	x := fromF64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := cpu.Reshape(x, tensor.Shape{3, 2})
	if !out.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("Reshape shape = %v, want [3 2]", out.Shape())
	}
	wantF64(t, out, []float64{1, 2, 3, 4, 5, 6})
}

func TestIndex(t *testing.T) {
	cpu := New()
	x := fromF64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	row := cpu.Index(x, 0, 1)
	if !row.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("Index(0, 1) shape = %v, want [3]", row.Shape())
	}
	wantF64(t, row, []float64{4, 5, 6})

	col := cpu.Index(x, 1, 2)
	if !col.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("Index(1, 2) shape = %v, want [2]", col.Shape())
	}
	wantF64(t, col, []float64{3, 6})
}
