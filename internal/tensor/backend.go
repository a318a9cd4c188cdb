package tensor

// Backend defines the numeric-engine interface the graph layer delegates to.
// Every intercepted graph operation runs on RawTensors through a Backend;
// the graph layer itself never touches element data.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor
	Pow(a, b *RawTensor) *RawTensor

	// Scalar variants (element-wise against a scalar operand).
	AddScalar(x *RawTensor, scalar float64) *RawTensor
	SubScalar(x *RawTensor, scalar float64) *RawTensor
	MulScalar(x *RawTensor, scalar float64) *RawTensor
	DivScalar(x *RawTensor, scalar float64) *RawTensor

	// Element-wise unary operations.
	Neg(x *RawTensor) *RawTensor
	Abs(x *RawTensor) *RawTensor
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor

	// Comparisons (element-wise with broadcasting, Bool results).
	Eq(a, b *RawTensor) *RawTensor
	Ne(a, b *RawTensor) *RawTensor
	Gt(a, b *RawTensor) *RawTensor
	Ge(a, b *RawTensor) *RawTensor
	Lt(a, b *RawTensor) *RawTensor
	Le(a, b *RawTensor) *RawTensor

	// Matrix multiplication (2D operands).
	MatMul(a, b *RawTensor) *RawTensor

	// Reductions.
	Sum(x *RawTensor) *RawTensor                            // total sum, scalar result
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor  // sum along dimension
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor // mean along dimension

	// Shape and indexing operations.
	Reshape(x *RawTensor, newShape Shape) *RawTensor
	Index(x *RawTensor, dim, i int) *RawTensor // select one index along a dimension

	// Metadata.
	Name() string
	Device() Device
}
