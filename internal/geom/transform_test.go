package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func assertPointInDelta(t *testing.T, want, got Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, tol, "y of %v", got)
}

func TestPointArithmetic(t *testing.T) {
	a := Pt(1, 3)
	b := Pt(5, 1)

	assert.Equal(t, Pt(6, 4), a.Add(b))
	assert.Equal(t, Pt(-4, 2), a.Sub(b))
	assert.Equal(t, Pt(2, 6), a.Mul(2))
	assert.Equal(t, Pt(0.5, 1.5), a.Div(2))
	assert.Equal(t, "(1, 3)", a.String())
}

func TestCombineOrder(t *testing.T) {
	seq := Combine(RotateAbout(Pt(1, 2), 3), Translate(Pt(4, 5)))
	require.Len(t, seq, 2)

	tr, ok := seq[0].(Translation)
	require.True(t, ok, "element 0 is %T", seq[0])
	assert.Equal(t, Pt(4, 5), tr.Offset)

	rot, ok := seq[1].(Rotation)
	require.True(t, ok, "element 1 is %T", seq[1])
	assert.Equal(t, Pt(1, 2), rot.Pivot)
	assert.Equal(t, 3.0, rot.Angle)

	seq = seq.Then(ScaleX(6))
	require.Len(t, seq, 3)
	sc, ok := seq[0].(Scaling)
	require.True(t, ok, "element 0 is %T", seq[0])
	assert.Equal(t, Pt(6, 1), sc.Factor)
	assert.IsType(t, Translation{}, seq[1])
	assert.IsType(t, Rotation{}, seq[2])
}

func TestThenDoesNotAlias(t *testing.T) {
	base := make(Sequence, 1, 8)
	base[0] = Rotate(10)

	a := base.Then(Translate(Pt(1, 0)))
	b := base.Then(ScaleUniform(2))

	assert.IsType(t, Translation{}, a[0])
	assert.IsType(t, Scaling{}, b[0])
	assert.Len(t, base, 1)
}

func TestSequenceApplyMatchesMatrix(t *testing.T) {
	tests := []struct {
		name string
		seq  Sequence
		in   Point
		want Point
	}{
		{
			name: "rotate then translate origin",
			seq:  Combine(Rotate(90), Translate(Pt(1, 0))),
			in:   Pt(0, 0),
			want: Pt(1, 0),
		},
		{
			name: "rotate then translate unit x",
			seq:  Combine(Rotate(90), Translate(Pt(1, 0))),
			in:   Pt(1, 0),
			want: Pt(1, 1),
		},
		{
			name: "translate then rotate unit x",
			seq:  Combine(Translate(Pt(1, 0)), Rotate(90)),
			in:   Pt(1, 0),
			want: Pt(0, 2),
		},
		{
			name: "scale rotate translate",
			seq:  Combine(ScaleUniform(2), Rotate(90)).Then(Translate(Pt(1, 1))),
			in:   Pt(1, 0),
			want: Pt(1, 3),
		},
		{
			name: "rotate about pivot",
			seq:  Sequence{RotateAbout(Pt(1, 1), 180)},
			in:   Pt(2, 1),
			want: Pt(0, 1),
		},
		{
			name: "canvas flip",
			seq:  Combine(ScaleY(-1), Translate(Pt(0, 100))),
			in:   Pt(10, 30),
			want: Pt(10, 70),
		},
		{
			name: "identity",
			seq:  IdentitySequence,
			in:   Pt(3, 4),
			want: Pt(3, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPointInDelta(t, tt.want, tt.seq.Apply(tt.in))
			assertPointInDelta(t, tt.want, tt.seq.Matrix().Apply(tt.in))
		})
	}
}

func TestSequenceIsIdentity(t *testing.T) {
	assert.True(t, Sequence(nil).IsIdentity())
	assert.True(t, IdentitySequence.IsIdentity())
	assert.True(t, Sequence{Identity{}, Identity{}}.IsIdentity())
	assert.False(t, Sequence{Identity{}, Translate(Pt(0, 0))}.IsIdentity())
}
