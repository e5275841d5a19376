package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		in   string
		want Field
	}{
		{"name", FieldName},
		{"Category", FieldCategory},
		{" PRIORITY ", FieldPriority},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseField(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}

	_, err := ParseField("weight")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func mustParse(t *testing.T, s string) Field {
	t.Helper()
	f, err := ParseField(s)
	require.NoError(t, err)
	return f
}

func TestComparatorsAreByteWise(t *testing.T) {
	// Uppercase sorts before lowercase in byte order.
	assert.Negative(t, CompareName(Record{Name: "Zeta"}, Record{Name: "alpha"}))
	assert.Positive(t, CompareCategory(Record{Category: "b"}, Record{Category: "B"}))
	assert.Zero(t, CompareName(Record{Name: "Core"}, Record{Name: "Core", Priority: 9}))
}

func TestComparePriority(t *testing.T) {
	lo := Record{Priority: 2}
	hi := Record{Priority: 9}
	assert.Equal(t, -1, ComparePriority(lo, hi))
	assert.Equal(t, 1, ComparePriority(hi, lo))
	assert.Equal(t, 0, ComparePriority(lo, lo))
}

func TestComparatorFor(t *testing.T) {
	a := Record{Name: "a", Category: "z", Priority: 5}
	b := Record{Name: "b", Category: "y", Priority: 5}

	assert.Negative(t, ComparatorFor(FieldName)(a, b))
	assert.Positive(t, ComparatorFor(FieldCategory)(a, b))
	assert.Zero(t, ComparatorFor(FieldPriority)(a, b))
	assert.Panics(t, func() { ComparatorFor(Field(42)) })
}

func TestClone(t *testing.T) {
	orig := []Record{{Name: "a"}, {Name: "b"}}
	cp := Clone(orig)
	cp[0].Name = "changed"
	assert.Equal(t, "a", orig[0].Name)

	empty := Clone(nil)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)
}
