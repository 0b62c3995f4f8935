package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkerr/ergols/template"
)

func TestTypeCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want byte
	}{
		{"Boolean", 0x01},
		{"Int", 0x04},
		{"Long", 0x05},
		{"SigmaProp", 0x08},
		{"Coll[Byte]", 0x0C + 0x02},
		{"Coll[Int]", 0x0C + 0x04},
		{"Coll[SigmaProp]", 0x0C + 0x08},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()

			got, err := template.TypeCode(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeCode_Rejects(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{"String", "Coll[String]", "Coll[Coll[Byte]]", "Option[Int]", ""} {
		tag := tag
		t.Run(tag, func(t *testing.T) {
			t.Parallel()

			_, err := template.TypeCode(tag)
			assert.Error(t, err)
		})
	}
}

func TestSerializeValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value template.Value
		want  []byte
	}{
		{"boolean true", template.BoolValue(true), []byte{0x01}},
		{"boolean false", template.BoolValue(false), []byte{0x00}},
		{"small int zigzags", template.IntValue(1), []byte{0x02}},
		{"negative int zigzags", template.IntValue(-1), []byte{0x01}},
		{"multi byte varint", template.LongValue(1000000), []byte{0x80, 0x89, 0x7a}},
		{"bytes length prefixed", template.BytesValue([]byte{0xde, 0xad}), []byte{0x02, 0xde, 0xad}},
		{"trivial sigma prop", template.PropValue(true), []byte{0x01}},
		{"sigma prop collection", template.PropCollValue(true, false, true), []byte{0x03, 0x01, 0x00, 0x01}},
		{"int collection", template.Value{Type: "Coll[Int]", Nums: []int64{1, 2}}, []byte{0x02, 0x02, 0x04}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := template.SerializeValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerializeValue_IntRange(t *testing.T) {
	t.Parallel()

	_, err := template.SerializeValue(template.Value{Type: "Int", Num: 1 << 40})
	assert.Error(t, err)

	_, err = template.SerializeValue(template.Value{Type: "Long", Num: 1 << 40})
	assert.NoError(t, err)
}

func TestSerializeValue_UnknownType(t *testing.T) {
	t.Parallel()

	_, err := template.SerializeValue(template.Value{Type: "Mystery"})
	assert.Error(t, err)
}
