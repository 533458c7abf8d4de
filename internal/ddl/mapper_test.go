package ddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/schemasync/internal/schema"
)

func TestColumnType(t *testing.T) {
	tests := []struct {
		kind schema.Kind
		want string
	}{
		{schema.KindInteger, "INTEGER"},
		{schema.KindFloat, "REAL"},
		{schema.KindDecimal, "REAL"},
		{schema.KindString, "TEXT"},
		{schema.KindText, "TEXT"},
		{schema.KindDateTime, "TEXT"},
		{schema.KindEnum, "TEXT"},
		{schema.KindBlob, "BLOB"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, err := ColumnType(schema.Field{ID: "c", Kind: tt.kind})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnTypeUnmapped(t *testing.T) {
	for _, k := range []schema.Kind{schema.KindInvalid, schema.KindForeignKey, schema.KindUniqueIndex, schema.Kind(77)} {
		_, err := ColumnType(schema.Field{ID: "c", Kind: k})
		assert.ErrorIs(t, err, schema.ErrUnmappedKind, k.String())
	}
}
