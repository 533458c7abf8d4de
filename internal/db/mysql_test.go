package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnumValues(t *testing.T) {
	tests := []struct {
		columnType string
		want       []string
		wantErr    bool
	}{
		{columnType: "enum('active','inactive','banned')", want: []string{"active", "inactive", "banned"}},
		{columnType: "enum('a')", want: []string{"a"}},
		{columnType: "varchar(255)", want: nil},
		{columnType: "enum(", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.columnType, func(t *testing.T) {
			got, err := parseEnumValues(tt.columnType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDatabaseName(t *testing.T) {
	name, err := ParseDatabaseName("root:secret@tcp(localhost:3306)/shop?parseTime=true")
	require.NoError(t, err)
	assert.Equal(t, "shop", name)

	_, err = ParseDatabaseName("root:secret@tcp(localhost:3306)/")
	assert.Error(t, err)

	_, err = ParseDatabaseName("not a dsn")
	assert.Error(t, err)
}
