package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStruct(t *testing.T) {
	f := &Frame{
		Table: "user",
		Columns: []Column{
			{Name: "id", DatabaseType: "UNSIGNED BIGINT"},
			{Name: "user_name", DatabaseType: "VARCHAR"},
			{Name: "age", DatabaseType: "TINYINT", Nullable: true},
			{Name: "balance", DatabaseType: "DECIMAL"},
			{Name: "created_at", DatabaseType: "DATETIME"},
		},
	}

	src, err := GenerateStruct("user", f)
	require.NoError(t, err)

	assert.Contains(t, src, "type User struct {")
	assert.Regexp(t, "Id +uint64 +`json:\"id\" db:\"id\"`", src)
	assert.Regexp(t, "UserName +string", src)
	assert.Regexp(t, `Age +\*int8`, src)
	assert.Regexp(t, "Balance +float64", src)
	assert.Regexp(t, `CreatedAt +time\.Time`, src)

	_, err = GenerateStruct("empty", &Frame{})
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestGenerateStruct_FromTable(t *testing.T) {
	client := newCountingClient(t, openSqlite(t))
	l, _ := newTestLoader(t, client, NewCache(), testOptions(func(o *Options) {
		o.Tables = []string{"users"}
		o.Conditions = map[string]string{"users": "1 = 0"}
	}))
	require.NoError(t, l.ReadData(context.Background()))

	f, err := l.Frame("users")
	require.NoError(t, err)
	assert.Equal(t, 0, f.Len())

	src, err := GenerateStruct("users", f)
	require.NoError(t, err)
	assert.Contains(t, src, "type Users struct {")
	assert.Regexp(t, `UserId +\*?int `, src)
	assert.Regexp(t, `Name +\*?string `, src)
}

func TestGetStructFieldTypeStringByDBType(t *testing.T) {
	tests := map[string]string{
		"INT":              "int",
		"UNSIGNED INT":     "uint",
		"TINYINT":          "int8",
		"UNSIGNED TINYINT": "uint8",
		"BIGINT":           "int64",
		"DOUBLE":           "float64",
		"TIMESTAMP":        "time.Time",
		"DATE":             "time.Time",
		"TEXT":             "string",
		"BOOLEAN":          "bool",
		"JSON":             "string",
		"":                 "string",
	}
	for in, want := range tests {
		assert.Equal(t, want, getStructFieldTypeStringByDBType(in), in)
	}
}
