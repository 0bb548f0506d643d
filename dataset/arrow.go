package dataset

import (
	"fmt"
	"io"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ArrowSchema infers one nullable field per column from the column's
// non-null values: int64, float64, bool, timestamp or string.
func (f *Frame) ArrowSchema() *arrow.Schema {
	fields := make([]arrow.Field, len(f.Columns))
	for k, c := range f.Columns {
		fields[k] = arrow.Field{Name: c.Name, Type: f.inferArrowType(k), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

func (f *Frame) inferArrowType(col int) arrow.DataType {
	var n, ints, floats, bools, times int
	for _, row := range f.Rows {
		switch row[col].(type) {
		case nil:
			continue
		case int64:
			ints++
		case float64:
			floats++
		case bool:
			bools++
		case time.Time:
			times++
		}
		n++
	}

	switch {
	case n == 0:
		return arrow.BinaryTypes.String
	case ints == n:
		return arrow.PrimitiveTypes.Int64
	case ints+floats == n:
		return arrow.PrimitiveTypes.Float64
	case bools == n:
		return arrow.FixedWidthTypes.Boolean
	case times == n:
		return arrow.FixedWidthTypes.Timestamp_us
	}
	return arrow.BinaryTypes.String
}

// ArrowRecord builds a single record batch holding every row. The caller
// releases it.
func (f *Frame) ArrowRecord(mem memory.Allocator) (arrow.RecordBatch, error) {
	if len(f.Columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResult, f.Table)
	}
	schema := f.ArrowSchema()

	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	for k := range f.Columns {
		fb := builder.Field(k)
		for _, row := range f.Rows {
			appendArrowValue(fb, row[k])
		}
	}
	return builder.NewRecordBatch(), nil
}

func appendArrowValue(fb array.Builder, value any) {
	if value == nil {
		fb.AppendNull()
		return
	}
	switch b := fb.(type) {
	case *array.Int64Builder:
		b.Append(value.(int64))
	case *array.Float64Builder:
		switch v := value.(type) {
		case int64:
			b.Append(float64(v))
		case float64:
			b.Append(v)
		}
	case *array.BooleanBuilder:
		b.Append(value.(bool))
	case *array.TimestampBuilder:
		b.Append(arrow.Timestamp(value.(time.Time).UnixMicro()))
	case *array.StringBuilder:
		b.Append(cellString(value))
	default:
		fb.AppendNull()
	}
}

func cellString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.Format(time.RFC3339Nano)
	}
	return fmt.Sprint(v)
}

// WriteArrow writes f to w as an Arrow IPC stream.
func WriteArrow(w io.Writer, f *Frame) error {
	rec, err := f.ArrowRecord(memory.DefaultAllocator)
	if err != nil {
		return err
	}
	defer rec.Release()

	writer := ipc.NewWriter(w, ipc.WithSchema(rec.Schema()))
	if err := writer.Write(rec); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write arrow record %s: %w", f.Table, err)
	}
	return writer.Close()
}
