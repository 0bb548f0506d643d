package dataset

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	escape  = `'`
	nullStr = "NULL"
)

// formatCell renders a frame value the way it would appear in a sql literal.
func formatCell(i any) string {
	switch v := i.(type) {
	case nil:
		return nullStr
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float64, float32:
		return strconv.FormatFloat(toFloat(v), 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return escape + strings.ReplaceAll(v, escape, "\\"+escape) + escape
	case []byte:
		if s := string(v); stringIsPrintable(s) {
			return escape + strings.ReplaceAll(s, escape, "\\"+escape) + escape
		}
		return escape + "<binary>" + escape
	case time.Time:
		if v.IsZero() {
			return escape + "0000-00-00 00:00:00" + escape
		}
		return escape + v.Format("2006-01-02 15:04:05.999") + escape
	case driver.Valuer:
		r, err := v.Value()
		if err != nil {
			return nullStr
		}
		return formatCell(r)
	case fmt.Stringer:
		return escape + strings.ReplaceAll(v.String(), escape, "\\"+escape) + escape
	default:
		return escape + strings.ReplaceAll(fmt.Sprint(v), escape, "\\"+escape) + escape
	}
}

func toFloat(v any) float64 {
	switch f := v.(type) {
	case float32:
		return float64(f)
	case float64:
		return f
	}
	return 0
}

func stringIsPrintable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// normalizeCell converts raw driver values into int64, float64, string,
// bool, time.Time or nil. Text-protocol drivers hand numbers back as
// bytes, so the column's database type decides how bytes are parsed.
func normalizeCell(v any, databaseType string) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return parseText(string(val), databaseType)
	case string:
		return parseText(val, databaseType)
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}

func parseText(s string, databaseType string) any {
	switch columnKind(databaseType) {
	case kindInt:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case kindFloat:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

type kind int

const (
	kindText kind = iota
	kindInt
	kindFloat
	kindTime
)

func columnKind(databaseType string) kind {
	t := strings.ToLower(databaseType)
	switch {
	case strings.Contains(t, "char") || strings.Contains(t, "text"):
		return kindText
	case strings.Contains(t, "int") && !strings.Contains(t, "point"):
		return kindInt
	case strings.Contains(t, "float") || strings.Contains(t, "double") || strings.Contains(t, "decimal") ||
		strings.Contains(t, "numeric") || strings.Contains(t, "real"):
		return kindFloat
	case strings.Contains(t, "time") || strings.Contains(t, "date"):
		return kindTime
	}
	return kindText
}
