package dataset

import (
	"fmt"
	"go/format"
	"strings"
	"unicode"

	"github.com/gobeam/stringy"
)

// GenerateStruct returns Go source declaring a struct named name with one
// field per column of f. Nullable columns become pointer fields.
func GenerateStruct(name string, f *Frame) (string, error) {
	if len(f.Columns) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyResult, f.Table)
	}

	var structLines []string
	for _, v := range f.Columns {
		structFieldName := exportedName(v.Name)
		structFieldType := getStructFieldTypeStringByDBType(v.DatabaseType)
		if v.Nullable {
			structFieldType = "*" + structFieldType
		}

		structFieldTags := []string{
			fmt.Sprintf("json:\"%s\"", v.Name),
			fmt.Sprintf("db:\"%s\"", v.Name),
		}
		line := structFieldName + " " + structFieldType + " `" + strings.Join(structFieldTags, " ") + "`"
		structLines = append(structLines, line)
	}

	src := "type " + exportedName(name) + " struct {\n" + strings.Join(structLines, "\n") + "\n}\n"
	ret, err := format.Source([]byte(src))
	if err != nil {
		return "", err
	}
	return string(ret), nil
}

func exportedName(s string) string {
	camel := stringy.New(s).CamelCase()
	if camel == "" {
		return "Field"
	}
	r := []rune(camel)
	if !unicode.IsLetter(r[0]) {
		return "Col" + camel
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func getStructFieldTypeStringByDBType(dbType string) string {
	dbType = strings.ToLower(dbType)
	unsigned := strings.Contains(dbType, "unsigned")

	switch columnKind(dbType) {
	case kindInt:
		switch {
		case strings.Contains(dbType, "tinyint") && unsigned:
			return "uint8"
		case strings.Contains(dbType, "tinyint"):
			return "int8"
		case strings.Contains(dbType, "bigint") && unsigned:
			return "uint64"
		case strings.Contains(dbType, "bigint"):
			return "int64"
		case unsigned:
			return "uint"
		}
		return "int"
	case kindFloat:
		return "float64"
	case kindTime:
		return "time.Time"
	}
	if strings.Contains(dbType, "bool") {
		return "bool"
	}
	return "string"
}
