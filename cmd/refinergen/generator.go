package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
)

const (
	builderSquirrel = "squirrel"
	builderGorm     = "gorm"
)

type options struct {
	Name    string
	Package string
	Dir     string
	Builder string
}

func (o options) validate() error {
	if !token.IsIdentifier(o.Name) || !unicode.IsUpper([]rune(o.Name)[0]) {
		return fmt.Errorf("name %q must be an exported Go identifier", o.Name)
	}
	if !token.IsIdentifier(o.Package) {
		return fmt.Errorf("package %q is not a valid Go identifier", o.Package)
	}
	if o.Builder != builderSquirrel && o.Builder != builderGorm {
		return fmt.Errorf("builder must be %q or %q", builderSquirrel, builderGorm)
	}
	return nil
}

var refinerTemplate = template.Must(template.New("refiner").Parse(`package {{.Package}}

import (
	"refiner/pkg/refiner"
	"refiner/pkg/refiner/{{.Adapter}}"
)

// {{.Name}}Refiner declares how {{.Name}} lists may be searched and sorted.
type {{.Name}}Refiner struct{}

func ({{.Name}}Refiner) Definitions() []*{{.Adapter}}.Definition {
	return []*{{.Adapter}}.Definition{
		{{.Adapter}}.Define("id").SearchIn(),
		{{.Adapter}}.Define("name").SearchLike(refiner.LikeBoth).Sort(true),
	}
}

func ({{.Name}}Refiner) DefaultSorts() []refiner.SortParam {
	return []refiner.SortParam{{"{{"}}Name: "name", Direction: "asc"{{"}}"}}
}
`))

// generate writes <snake name>_refiner.go into opts.Dir and returns its path.
// Existing files are never overwritten.
func generate(opts options) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	adapter := "sqlbuilder"
	if opts.Builder == builderGorm {
		adapter = "gormbuilder"
	}

	var buf bytes.Buffer
	err := refinerTemplate.Execute(&buf, struct {
		options
		Adapter string
	}{opts, adapter})
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("format source: %w", err)
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	path := filepath.Join(opts.Dir, snakeCase(opts.Name)+"_refiner.go")

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("%s already exists", path)
	}
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// snakeCase converts "OrderLine" and "HTTPLog" to "order_line" and "http_log".
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
