// folds_generator writes the per-dtype fold tables (maxFolds, minFolds) of the minmax package.
//
// It is run with go generate from the root of the module.
package main

import (
	"bytes"
	"flag"
	"go/format"
	"log"
	"os"
	"text/template"
)

var flagOutput = flag.String("output", "gen_folds.go", "File where to write the generated fold tables.")

// dtypeInfo describes a dtype supported by the folds.
type dtypeInfo struct {
	// DType is the name of the constant in the dtypes package.
	DType string

	// GoType for the dtype.
	GoType string

	// Half is set for the 16-bits floats, which are compared through their float32 value.
	Half bool
}

var supportedDTypes = []dtypeInfo{
	{"Int8", "int8", false},
	{"Int16", "int16", false},
	{"Int32", "int32", false},
	{"Int64", "int64", false},
	{"Uint8", "uint8", false},
	{"Uint16", "uint16", false},
	{"Uint32", "uint32", false},
	{"Uint64", "uint64", false},
	{"Float32", "float32", false},
	{"Float64", "float64", false},
	{"Float16", "float16.Float16", true},
	{"BFloat16", "bfloat16.BFloat16", true},
}

// foldOp is one of the binary operations folded by the minmax operators.
type foldOp struct {
	// Name used in the table variable, e.g. "max" for maxFolds.
	Name string

	// Loop is the prefix of the accumulation loops: e.g. "max" for maxInto and halfMaxInto.
	Loop string
}

var foldOps = []foldOp{
	{"max", "Max"},
	{"min", "Min"},
}

const foldsTemplate = `/***** File generated by ./internal/cmd/folds_generator. Don't edit it directly. *****/

package minmax

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"
)
{{range $op := .Ops}}
var {{$op.Name}}Folds = foldTable{
{{- range $.DTypes}}
	dtypes.{{.DType}}: typedFold({{if .Half}}half{{$op.Loop}}Into{{else}}{{$op.Name}}Into{{end}}[{{.GoType}}]),
{{- end}}
}
{{end}}`

func main() {
	flag.Parse()
	tmpl := template.Must(template.New("folds").Parse(foldsTemplate))
	var buf bytes.Buffer
	must(tmpl.Execute(&buf, struct {
		Ops    []foldOp
		DTypes []dtypeInfo
	}{foldOps, supportedDTypes}))
	contents := must1(format.Source(buf.Bytes()))
	must(os.WriteFile(*flagOutput, contents, 0644))
	log.Printf("generated %s", *flagOutput)
}

func must(err error) {
	if err != nil {
		log.Fatalf("Failed: %+v", err)
	}
}

func must1[T any](value T, err error) T {
	must(err)
	return value
}
