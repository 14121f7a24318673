package main

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"
)

// depView is one dependency as the template sees it.
type depView struct {
	Dep

	// Method is the getter name; the setter is Set<Method>.
	Method string

	// Var is the package-level handle.
	Var string

	// Class is the declaring type of a class-scoped dep.
	Class string

	// Decl is the full declaration call assigned to Var.
	Decl string
}

// templateData is the input passed to the Go template.
type templateData struct {
	Spec        Spec
	ImportsList []ImportSpec
	Instance    []depView
	Class       []depView
	Redeclare   string
}

func newTemplateData(spec Spec, imports []ImportSpec, injectIdent string) templateData {
	data := templateData{
		Spec:        spec,
		ImportsList: imports,
		Redeclare:   "Redeclare" + exported(spec.Owner) + "ClassDeps",
	}

	ownerPtr := "*" + spec.Owner
	for _, dep := range spec.Instance {
		data.Instance = append(data.Instance, newDepView(spec, dep, injectIdent, "DeclareInstance", ownerPtr))
	}
	for _, dep := range spec.Class {
		class := strings.TrimSpace(dep.DeclaringType)
		if class == "" {
			class = ownerPtr
		}
		data.Class = append(data.Class, newDepView(spec, dep, injectIdent, "DeclareClass", class))
	}
	return data
}

func newDepView(spec Spec, dep Dep, injectIdent, declare, class string) depView {
	view := depView{
		Dep:    dep,
		Method: exported(dep.Name),
		Var:    unexported(spec.Owner) + exported(dep.Name) + "Dep",
		Class:  class,
	}

	provider := strings.TrimSpace(dep.Provider)
	switch {
	case provider == "":
		provider = "nil"
	case dep.Infallible:
		provider = fmt.Sprintf("%s.Value[%s, %s](%s)", injectIdent, class, dep.Type, provider)
	}

	args := []string{fmt.Sprintf("%q", dep.Name), provider}
	if dep.Sync {
		args = append(args, injectIdent+".WithSync()")
	}
	if declare == "DeclareClass" && strings.TrimSpace(dep.Registry) != "" {
		args = append(args, fmt.Sprintf("%s.WithRegistry(%s)", injectIdent, dep.Registry))
	}

	view.Decl = fmt.Sprintf("%s.%s[%s, %s](%s)", injectIdent, declare, class, dep.Type, strings.Join(args, ", "))
	return view
}

// render executes the template and gofmt's the result.
func render(data templateData) ([]byte, error) {
	var out bytes.Buffer
	if err := genTemplate.Execute(&out, data); err != nil {
		return nil, err
	}
	formatted, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w\n%s", err, out.String())
	}
	return formatted, nil
}

// genTemplate is the Go source template used to generate the accessors.
var genTemplate = template.Must(
	template.New("injectgen").Parse(`// Code generated by injectgen; DO NOT EDIT.

package {{.Spec.Package}}

import (
{{- range .ImportsList}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{- if .Instance}}

var (
{{- range .Instance}}
	{{.Var}} = {{.Decl}}
{{- end}}
)
{{- end}}
{{- if .Class}}

var (
{{- range .Class}}
	{{.Var}} = {{.Decl}}
{{- end}}
)

// {{.Redeclare}} redeclares every class-scoped dependency of {{.Spec.Owner}},
// discarding cached and overridden values.
func {{.Redeclare}}() {
{{- range .Class}}
	{{.Var}} = {{.Decl}}
{{- end}}
}
{{- end}}
{{- range .Instance}}

// {{.Method}} returns the {{.Name}} dependency of o, computing its default on first use.
func (o *{{$.Spec.Owner}}) {{.Method}}() {{.Type}} {
	return {{.Var}}.MustGet(o)
}

// Set{{.Method}} overrides the {{.Name}} dependency of o.
func (o *{{$.Spec.Owner}}) Set{{.Method}}(v {{.Type}}) {
	{{.Var}}.Set(o, v)
}
{{- end}}
{{- range .Class}}

// {{.Method}} returns the {{.Name}} dependency shared by every {{.Class}},
// computing its default on first use.
func (o *{{$.Spec.Owner}}) {{.Method}}() {{.Type}} {
	return {{.Var}}.MustGet(o)
}

// Set{{.Method}} overrides the {{.Name}} dependency for every {{.Class}}.
func (o *{{$.Spec.Owner}}) Set{{.Method}}(v {{.Type}}) {
	{{.Var}}.Set(o, v)
}
{{- end}}
`),
)
