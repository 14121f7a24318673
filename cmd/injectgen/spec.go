package main

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// defaultInjectImport is used when the spec does not name the inject package.
const defaultInjectImport = "github.com/sghaida/interject/inject"

// Dep describes one dependency.
// Each dep results in a package-level handle plus a <Name>() getter and a
// Set<Name>() setter on the owner.
type Dep struct {
	// Name is the dependency name; its exported form names the accessors.
	Name string `json:"name" yaml:"name"`

	// Type is the Go type of the value.
	Type string `json:"type" yaml:"type"`

	// Provider is a Go expression of type func(O) (T, error), or func(O) T when
	// Infallible is set. Empty means set-only.
	Provider   string `json:"provider" yaml:"provider"`
	Infallible bool   `json:"infallible" yaml:"infallible"`

	// Sync declares the dependency WithSync.
	Sync bool `json:"sync" yaml:"sync"`

	// DeclaringType is the class a class-scoped dependency is keyed by.
	// Defaults to *<Owner>; otherwise it must be an interface *<Owner>
	// implements. Ignored for instance deps.
	DeclaringType string `json:"declaringType" yaml:"declaringType"`

	// Registry is an optional Go expression of type *inject.Registry.
	// Ignored for instance deps.
	Registry string `json:"registry" yaml:"registry"`
}

// Spec is the full input schema consumed by the generator.
type Spec struct {
	Package string `json:"package" yaml:"package"`

	// Owner is the struct type receiving the accessors. It must embed inject.Cells
	// when it has instance deps.
	Owner string `json:"owner" yaml:"owner"`

	InjectImport string `json:"injectImport" yaml:"injectImport"`

	Instance []Dep `json:"instance" yaml:"instance"`
	Class    []Dep `json:"class" yaml:"class"`
}

// loadSpec reads a spec file, choosing the decoder by extension.
func loadSpec(specPath string) (Spec, error) {
	var spec Spec

	specBytes, err := os.ReadFile(specPath)
	if err != nil {
		return spec, err
	}

	switch strings.ToLower(filepath.Ext(specPath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(specBytes, &spec)
	default:
		err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(specBytes, &spec)
	}
	if err != nil {
		return spec, fmt.Errorf("parse spec %s: %w", specPath, err)
	}

	if strings.TrimSpace(spec.InjectImport) == "" {
		spec.InjectImport = defaultInjectImport
	}
	return spec, nil
}

// validateSpec validates semantic correctness of the input specification.
func validateSpec(spec *Spec) {
	var missingFields []string

	requireNonEmpty := func(fieldName, value string) {
		if strings.TrimSpace(value) == "" {
			missingFields = append(missingFields, fieldName)
		}
	}

	requireNonEmpty("package", spec.Package)
	requireNonEmpty("owner", spec.Owner)

	if len(spec.Instance)+len(spec.Class) == 0 {
		missingFields = append(missingFields, "instance or class (must have at least 1)")
	}

	if len(missingFields) > 0 {
		panic(fmt.Errorf("spec missing required fields: %v", missingFields))
	}

	if !token.IsIdentifier(spec.Owner) {
		panic(fmt.Errorf("owner must be a Go identifier; got: %q", spec.Owner))
	}

	seenMethods := make(map[string]struct{}, len(spec.Instance)+len(spec.Class))

	validateDep := func(dep Dep) {
		if dep.Name == "" || dep.Type == "" {
			panic(fmt.Errorf("each dep must have name/type; got: %+v", dep))
		}
		if !token.IsIdentifier(dep.Name) {
			panic(fmt.Errorf("dep name must be a Go identifier; got: %q", dep.Name))
		}
		getter := exported(dep.Name)
		for _, method := range []string{getter, "Set" + getter} {
			if _, ok := seenMethods[method]; ok {
				panic(fmt.Errorf("duplicate dep accessor: %s", method))
			}
			seenMethods[method] = struct{}{}
		}
	}

	for _, dep := range spec.Instance {
		validateDep(dep)
	}
	for _, dep := range spec.Class {
		validateDep(dep)
		validateDeclaringType(spec.Owner, dep)
	}
}

// validateDeclaringType rejects declaring types *<Owner> cannot be passed as.
// Only *<Owner> itself or an interface it implements will compile; interfaces
// cannot be told apart from other named types without type checking, so the
// check covers pointers and the bare owner.
func validateDeclaringType(owner string, dep Dep) {
	class := strings.TrimSpace(dep.DeclaringType)
	if class == "" || class == "*"+owner {
		return
	}
	if strings.HasPrefix(class, "*") || class == owner {
		panic(fmt.Errorf("declaringType of %s must be *%s or an interface *%s implements; got: %q",
			dep.Name, owner, owner, class))
	}
}

// exported upper-cases the first rune of name.
func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// unexported lower-cases the first rune of name.
func unexported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}
