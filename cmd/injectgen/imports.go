package main

import (
	"bytes"
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ImportSpec models one Go import: optional alias and full import path.
type ImportSpec struct {
	Alias string
	Path  string
}

// Ident returns the identifier the import is referenced by.
func (s ImportSpec) Ident() string {
	if s.Alias != "" {
		return s.Alias
	}
	return importDefaultIdent(s.Path)
}

// findOwnerGoGenerateFile finds the Go source file in packageDir that contains a go:generate
// directive invoking cmd/injectgen.
//
// This is used to discover the owner file’s imports so dep types and providers
// can reference the same packages.
func findOwnerGoGenerateFile(packageDir string) (string, error) {
	dirEntries, err := os.ReadDir(packageDir)
	if err != nil {
		return "", err
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}

		fileName := entry.Name()
		if !strings.HasSuffix(fileName, ".go") ||
			strings.HasSuffix(fileName, "_test.go") ||
			strings.HasSuffix(fileName, ".gen.go") {
			continue
		}

		filePath := filepath.Join(packageDir, fileName)
		fileBytes, err := os.ReadFile(filePath)
		if err != nil {
			// Best-effort: unreadable file shouldn’t break generation.
			continue
		}

		if bytes.Contains(fileBytes, []byte("go:generate")) && bytes.Contains(fileBytes, []byte("cmd/injectgen")) {
			return filePath, nil
		}
	}

	return "", fmt.Errorf("could not find owner file with go:generate invoking cmd/injectgen in %s", packageDir)
}

// readImportsFromFile parses imports from a Go file.
func readImportsFromFile(goFilePath string) ([]ImportSpec, error) {
	fileSet := token.NewFileSet()
	parsedFile, err := parser.ParseFile(fileSet, goFilePath, nil, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}

	var imports []ImportSpec
	for _, importDecl := range parsedFile.Imports {
		importPath := strings.Trim(importDecl.Path.Value, `"`)
		importAlias := ""
		if importDecl.Name != nil {
			importAlias = importDecl.Name.Name
		}
		imports = append(imports, ImportSpec{Alias: importAlias, Path: importPath})
	}

	return imports, nil
}

func importDefaultIdent(importPath string) string {
	// Import paths always use forward slashes, even on Windows.
	return path.Base(strings.TrimSpace(importPath))
}

// referencesIdent reports whether any Go expression in exprs selects from ident.
func referencesIdent(exprs []string, ident string) bool {
	needle := ident + "."
	for _, expr := range exprs {
		for start := 0; ; {
			i := strings.Index(expr[start:], needle)
			if i < 0 {
				break
			}
			i += start
			if i == 0 || (expr[i-1] != '.' && !isIdentByte(expr[i-1])) {
				return true
			}
			start = i + 1
		}
	}
	return false
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= 0x80
}

// resolveImports builds the final imports list for the generated file.
//
// Rules:
// - Owner imports are kept only when a dep type, provider, declaring type or
//   registry expression refers to them (generated code must not carry unused imports)
// - Blank and dot imports are never copied
// - The inject package is always imported; an owner alias for it is reused
//
// It returns the imports and the identifier to use for the inject package.
func resolveImports(ownerFilePath string, spec *Spec) ([]ImportSpec, string) {
	var importsFromOwner []ImportSpec
	if strings.TrimSpace(ownerFilePath) != "" {
		parsedOwnerImports, err := readImportsFromFile(ownerFilePath)
		if err == nil {
			importsFromOwner = parsedOwnerImports
		}
		// If parsing fails, fall back to the inject import only.
	}

	exprs := specExpressions(spec)

	injectImport := ImportSpec{Path: spec.InjectImport}
	finalImports := make([]ImportSpec, 0, len(importsFromOwner)+1)
	for _, imp := range importsFromOwner {
		if imp.Path == spec.InjectImport {
			if imp.Alias != "_" && imp.Alias != "." {
				injectImport.Alias = imp.Alias
			}
			continue
		}
		if imp.Alias == "_" || imp.Alias == "." {
			continue
		}
		if referencesIdent(exprs, imp.Ident()) {
			finalImports = append(finalImports, imp)
		}
	}

	finalImports = append(finalImports, injectImport)
	return finalImports, injectImport.Ident()
}

// specExpressions lists every user-supplied Go expression in the spec.
func specExpressions(spec *Spec) []string {
	var exprs []string
	for _, deps := range [][]Dep{spec.Instance, spec.Class} {
		for _, dep := range deps {
			exprs = append(exprs, dep.Type, dep.Provider, dep.DeclaringType, dep.Registry)
		}
	}
	return exprs
}
