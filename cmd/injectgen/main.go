// cmd/injectgen/main.go
package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// This binary is a code-generation tool.
//
// It reads a JSON or YAML specification listing the injectable dependencies of
// one owner type and generates, per dependency, a package-level inject handle
// plus a <Name>() getter and Set<Name>() setter on the owner.
//
// Key behaviors:
// - Reads the spec (.json via json-iterator, .yaml/.yml via yaml.v3)
// - Locates the "owner" Go file (the file containing the go:generate for cmd/injectgen) in the output directory
// - Copies the owner imports the spec's expressions refer to, plus the inject package
// - gofmt's the result and writes it atomically (temp file + rename) to avoid partial writes

// run executes the generator logic and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("injectgen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	specPath := flags.String("spec", "", "path to owner.inject.json|yaml")
	outPath := flags.String("out", "", "output .gen.go file path")
	verbose := flags.Bool("v", false, "log generation steps to stderr")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if strings.TrimSpace(*specPath) == "" || strings.TrimSpace(*outPath) == "" {
		_, _ = color.New(color.FgRed).Fprintln(stderr, "usage: injectgen -spec <file.inject.json|yaml> -out <file.gen.go> [-v]")
		return 2
	}

	log := newLogger(stderr, *verbose)
	defer func() { _ = log.Sync() }()

	spec, err := loadSpec(*specPath)
	must(err)
	validateSpec(&spec)
	log.Debug("spec loaded",
		zap.String("spec", *specPath),
		zap.String("owner", spec.Owner),
		zap.Int("instance", len(spec.Instance)),
		zap.Int("class", len(spec.Class)),
	)

	generatedFilePath := filepath.Clean(*outPath)
	packageDir := filepath.Dir(generatedFilePath)

	ownerGoFilePath, err := findOwnerGoGenerateFile(packageDir)
	if err != nil {
		// If we can’t find the owner file, we can still generate with the inject import only.
		log.Debug("owner file not found", zap.Error(err))
		ownerGoFilePath = ""
	}

	importsList, injectIdent := resolveImports(ownerGoFilePath, &spec)

	source, err := render(newTemplateData(spec, importsList, injectIdent))
	must(err)

	must(writeFileAtomic(generatedFilePath, source, 0o644))
	log.Debug("generated", zap.String("out", generatedFilePath), zap.Int("bytes", len(source)))
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// newLogger returns a development-style console logger on w when verbose is
// set, and a no-op logger otherwise.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), zapcore.DebugLevel)).Named("injectgen")
}

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes a file atomically.
//
// It writes to a temporary file in the same directory and then renames it
// over the target path, ensuring readers never observe partial writes.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	targetDir := filepath.Dir(targetPath)

	tmpFile, err := createTempFile(targetDir, filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	return renameFile(tmpPath, targetPath)
}

// must panics if err is non-nil.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
