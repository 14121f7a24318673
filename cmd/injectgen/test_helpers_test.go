// test_helpers_test.go
package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

// minimalSpecJSON returns a minimal inject spec JSON that passes validateSpec
// and allows run() to generate output.
func minimalSpecJSON() []byte {
	return []byte(`{
  "package": "notify",
  "owner": "Notifier",
  "instance": [
    { "name": "transport", "type": "Transport", "provider": "(*Notifier).defaultTransport" }
  ],
  "class": [
    { "name": "clock", "type": "func() time.Time", "provider": "systemClock", "infallible": true }
  ]
}`)
}

// minimalSpecYAML is minimalSpecJSON in YAML form.
func minimalSpecYAML() []byte {
	return []byte(`package: notify
owner: Notifier
instance:
  - name: transport
    type: Transport
    provider: (*Notifier).defaultTransport
class:
  - name: clock
    type: func() time.Time
    provider: systemClock
    infallible: true
`)
}

// ownerSource is an owner file carrying the go:generate directive.
const ownerSource = `package notify

import (
	"strings"
	"time"
	_ "embed"

	"github.com/sghaida/interject/inject"
)

//go:generate go run ../../cmd/injectgen -spec ./notifier.inject.json -out ./notifier_inject.gen.go

type Notifier struct {
	inject.Cells
}

var _ = strings.ToUpper
var _ = time.Now
`

//
// -----------------------------------------------------------------------------
// Small helpers
// -----------------------------------------------------------------------------

// writeTempFile writes a file under dir/name and returns its full path.
func writeTempFile(t *testing.T, dir, name, content string, perm os.FileMode) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), perm))
	return p
}

// readFileString reads a file and returns its contents as string (fatal on error).
func readFileString(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

// requireParses asserts src is syntactically valid Go.
func requireParses(t *testing.T, src string) {
	t.Helper()
	_, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.AllErrors)
	require.NoError(t, err, src)
}

// requirePanicContains asserts fn panics and the panic message contains wantSub.
func requirePanicContains(t *testing.T, wantSub string, fn func()) {
	t.Helper()

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered)

		var message string
		switch v := recovered.(type) {
		case error:
			message = v.Error()
		case string:
			message = v
		default:
			message = fmt.Sprintf("%v", v)
		}
		require.Contains(t, message, wantSub)
	}()

	fn()
}

//
// -----------------------------------------------------------------------------
// writeFileAtomic() seam helpers
// -----------------------------------------------------------------------------

// fakeTempFile is a controllable file-like object for writeFileAtomic tests.
// It lets us force errors on Write and Close without using a real file.
type fakeTempFile struct {
	fileName string
	writeErr error
	closeErr error
}

func (f *fakeTempFile) Name() string { return f.fileName }

func (f *fakeTempFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(p), nil
}

func (f *fakeTempFile) Close() error {
	return f.closeErr
}

// restoreWriteFileSeams snapshots the global file seams and restores them on cleanup.
func restoreWriteFileSeams(t *testing.T) {
	t.Helper()
	origCreate, origRemove, origChmod, origRename := createTempFile, removeFile, chmodFile, renameFile
	t.Cleanup(func() {
		createTempFile = origCreate
		removeFile = origRemove
		chmodFile = origChmod
		renameFile = origRename
	})
}
