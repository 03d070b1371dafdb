package cli

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/rootshare/internal/client/config"
	"github.com/dmitrijs2005/rootshare/internal/logging"
	"github.com/dmitrijs2005/rootshare/internal/testutil/fakeapi"
	"github.com/stretchr/testify/require"
)

type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) text() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "\n")
}

func (o *output) reset() {
	o.mu.Lock()
	o.lines = nil
	o.mu.Unlock()
}

// captureOutput redirects printlnFn for the duration of the test.
func captureOutput(t *testing.T) *output {
	t.Helper()
	out := &output{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out.mu.Lock()
		defer out.mu.Unlock()
		out.lines = append(out.lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return out
}

// stubInputs answers text prompts and password prompts from two queues.
// An exhausted queue behaves like a closed stdin.
func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getMultiline = func(r *bufio.Reader, p string, w io.Writer) (string, error) {
		return getSimpleText(r, p, w)
	}
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		pw := []byte(passwords[0])
		passwords = passwords[1:]
		return pw, nil
	}

	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})
}

// newTestApp wires a real App against the in-memory backend.
func newTestApp(t *testing.T) (*App, *fakeapi.API) {
	t.Helper()
	api, base := fakeapi.NewTestServer(t)

	cfg := &config.Config{
		APIBaseURL: base,
		DBPath:     filepath.Join(t.TempDir(), "rootshare.db"),
		Timeout:    5 * time.Second,
		LogLevel:   "info",
	}
	app, err := NewApp(cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(app.Close)

	app.reader = rdr("")
	app.out = io.Discard
	return app, api
}
