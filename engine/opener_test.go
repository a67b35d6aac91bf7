// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func readLocator(t *testing.T, o Opener, loc string) (string, error) {
	t.Helper()

	rc, err := o.Open(context.Background(), loc)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b), nil
}

func TestOpener_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a b.wav")
	require.NoError(t, os.WriteFile(path, []byte("pcm"), 0o644))

	o := NewOpener(dir, nil)

	got, err := readLocator(t, o, "a b.wav")
	require.NoError(t, err)
	require.Equal(t, "pcm", got)

	got, err = readLocator(t, o, path)
	require.NoError(t, err)
	require.Equal(t, "pcm", got)

	got, err = readLocator(t, o, "file://"+filepath.ToSlash(filepath.Join(dir, "a%20b.wav")))
	require.NoError(t, err)
	require.Equal(t, "pcm", got)

	_, err = readLocator(t, o, "nope.wav")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOpener_DataURI(t *testing.T) {
	t.Parallel()

	o := NewOpener("", nil)

	tests := map[string]string{
		"data:audio/wav;base64,aGVsbG8=":  "hello",
		"DATA:;base64,aGVsbG8%3D":         "hello",
		"data:text/plain,hello%20world":   "hello world",
		"data:,":                          "",
	}
	for loc, want := range tests {
		got, err := readLocator(t, o, loc)
		require.NoError(t, err, loc)
		require.Equal(t, want, got, loc)
	}

	rc, err := o.Open(context.Background(), "data:;base64,AAAA")
	require.NoError(t, err)
	_, ok := rc.(io.Seeker)
	require.True(t, ok, "data URIs stay seekable")

	for _, bad := range []string{"data:audio/wav;base64", "data:;base64,***"} {
		_, err := o.Open(context.Background(), bad)
		require.ErrorIs(t, err, ErrUnsupportedLocator, bad)
	}
}

func TestOpener_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	_, err := NewOpener("", nil).Open(context.Background(), "ftp://example.com/a.wav")
	require.ErrorIs(t, err, ErrUnsupportedLocator)
}
