package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/require"
	xi2xz "github.com/xi2/xz"

	"github.com/sinytra/mapconv/mapping"
)

const (
	yarnToMcp         = "net/minecraft/Block net/minecraft/block/Block\n"
	intermediaryToSrg = "net/minecraft/class_1 net/minecraft/block/Block\n"
)

func makeBundle(t *testing.T, path, format, compression string) {
	t.Helper()

	b, err := NewBundle(path, format, compression, false)
	require.NoError(t, err)
	defer b.Cleanup()

	require.NoError(t, b.AppendContent("yarnToMcp.tsrg", []byte(yarnToMcp)))
	require.NoError(t, b.AppendContent("/intermediaryToSrg.tsrg", []byte(intermediaryToSrg)))
	require.NoError(t, b.Close())
}

func TestBundleFormats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	check := func(format, compression, expectedType string) {
		path := filepath.Join(dir, format+"."+compression)
		makeBundle(t, path, format, compression)

		f, err := os.Open(path)
		require.NoError(t, err)
		kind, err := filetype(f)
		require.NoError(t, err)
		require.NoError(t, f.Close())
		require.Equal(t, expectedType, kind)

		var sb strings.Builder
		require.NoError(t, listBundle(path, &sb))
		require.Equal(t, "yarnToMcp.tsrg\nintermediaryToSrg.tsrg\n", sb.String())

		sb.Reset()
		require.NoError(t, catBundle(path, "intermediaryToSrg.tsrg", &sb))
		require.Equal(t, intermediaryToSrg, sb.String())
	}

	check("jar", "", "zip")
	check("cpio", "none", "cpio")
	check("cpio", "zstd", "zstd")
	check("cpio", "gzip", "gzip")
	check("cpio", "xz", "xz")
	check("cpio", "lz4", "lz4")
}

func TestBundleXzReadableByOtherDecoders(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mappings.cpio.xz")
	makeBundle(t, path, "cpio", "xz")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	x, err := xi2xz.NewReader(f, 0)
	require.NoError(t, err)
	r := cpio.NewReader(x)

	hdr, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, "yarnToMcp.tsrg", hdr.Name)
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, yarnToMcp, string(content))
}

func TestBundleRefusesOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mappings.jar")
	makeBundle(t, path, "jar", "")

	_, err := NewBundle(path, "jar", "", false)
	require.Error(t, err)

	b, err := NewBundle(path, "jar", "", true)
	require.NoError(t, err)
	require.NoError(t, b.AppendContent("only.tsrg", []byte("a b\n")))
	require.NoError(t, b.Close())
	b.Cleanup()

	var sb strings.Builder
	require.NoError(t, listBundle(path, &sb))
	require.Equal(t, "only.tsrg\n", sb.String())
}

func TestBundleUnreachablePath(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "mappings.jar")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	for _, force := range []bool{false, true} {
		_, err := NewBundle(filepath.Join(file, "nested.jar"), "jar", "", force)
		require.Error(t, err)
		require.NotContains(t, err.Error(), "--force")
	}
}

func TestBundleCleanupLeavesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "mappings.jar")

	b, err := NewBundle(path, "jar", "", false)
	require.NoError(t, err)
	require.NoError(t, b.AppendContent("yarnToMcp.tsrg", []byte(yarnToMcp)))
	require.Error(t, b.AppendContent("yarnToMcp.tsrg", []byte(yarnToMcp)))
	b.Cleanup()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestBundleBadOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := NewBundle(filepath.Join(dir, "a.jar"), "jar", "zstd", false)
	require.Error(t, err)
	_, err = NewBundle(filepath.Join(dir, "a.tar"), "tar", "", false)
	require.Error(t, err)
	_, err = NewBundle(filepath.Join(dir, "a.cpio"), "cpio", "bzip2", false)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestCatMissingEntry(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mappings.jar")
	makeBundle(t, path, "jar", "")

	err := catBundle(path, "namedToMcp.tsrg", io.Discard)
	var nf *mapping.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "namedToMcp.tsrg", nf.Entry)

	err = listBundle(filepath.Join(t.TempDir(), "missing.jar"), io.Discard)
	require.ErrorIs(t, err, os.ErrNotExist)
}
