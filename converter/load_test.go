package main

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"

	"github.com/sinytra/mapconv/mapping"
)

const yarnTiny = "tiny\t2\t0\tofficial\tintermediary\tnamed\n" +
	"c\ta\tnet/minecraft/class_1\tnet/minecraft/Block\n" +
	"\tf\tI\tb\tfield_1\thardness\n" +
	"\tm\t(La;)V\tc\tmethod_1\tcopyFrom\n" +
	"\t\tp\t1\t\tparam_1\tother\n" +
	"c\td\tnet/minecraft/class_2\tnet/minecraft/Item\n"

const obfToSrg = "a net/minecraft/block/Block\n" +
	"\tb field_149782_v\n" +
	"\tc (La;)V func_149999_a\n" +
	"e net/minecraft/Unused\n"

func writeJar(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func writeCompressed(t *testing.T, path, compression, content string) {
	t.Helper()

	var buf bytes.Buffer
	w, err := newCompressor(&buf, compression)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestLoadArchive(t *testing.T) {
	t.Parallel()

	jar := filepath.Join(t.TempDir(), "yarn.jar")
	writeJar(t, jar, map[string]string{
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0\n",
		tinyEntry:              yarnTiny,
	})

	n, err := loadArchive(jar, tinyEntry)
	require.NoError(t, err)
	require.Equal(t, []string{"official", "intermediary", "named"}, n.Namespaces)
	require.Equal(t, 2, n.Len())

	named, err := n.Table("official", "named")
	require.NoError(t, err)
	require.Equal(t, "net/minecraft/Block", named.Class("a").Target)
	require.Equal(t, "hardness", named.Class("a").Field("b").Target)
}

func TestLoadArchiveTinyV1(t *testing.T) {
	t.Parallel()

	jar := filepath.Join(t.TempDir(), "yarn.jar")
	writeJar(t, jar, map[string]string{
		tinyEntry: "v1\tofficial\tintermediary\tnamed\n" +
			"CLASS\ta\tnet/minecraft/class_1\tnet/minecraft/Block\n",
	})

	n, err := loadArchive(jar, tinyEntry)
	require.NoError(t, err)
	tb, err := n.Table("official", "intermediary")
	require.NoError(t, err)
	require.Equal(t, "net/minecraft/class_1", tb.Class("a").Target)
}

func TestLoadArchiveMissingEntry(t *testing.T) {
	t.Parallel()

	jar := filepath.Join(t.TempDir(), "yarn.jar")
	writeJar(t, jar, map[string]string{"other.txt": "hello"})

	n, err := loadArchive(jar, tinyEntry)
	require.Nil(t, n)
	require.True(t, errors.Is(err, fs.ErrNotExist))

	var nf *mapping.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, jar, nf.Path)
	require.Equal(t, tinyEntry, nf.Entry)
}

func TestLoadArchiveMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope.jar")
	_, err := loadArchive(path, tinyEntry)
	require.ErrorIs(t, err, fs.ErrNotExist)

	var nf *mapping.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Empty(t, nf.Entry)
}

func TestLoadArchiveNotZip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "yarn.jar")
	require.NoError(t, os.WriteFile(path, []byte(yarnTiny), 0o644))

	_, err := loadArchive(path, tinyEntry)
	var perr *mapping.ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, path, perr.File)
}

func TestLoadArchiveMalformedTiny(t *testing.T) {
	t.Parallel()

	jar := filepath.Join(t.TempDir(), "yarn.jar")
	writeJar(t, jar, map[string]string{tinyEntry: "tiny\t2\t0\tofficial\tnamed\nx\ta\tb\n"})

	_, err := loadArchive(jar, tinyEntry)
	var perr *mapping.ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, jar+"!/"+tinyEntry, perr.File)
	require.Equal(t, 2, perr.Line)
}

func TestLoadMappingsCompressed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, compression := range compressions {
		path := filepath.Join(dir, "obf2srg.tsrg."+compression)
		writeCompressed(t, path, compression, obfToSrg)

		tb, err := loadMappings(path)
		require.NoError(t, err, compression)
		require.Equal(t, 2, tb.Len(), compression)
		require.Equal(t, "func_149999_a", tb.Class("a").Method("c", "(La;)V").Target, compression)
	}
}

func TestLoadMappingsErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := loadMappings(filepath.Join(dir, "missing.tsrg"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	broken := filepath.Join(dir, "broken.tsrg")
	require.NoError(t, os.WriteFile(broken, []byte("a b\n\tc notadesc d\n"), 0o644))
	_, err = loadMappings(broken)
	var perr *mapping.ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, broken, perr.File)
	require.Equal(t, 2, perr.Line)

	empty := filepath.Join(dir, "empty.tsrg")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = loadMappings(empty)
	require.ErrorIs(t, err, mapping.ErrUnknownFormat)
	require.ErrorAs(t, err, &perr)
}
