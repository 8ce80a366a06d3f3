package scorm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/scorm-extractor/internal/testutil"
	"github.com/mrhapile/scorm-extractor/pkg/scorm"
)

func TestOpenArchive(t *testing.T) {
	buf := testutil.Zip(t,
		testutil.File{Name: "imsmanifest.xml", Body: "<manifest/>"},
		testutil.File{Name: "assets/", Body: ""},
		testutil.File{Name: "assets/logo.svg", Body: "<svg/>"},
	)

	archive, err := scorm.OpenArchive(buf)
	require.NoError(t, err)
	require.Len(t, archive.Entries(), 3)
	assert.True(t, archive.Entries()[1].IsDir)
	assert.Equal(t, []string{"imsmanifest.xml", "assets/logo.svg"}, archive.Files())

	e, ok := archive.Find("assets/logo.svg")
	require.True(t, ok)
	data, err := e.Data()
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	_, ok = archive.Find("Assets/Logo.svg")
	assert.False(t, ok, "Find is case-sensitive")
	_, ok = archive.FindFold("Assets/Logo.SVG")
	assert.True(t, ok)
	_, ok = archive.FindFold("ASSETS/")
	assert.False(t, ok, "FindFold skips directories")
}

func TestOpenArchive_Invalid(t *testing.T) {
	archive, err := scorm.OpenArchive([]byte("not a zip"))
	assert.Error(t, err)
	require.NotNil(t, archive)
	assert.Empty(t, archive.Entries())
	assert.Empty(t, archive.Files())
}

func TestOpenArchive_ZstdEntries(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "index.html", Method: zstd.ZipMethodWinZip})
	require.NoError(t, err)
	_, err = w.Write([]byte("<html>zstd</html>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	archive, err := scorm.OpenArchive(buf.Bytes())
	require.NoError(t, err)
	e, ok := archive.Find("index.html")
	require.True(t, ok)
	data, err := e.Data()
	require.NoError(t, err)
	assert.Equal(t, "<html>zstd</html>", string(data))
}

func TestExtractFiles(t *testing.T) {
	buf := testutil.Zip(t,
		testutil.File{Name: "imsmanifest.xml", Body: "<manifest/>"},
		testutil.File{Name: "lessons/", Body: ""},
		testutil.File{Name: "lessons/one.html", Body: "one"},
	)

	files, err := scorm.ExtractFiles(buf)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"imsmanifest.xml":  []byte("<manifest/>"),
		"lessons/one.html": []byte("one"),
	}, files)
}

func TestExtractFiles_RejectsUnsafePaths(t *testing.T) {
	buf := testutil.Zip(t,
		testutil.File{Name: "index.html", Body: "ok"},
		testutil.File{Name: "../escape.html", Body: "bad"},
	)

	files, err := scorm.ExtractFiles(buf)
	assert.Error(t, err)
	assert.Nil(t, files)
}

func TestExtractFiles_InvalidArchive(t *testing.T) {
	_, err := scorm.ExtractFiles([]byte("nope"))
	assert.Error(t, err)
}

func TestIsSafePath(t *testing.T) {
	for name, want := range map[string]bool{
		"index.html":          true,
		"a/b/../c.html":       true,
		"./index.html":        true,
		"..":                  false,
		"../x":                false,
		"a/../../x":           false,
		"/etc/passwd":         false,
		`..\windows\evil.dll`: false,
		"":                    false,
	} {
		assert.Equal(t, want, scorm.IsSafePath(name), name)
	}
}

func TestExtractFiles_CleansNames(t *testing.T) {
	buf := testutil.Zip(t,
		testutil.File{Name: "./index.html", Body: "home"},
		testutil.File{Name: "lessons/x/../one.html", Body: "one"},
	)

	files, err := scorm.ExtractFiles(buf)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"index.html":       []byte("home"),
		"lessons/one.html": []byte("one"),
	}, files)
}

func TestExtractFiles_RejectsAliasedEntries(t *testing.T) {
	buf := testutil.Zip(t,
		testutil.File{Name: "index.html", Body: "real"},
		testutil.File{Name: "x/../index.html", Body: "alias"},
	)

	files, err := scorm.ExtractFiles(buf)
	assert.ErrorIs(t, err, scorm.ErrDuplicatePath)
	assert.Nil(t, files)
}

func TestEntry_DataLimit(t *testing.T) {
	buf := testutil.Zip(t, testutil.File{Name: "big.txt", Body: strings.Repeat("a", 1000)})
	archive, err := scorm.OpenArchive(buf)
	require.NoError(t, err)
	e, ok := archive.Find("big.txt")
	require.True(t, ok)

	data, err := e.DataLimit(1000)
	require.NoError(t, err)
	assert.Len(t, data, 1000)

	_, err = e.DataLimit(999)
	assert.ErrorIs(t, err, scorm.ErrEntryTooLarge)

	data, err = e.DataLimit(-1)
	require.NoError(t, err)
	assert.Len(t, data, 1000)
}
