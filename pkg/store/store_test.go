package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/scorm-extractor/internal/testutil"
	"github.com/mrhapile/scorm-extractor/pkg/scorm"
	"github.com/mrhapile/scorm-extractor/pkg/store"
	"github.com/mrhapile/scorm-extractor/pkg/types"
)

func testInput() (*types.ScormPackageInfo, map[string][]byte) {
	info := &types.ScormPackageInfo{
		Version:    types.Version12,
		Title:      "Demo Course",
		EntryPoint: "index.html",
		SCOs:       []types.SCOInfo{{Identifier: "item1", Title: "Lesson 1", LaunchURL: "index.html"}},
		Files:      []string{"imsmanifest.xml", "index.html", "js/app.js"},
	}
	files := map[string][]byte{
		"imsmanifest.xml": []byte("<manifest/>"),
		"index.html":      []byte("<html></html>"),
		"js/app.js":       []byte("start()"),
	}
	return info, files
}

func TestSave(t *testing.T) {
	outDir := t.TempDir()
	info, files := testInput()

	// Use fixed timestamp for determinism
	fixedTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	var written []string
	result, err := store.Save(info, files,
		store.WithOutputDir(outDir),
		store.WithTimestamp(fixedTime),
		store.WithPackageID("demo"),
		store.WithProgress(func(path string) { written = append(written, path) }),
	)
	require.NoError(t, err)

	assert.Equal(t, "demo", result.ID)
	assert.Equal(t, filepath.Join(outDir, "demo"), result.Dir)
	assert.Equal(t, filepath.Join(outDir, "demo", store.ContentDir), result.ContentDir)
	assert.Equal(t, fixedTime, result.Manifest.GeneratedAt)
	assert.Equal(t, 3, result.Manifest.TotalFiles)
	assert.Equal(t, int64(len("<manifest/>")+len("<html></html>")+len("start()")), result.SizeBytes)
	assert.Equal(t, []string{"imsmanifest.xml", "index.html", "js/app.js"}, written)
	assert.NotEmpty(t, result.Manifest.ContentHash)

	data, err := os.ReadFile(filepath.Join(result.ContentDir, "js", "app.js"))
	require.NoError(t, err)
	assert.Equal(t, "start()", string(data))

	stat, err := os.Stat(filepath.Join(result.ContentDir, "index.html"))
	require.NoError(t, err)
	assert.True(t, stat.ModTime().Equal(fixedTime))

	for _, name := range []string{store.PackageInfoFile, store.ManifestFile} {
		_, err := os.Stat(filepath.Join(result.Dir, name))
		assert.NoError(t, err, name)
	}
}

func TestSave_DeterministicManifest(t *testing.T) {
	info, files := testInput()
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	a, err := store.Save(info, files, store.WithOutputDir(t.TempDir()), store.WithTimestamp(ts), store.WithPackageID("p"))
	require.NoError(t, err)
	b, err := store.Save(info, files, store.WithOutputDir(t.TempDir()), store.WithTimestamp(ts), store.WithPackageID("p"))
	require.NoError(t, err)

	assert.Equal(t, a.Manifest, b.Manifest)
}

func TestSave_GeneratesPackageID(t *testing.T) {
	info, files := testInput()
	outDir := t.TempDir()

	a, err := store.Save(info, files, store.WithOutputDir(outDir))
	require.NoError(t, err)
	b, err := store.Save(info, files, store.WithOutputDir(outDir))
	require.NoError(t, err)

	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSave_Errors(t *testing.T) {
	info, files := testInput()
	outDir := t.TempDir()

	_, err := store.Save(nil, files, store.WithOutputDir(outDir))
	assert.Error(t, err)

	_, err = store.Save(info, files, store.WithOutputDir(outDir), store.WithPackageID("../up"))
	assert.Error(t, err)

	_, err = store.Save(info, files, store.WithOutputDir(outDir), store.WithPackageID("dup"))
	require.NoError(t, err)
	_, err = store.Save(info, files, store.WithOutputDir(outDir), store.WithPackageID("dup"))
	assert.Error(t, err, "existing packages are not overwritten")

	_, err = store.Save(info, map[string][]byte{"../evil.html": []byte("x")},
		store.WithOutputDir(outDir), store.WithPackageID("evil"))
	assert.ErrorIs(t, err, scorm.ErrUnsafePath)
	_, statErr := os.Stat(filepath.Join(outDir, "evil.html"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(outDir, "evil"))
	assert.True(t, os.IsNotExist(statErr), "no package directory is left behind")

	_, err = store.Save(info, map[string][]byte{"index.html": []byte("real"), "x/../index.html": []byte("alias")},
		store.WithOutputDir(outDir), store.WithPackageID("alias"))
	assert.ErrorIs(t, err, scorm.ErrDuplicatePath)
	_, statErr = os.Stat(filepath.Join(outDir, "alias"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSave_RemovesPartialPackage(t *testing.T) {
	info, _ := testInput()
	outDir := t.TempDir()

	// "a" is written as a file, so the directory needed for "a/b.html" cannot be created.
	conflicting := map[string][]byte{"a": []byte("file"), "a/b.html": []byte("nested")}
	_, err := store.Save(info, conflicting, store.WithOutputDir(outDir), store.WithPackageID("p"))
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(outDir, "p"))
	assert.True(t, os.IsNotExist(statErr), "partial package directory is removed")

	pkg, err := store.Save(info, map[string][]byte{"a.html": []byte("ok")}, store.WithOutputDir(outDir), store.WithPackageID("p"))
	require.NoError(t, err, "retry with the same id succeeds")
	require.NoError(t, store.Verify(pkg))
}

func TestSave_ExtractedArchiveVerifies(t *testing.T) {
	info, _ := testInput()
	buf := testutil.Zip(t,
		testutil.File{Name: "index.html", Body: "home"},
		testutil.File{Name: "./lessons/x/../one.html", Body: "one"},
	)

	files, err := scorm.ExtractFiles(buf)
	require.NoError(t, err)

	pkg, err := store.Save(info, files, store.WithOutputDir(t.TempDir()), store.WithPackageID("pkg"))
	require.NoError(t, err)
	assert.Equal(t, 2, pkg.Manifest.TotalFiles)
	assert.Equal(t, "lessons/one.html", pkg.Manifest.Files[1].Path)
	require.NoError(t, store.Verify(pkg))
}

func TestLoadAndVerify(t *testing.T) {
	info, files := testInput()
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	saved, err := store.Save(info, files, store.WithOutputDir(t.TempDir()), store.WithTimestamp(ts), store.WithPackageID("pkg"))
	require.NoError(t, err)

	loaded, err := store.Load(saved.Dir)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, *info, loaded.Info)
	assert.Equal(t, saved.Manifest.ContentHash, loaded.Manifest.ContentHash)
	assert.Equal(t, saved.SizeBytes, loaded.SizeBytes)
	require.NoError(t, store.Verify(loaded))

	require.NoError(t, os.WriteFile(filepath.Join(saved.ContentDir, "index.html"), []byte("tampered"), 0644))
	assert.ErrorIs(t, store.Verify(loaded), store.ErrChecksumMismatch)
}

func TestLoad_Missing(t *testing.T) {
	_, err := store.Load(filepath.Join(t.TempDir(), "nothing"))
	assert.Error(t, err)
}
