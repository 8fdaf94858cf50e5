package library_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/reconcile"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/library"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func manifest(appid int, name string, size string) string {
	return fmt.Sprintf(`"AppState"
{
	"appid"		"%d"
	"Universe"		"1"
	"name"		"%s"
	"StateFlags"		"4"
	"SizeOnDisk"		"%s"
}
`, appid, name, size)
}

func folders(paths ...string) string {
	out := "\"libraryfolders\"\n{\n\t\"contentstatsid\"\t\t\"-123\"\n"
	for i, p := range paths {
		out += fmt.Sprintf("\t\"%d\"\n\t{\n\t\t\"path\"\t\t\"%s\"\n\t\t\"label\"\t\t\"\"\n\t}\n", i, p)
	}
	return out + "}\n"
}

func TestScanSingleLibrary(t *testing.T) {
	root := t.TempDir()
	steamapps := filepath.Join(root, "steamapps")
	writeFile(t, filepath.Join(steamapps, library.FoldersFile), folders(root))
	writeFile(t, filepath.Join(steamapps, "appmanifest_10.acf"), manifest(10, "Counter-Strike", "536870912"))
	writeFile(t, filepath.Join(steamapps, "appmanifest_440.acf"), manifest(440, "Team Fortress 2", "2147483648"))
	writeFile(t, filepath.Join(steamapps, "libraryfolder.vdf"), "ignored")

	result, err := library.NewScanner(steamapps, nil).Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[int]reconcile.InstalledGame{
		10:  {AppID: 10, Name: "Counter-Strike", SizeOnDisk: 536870912},
		440: {AppID: 440, Name: "Team Fortress 2", SizeOnDisk: 2147483648},
	}, result.Installed)
	require.Len(t, result.Libraries, 1)
	assert.Equal(t, library.Library{Path: steamapps, Manifests: 2}, result.Libraries[0])
	assert.Zero(t, result.Skipped)
}

func TestScanMultipleLibraries(t *testing.T) {
	primary := t.TempDir()
	second := t.TempDir()
	steamapps := filepath.Join(primary, "steamapps")
	writeFile(t, filepath.Join(steamapps, library.FoldersFile), folders(primary, second))
	writeFile(t, filepath.Join(steamapps, "appmanifest_10.acf"), manifest(10, "Counter-Strike", "100"))
	writeFile(t, filepath.Join(second, "steamapps", "appmanifest_20.acf"), manifest(20, "Team Fortress Classic", "200"))

	result, err := library.NewScanner(steamapps, nil).Scan(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.Installed, 2)
	assert.Equal(t, int64(200), result.Installed[20].SizeOnDisk)
	require.Len(t, result.Libraries, 2)
	assert.Equal(t, filepath.Join(second, "steamapps"), result.Libraries[1].Path)
}

func TestScanMissingLibraryIsSkipped(t *testing.T) {
	root := t.TempDir()
	steamapps := filepath.Join(root, "steamapps")
	gone := filepath.Join(root, "unplugged")
	writeFile(t, filepath.Join(steamapps, library.FoldersFile), folders(root, gone))
	writeFile(t, filepath.Join(steamapps, "appmanifest_10.acf"), manifest(10, "Counter-Strike", "100"))

	result, err := library.NewScanner(steamapps, nil).Scan(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.Installed, 1)
	require.Len(t, result.Libraries, 2)
	assert.True(t, result.Libraries[1].Missing)
	assert.Zero(t, result.Libraries[1].Manifests)
}

func TestScanSkipsMalformedManifests(t *testing.T) {
	root := t.TempDir()
	steamapps := filepath.Join(root, "steamapps")
	writeFile(t, filepath.Join(steamapps, library.FoldersFile), folders(root))
	writeFile(t, filepath.Join(steamapps, "appmanifest_10.acf"), manifest(10, "Counter-Strike", "100"))
	writeFile(t, filepath.Join(steamapps, "appmanifest_20.acf"), manifest(20, "Broken", "lots"))
	writeFile(t, filepath.Join(steamapps, "appmanifest_30.acf"), `"AppState" { "name" "No id" }`)

	result, err := library.NewScanner(steamapps, nil).Scan(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.Installed, 1)
	assert.Contains(t, result.Installed, 10)
	assert.Equal(t, 2, result.Skipped)
}

func TestScanZeroSizeInstall(t *testing.T) {
	root := t.TempDir()
	steamapps := filepath.Join(root, "steamapps")
	writeFile(t, filepath.Join(steamapps, library.FoldersFile), folders(root))
	writeFile(t, filepath.Join(steamapps, "appmanifest_10.acf"), manifest(10, "Counter-Strike", "0"))

	result, err := library.NewScanner(steamapps, nil).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Installed[10].SizeOnDisk)
}

func TestScanMissingFoldersFile(t *testing.T) {
	_, err := library.NewScanner(t.TempDir(), nil).Scan(context.Background())
	assert.ErrorIs(t, err, library.ErrLibraryFolders)
}

func TestScanCancelled(t *testing.T) {
	root := t.TempDir()
	steamapps := filepath.Join(root, "steamapps")
	writeFile(t, filepath.Join(steamapps, library.FoldersFile), folders(root))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := library.NewScanner(steamapps, nil).Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLibraryPathsLegacyFormat(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, library.FoldersFile), `"LibraryFolders"
{
	"TimeNextStatsReport"		"1600000000"
	"ContentStatsID"		"-42"
	"2"		"/mnt/games"
	"1"		"/data/steam"
}
`)

	paths, err := library.NewScanner(root, nil).LibraryPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/data/steam", "steamapps"),
		filepath.Join("/mnt/games", "steamapps"),
	}, paths)
}

func TestLibraryPathsWithoutSection(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, library.FoldersFile), `"something" { "a" "b" }`)

	_, err := library.NewScanner(root, nil).LibraryPaths()
	assert.ErrorIs(t, err, library.ErrLibraryFolders)
}
