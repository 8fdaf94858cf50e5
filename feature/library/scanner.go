package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/reconcile"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/utils"

	"github.com/andygrunwald/vdf"
	"go.uber.org/zap"
)

// FoldersFile is the descriptor listing all Steam library folders.
const FoldersFile = "libraryfolders.vdf"

// ErrLibraryFolders is returned when the library folders descriptor cannot be
// read. Without it no library can be found, so the run cannot continue.
var ErrLibraryFolders = errors.New("problem reading libraryfolders.vdf")

// Library describes one scanned library folder.
type Library struct {
	// Path is the steamapps directory of the library.
	Path string
	// Manifests is the number of manifest files found.
	Manifests int
	// Missing is set when the directory could not be listed; it was skipped.
	Missing bool
}

// ScanResult is the outcome of a scan.
type ScanResult struct {
	// Installed indexes the installed games by appid.
	Installed map[int]reconcile.InstalledGame
	// Libraries lists every library folder in descriptor order.
	Libraries []Library
	// Skipped counts manifests that could not be parsed.
	Skipped int
}

// Scanner enumerates the games installed in the Steam libraries of a machine.
type Scanner struct {
	installDir string
	logger     *zap.Logger
}

// NewScanner creates a scanner rooted at the steamapps directory holding
// libraryfolders.vdf.
func NewScanner(installDir string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{installDir: installDir, logger: logger}
}

// Scan reads every library folder and its app manifests. A library that
// cannot be listed is marked Missing and skipped; a malformed manifest is
// skipped. When an appid appears in more than one library the last one wins.
func (s *Scanner) Scan(ctx context.Context) (*ScanResult, error) {
	paths, err := s.LibraryPaths()
	if err != nil {
		return nil, err
	}

	result := &ScanResult{
		Installed: make(map[int]reconcile.InstalledGame),
		Libraries: make([]Library, 0, len(paths)),
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		manifests, err := listManifests(path)
		if err != nil {
			s.logger.Debug("Library folder unreadable", zap.String("path", path), zap.Error(err))
			result.Libraries = append(result.Libraries, Library{Path: path, Missing: true})
			continue
		}
		result.Libraries = append(result.Libraries, Library{Path: path, Manifests: len(manifests)})

		for _, manifest := range manifests {
			games, err := readManifest(manifest)
			if err != nil {
				s.logger.Debug("Skipping manifest", zap.String("file", manifest), zap.Error(err))
				result.Skipped++
				continue
			}
			for _, game := range games {
				result.Installed[game.AppID] = game
			}
		}
	}

	return result, nil
}

// LibraryPaths returns the steamapps directory of every library listed in
// libraryfolders.vdf. Both the current format, where each library is a block
// with a "path" key, and the legacy format, where numbered keys map directly
// to a path, are understood.
func (s *Scanner) LibraryPaths() ([]string, error) {
	file := filepath.Join(s.installDir, FoldersFile)
	root, err := parseFile(file)
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %v", ErrLibraryFolders, s.installDir, err)
	}

	var folders map[string]any
	for key, value := range root {
		if strings.EqualFold(key, "libraryfolders") {
			folders, _ = value.(map[string]any)
		}
	}
	if folders == nil {
		return nil, fmt.Errorf("%w at %s: no libraryfolders section", ErrLibraryFolders, s.installDir)
	}

	type entry struct {
		index int
		path  string
	}
	var entries []entry
	for key, value := range folders {
		index, err := strconv.Atoi(key)
		if err != nil {
			// contentstatsid, TimeNextStatsReport and similar bookkeeping keys
			continue
		}

		var path string
		switch v := value.(type) {
		case map[string]any:
			path = utils.ToString(v["path"])
		case string:
			path = v
		}
		if path == "" {
			continue
		}
		entries = append(entries, entry{index: index, path: filepath.Join(path, "steamapps")})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].index < entries[j].index })

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.path)
	}
	return paths, nil
}

// listManifests returns the manifest files of a library. Steam names them
// appmanifest_<appid>.acf; any regular file starting with "a" is accepted.
func listManifests(libraryPath string) ([]string, error) {
	entries, err := os.ReadDir(libraryPath)
	if err != nil {
		return nil, err
	}

	var manifests []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "a") {
			continue
		}
		manifests = append(manifests, filepath.Join(libraryPath, entry.Name()))
	}
	return manifests, nil
}

// readManifest extracts the installed games described by a manifest file.
func readManifest(file string) ([]reconcile.InstalledGame, error) {
	root, err := parseFile(file)
	if err != nil {
		return nil, err
	}

	var games []reconcile.InstalledGame
	for _, value := range root {
		state, ok := value.(map[string]any)
		if !ok {
			continue
		}

		appid, err := utils.ParseInt64(state["appid"])
		if err != nil || appid <= 0 {
			return nil, fmt.Errorf("invalid appid: %v", state["appid"])
		}
		size, err := utils.ParseInt64(state["SizeOnDisk"])
		if err != nil || size < 0 {
			return nil, fmt.Errorf("invalid SizeOnDisk for app %d: %v", appid, state["SizeOnDisk"])
		}

		games = append(games, reconcile.InstalledGame{
			AppID:      int(appid),
			Name:       utils.ToString(state["name"]),
			SizeOnDisk: size,
		})
	}

	if len(games) == 0 {
		return nil, errors.New("no app state")
	}
	return games, nil
}

func parseFile(file string) (map[string]any, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return vdf.NewParser(f).Parse()
}
