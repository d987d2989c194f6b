// Package repotree adapts a local repository checkout into the ordered
// (path, contents, is_directory) tuple list the analysis core consumes.
// Repository acquisition itself (cloning, fetching) is out of scope; this
// package only walks an already-materialized tree.
package repotree

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/morgan-labs/codegenius/internal/parse"
)

// Options controls the walk.
type Options struct {
	// Extensions is the allowlist of file extensions (with leading dot) to
	// load contents for. Required: files outside it are omitted entirely.
	Extensions []string

	// ExcludeDirs are directory names skipped wholesale (".git" always is).
	ExcludeDirs []string
}

// Load walks root and returns the file tree in lexical walk order: directory
// entries first-seen, then files with contents. Unreadable files are skipped
// — failing to read at acquisition time is not a parse failure. A .gitignore
// at the root is honored when present.
func Load(root string, opts Options) ([]parse.SourceFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("repotree: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("repotree: %s is not a directory", root)
	}

	allowed := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		allowed[strings.ToLower(ext)] = true
	}
	excluded := make(map[string]bool, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		excluded[d] = true
	}

	var ignore *gitignore.GitIgnore
	if matcher, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		ignore = matcher
	}

	var tree []parse.SourceFile
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // inaccessible subtrees are skipped, not fatal
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == ".git" || excluded[d.Name()] || (ignore != nil && ignore.MatchesPath(rel)) {
				return filepath.SkipDir
			}
			tree = append(tree, parse.SourceFile{Path: rel, IsDir: true})
			return nil
		}

		if !allowed[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if ignore != nil && ignore.MatchesPath(rel) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		tree = append(tree, parse.SourceFile{Path: rel, Content: content})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("repotree: walk: %w", walkErr)
	}
	return tree, nil
}
