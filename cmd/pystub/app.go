// # cmd/pystub/app.go
package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"pystub/internal/config"
	"pystub/internal/docfield"
	"pystub/internal/output"
	"pystub/internal/parser"
	"pystub/internal/stub"
	"pystub/internal/watcher"
)

type App struct {
	Config    *config.Config
	Parser    *parser.Parser
	Generator *stub.Generator

	watcher *watcher.Watcher
}

func NewApp(cfg *config.Config) (*App, error) {
	p := parser.NewParser(parser.NewGrammarLoader())
	p.RegisterExtractor("python", &parser.PythonExtractor{})

	gen := stub.NewGenerator(docfield.Fields)
	gen.SignatureField = cfg.Signature.Field
	gen.LineLength = cfg.Signature.LineLength
	gen.WrapIndent = cfg.Signature.WrapIndent
	gen.ExtraTypingNames = cfg.Signature.ExtraTypingNames

	return &App{
		Config:    cfg,
		Parser:    p,
		Generator: gen,
	}, nil
}

// Run scans every configured path once and returns how many files
// failed to generate.
func (a *App) Run() (int, error) {
	files, err := a.ScanDirectories(a.Config.SourcePaths, a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, filePath := range files {
		if err := a.ProcessFile(filePath); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			failed++
		}
	}
	return failed, nil
}

// ProcessFile generates (or removes) the stub companion of one source.
func (a *App) ProcessFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	file, err := a.Parser.ParseFile(path, content)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	text, err := a.Generator.Generate(file)
	if err != nil {
		return err
	}

	dest, written, err := output.WriteStub(path, text)
	if err != nil {
		return err
	}
	if written {
		slog.Info("stub written", "path", dest)
	} else {
		slog.Debug("no annotated declarations", "path", path)
	}
	return nil
}

func (a *App) ScanDirectories(paths []string, excludeDirs, excludeFiles []string) ([]string, error) {
	var files []string

	dirGlobs := make([]glob.Glob, 0, len(excludeDirs))
	for _, p := range excludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		dirGlobs = append(dirGlobs, g)
	}

	fileGlobs := make([]glob.Glob, 0, len(excludeFiles))
	for _, p := range excludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		fileGlobs = append(fileGlobs, g)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)

			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if filepath.Ext(path) != ".py" {
				return nil
			}
			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func (a *App) StartWatcher() error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Watch.RebuildsPerSecond,
		a.Config.Watch.RebuildBurst,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.onFilesChanged,
	)
	if err != nil {
		return err
	}
	a.watcher = w
	return w.Watch(a.Config.SourcePaths)
}

func (a *App) onFilesChanged(paths []string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if err := a.RemoveStub(path); err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
			}
			continue
		}
		if err := a.ProcessFile(path); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
		}
	}
}

// RemoveStub drops the stub companion of a source that no longer
// exists.
func (a *App) RemoveStub(path string) error {
	dest, _, err := output.WriteStub(path, "")
	if err != nil {
		return err
	}
	slog.Info("stale stub removed", "path", dest)
	return nil
}
