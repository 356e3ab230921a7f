// Package docsource loads playbook documents from disk.
package docsource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/playbook/pkg/playbook/ingest"
	"github.com/cognicore/playbook/pkg/playbook/internalerr"
)

// Options override what would otherwise be inferred from file names.
type Options struct {
	Kind   ingest.Kind // empty: infer from name
	Scope  string      // empty: infer from name
	Niche  string
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Load reads path, which may be a single document, a JSONL bundle or a
// directory of documents. Directory entries are loaded in name order and
// files with unsupported extensions are skipped. An entry that cannot be
// read is logged and reported in the returned error while the rest load.
func Load(path string, opts Options) ([]ingest.Doc, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, unreadable(path, err)
	}
	if !info.IsDir() {
		return loadPath(path, opts)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, unreadable(path, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var docs []ingest.Doc
	var errs []error
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		loaded, err := loadPath(filepath.Join(path, e.Name()), opts)
		if err != nil {
			opts.logger().Warn("skipping unreadable document", zap.String("path", filepath.Join(path, e.Name())), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		docs = append(docs, loaded...)
	}
	if len(docs) == 0 {
		errs = append(errs, fmt.Errorf("%s: no supported documents: %w", path, internalerr.ErrNotFound))
		return nil, errors.Join(errs...)
	}
	return docs, errors.Join(errs...)
}

func loadPath(path string, opts Options) ([]ingest.Doc, error) {
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return LoadJSONL(path, opts)
	}
	doc, err := LoadFile(path, opts)
	if err != nil {
		return nil, err
	}
	return []ingest.Doc{doc}, nil
}

// Supported reports whether name has an extension the loader understands.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".txt", ".html", ".htm", ".jsonl":
		return true
	}
	return false
}

// LoadFile reads one Markdown, text or HTML document. HTML is flattened to
// Markdown-like text so headings and list items survive segmentation.
func LoadFile(path string, opts Options) (ingest.Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ingest.Doc{}, unreadable(path, err)
	}

	name := filepath.Base(path)
	text := string(data)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		text, err = HTMLToText(bytes.NewReader(data))
		if err != nil {
			return ingest.Doc{}, unreadable(path, err)
		}
	}

	doc := ingest.Doc{
		Name:  name,
		Kind:  opts.Kind,
		Scope: opts.Scope,
		Niche: opts.Niche,
		Text:  ingest.Normalize(text),
	}
	if doc.Kind == "" {
		doc.Kind = InferKind(name)
	}
	if doc.Scope == "" {
		doc.Scope = InferScope(name)
	}

	opts.logger().Debug("loaded document",
		zap.String("path", path),
		zap.String("kind", string(doc.Kind)),
		zap.String("scope", doc.Scope),
		zap.Int("bytes", len(data)),
	)
	return doc, nil
}

// bundled is one line of a JSONL bundle.
type bundled struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Scope string `json:"scope"`
	Niche string `json:"niche"`
	Text  string `json:"text"`
}

// LoadJSONL loads documents from a JSONL bundle, one document per line.
// Malformed lines are logged and skipped; fields left empty are inferred
// from the document name, and Options override both.
func LoadJSONL(path string, opts Options) ([]ingest.Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, unreadable(path, err)
	}
	log := opts.logger()

	var docs []ingest.Doc
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var b bundled
		if err := json.Unmarshal([]byte(line), &b); err != nil {
			log.Warn("skipping malformed bundle line", zap.String("path", path), zap.Int("line", i+1), zap.Error(err))
			continue
		}
		if b.Name == "" {
			b.Name = fmt.Sprintf("%s#%d", filepath.Base(path), i+1)
		}

		doc := ingest.Doc{
			Name:  b.Name,
			Kind:  ingest.Kind(b.Kind),
			Scope: b.Scope,
			Niche: b.Niche,
			Text:  ingest.Normalize(b.Text),
		}
		if opts.Kind != "" {
			doc.Kind = opts.Kind
		} else if doc.Kind == "" {
			doc.Kind = InferKind(doc.Name)
		}
		if opts.Scope != "" {
			doc.Scope = opts.Scope
		} else if doc.Scope == "" {
			doc.Scope = InferScope(doc.Name)
		}
		if opts.Niche != "" {
			doc.Niche = opts.Niche
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, unreadable(path, fmt.Errorf("no valid documents found"))
	}
	return docs, nil
}

// InferKind guesses a document kind from its file name.
func InferKind(name string) ingest.Kind {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "template"):
		return ingest.KindTemplates
	case strings.Contains(lower, "task"), strings.Contains(lower, "roadmap"):
		return ingest.KindRoadmap
	}
	return ingest.KindGuide
}

// InferScope guesses the platform a document is written for from its file
// name; documents naming no platform are cross-platform.
func InferScope(name string) string {
	lower := strings.ToLower(name)
	for _, scope := range []string{ingest.ScopeYouTube, ingest.ScopeTikTok, ingest.ScopeTwitch} {
		if strings.Contains(lower, scope) {
			return scope
		}
	}
	return ingest.ScopeAll
}

func unreadable(path string, err error) error {
	return &ingest.InputError{
		Name:  path,
		Cause: fmt.Errorf("%w: %v", internalerr.ErrUnreadable, err),
	}
}
