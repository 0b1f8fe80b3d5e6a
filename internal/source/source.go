// Package source loads annotated query files. A query file's leading
// comment lines carry its title and description; the rest is the
// executable body. A file with no leading comments is a setup statement:
// executed for side effects, absent from the report.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gosimple/slug"
)

// Query is one annotated query file.
type Query struct {
	File  string
	Title string
	Desc  string
	Body  string
	Slug  string
}

// IsSetup reports whether the query is a titleless setup statement.
func (q Query) IsSetup() bool { return q.Title == "" }

// Parse splits file contents into title, description and query body.
// Leading lines starting with the comment marker contribute to metadata:
// the first becomes the title, the rest the description. The first
// non-comment line ends metadata capture; from there on every line,
// including later comment lines, belongs to the body verbatim.
func Parse(contents string) (title, desc, body string) {
	var descLines, bodyLines []string
	titleSeen := false
	inBody := false

	for _, line := range strings.Split(contents, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !inBody && strings.HasPrefix(line, "--") {
			text := strings.TrimLeft(line, "- ")
			if !titleSeen {
				title = text
				titleSeen = true
			} else {
				descLines = append(descLines, text)
			}
			continue
		}
		inBody = true
		bodyLines = append(bodyLines, line)
	}

	title = strings.TrimSpace(title)
	desc = strings.TrimSpace(strings.Join(descLines, "\n"))
	body = strings.TrimSpace(strings.Join(bodyLines, "\n"))
	return title, desc, body
}

// Read loads and parses a single query file.
func Read(path string) (Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Query{}, fmt.Errorf("read query file: %w", err)
	}
	title, desc, body := Parse(string(data))
	return Query{
		File:  path,
		Title: title,
		Desc:  desc,
		Body:  body,
		Slug:  slug.Make(title),
	}, nil
}

// LoadReports loads the report queries: files matching ??-*.sql in a
// directory, sorted by name. A path to a single file is also accepted.
func LoadReports(path string) ([]Query, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat sql path: %w", err)
	}
	if !info.IsDir() {
		q, err := Read(path)
		if err != nil {
			return nil, err
		}
		return []Query{q}, nil
	}
	return readGlob(filepath.Join(path, "??-*.sql"))
}

// LoadRunDetails loads the per-run detail queries (run-*.sql), sorted.
func LoadRunDetails(dir string) ([]Query, error) {
	return readGlob(filepath.Join(dir, "run-*.sql"))
}

// LoadEnvDetails loads the per-environment detail query, if present.
func LoadEnvDetails(dir string) (Query, bool, error) {
	path := filepath.Join(dir, "env_details.sql")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Query{}, false, nil
	}
	q, err := Read(path)
	if err != nil {
		return Query{}, false, err
	}
	return q, true, nil
}

func readGlob(pattern string) ([]Query, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(files)

	queries := make([]Query, 0, len(files))
	for _, file := range files {
		q, err := Read(file)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, nil
}
