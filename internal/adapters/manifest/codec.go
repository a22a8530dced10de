// Package manifest reads and writes pinned dependency manifests.
package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestCodec = (*Codec)(nil)

var (
	registryPin   = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)(\s*)==(\s*)([A-Za-z0-9][A-Za-z0-9.+!_-]*)$`)
	vcsScheme     = regexp.MustCompile(`^git\+(?:https|http|ssh|git|file)://`)
	inlineComment = regexp.MustCompile(`\s+#`)
)

// byteOrderMark is dropped from the start of a manifest; Render never writes it back.
var byteOrderMark = []byte("\ufeff")

// Codec implements ports.ManifestCodec for requirements files.
type Codec struct{}

// NewCodec creates a new Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Parse classifies every line of data.
func (c *Codec) Parse(path string, data []byte) *domain.Manifest {
	m := &domain.Manifest{Path: path}
	data = bytes.TrimPrefix(data, byteOrderMark)
	if len(data) == 0 {
		return m
	}

	lines := strings.Split(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	m.Entries = make([]domain.Entry, 0, len(lines))
	for i, line := range lines {
		m.Entries = append(m.Entries, ParseLine(i+1, strings.TrimSuffix(line, "\r")))
	}
	return m
}

// ParseLine classifies a single line.
func ParseLine(lineNo int, raw string) domain.Entry {
	e := domain.Entry{Line: lineNo, Raw: raw}

	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		e.Kind = domain.KindBlank
		return e
	case strings.HasPrefix(trimmed, "#"):
		e.Kind = domain.KindComment
		return e
	}

	e.Spaced = trimmed != raw
	body := trimmed
	if loc := inlineComment.FindStringIndex(body); loc != nil {
		e.Comment = strings.TrimSpace(body[loc[1]:])
		body = body[:loc[0]]
	}

	if vcsScheme.MatchString(body) {
		if parseVCS(&e, body) {
			return e
		}
	} else if m := registryPin.FindStringSubmatch(body); m != nil {
		e.Kind = domain.KindRegistry
		e.Name = m[1]
		e.Version = m[4]
		e.Spaced = e.Spaced || m[2] != "" || m[3] != ""
		return e
	}

	return domain.Entry{Line: lineNo, Raw: raw, Kind: domain.KindInvalid}
}

// parseVCS fills a VCS entry. It reports false when no package name can be derived.
func parseVCS(e *domain.Entry, body string) bool {
	location, fragment, _ := strings.Cut(body, "#")

	hostStart := strings.Index(location, "://") + len("://")
	if at := strings.LastIndex(location, "@"); at >= hostStart {
		if ref := location[at+1:]; ref != "" && !strings.Contains(ref, "/") {
			e.Ref = ref
			location = location[:at]
		}
	}

	name := fragmentValue(fragment, "egg")
	if name == "" {
		name = strings.TrimSuffix(location[strings.LastIndex(location, "/")+1:], ".git")
	}
	if name == "" || location[hostStart:] == "" {
		return false
	}

	e.Kind = domain.KindVCS
	e.Name = name
	e.URL = location
	e.Fragment = fragment
	return true
}

func fragmentValue(fragment, key string) string {
	for part := range strings.SplitSeq(fragment, "&") {
		k, v, ok := strings.Cut(part, "=")
		if ok && k == key {
			return v
		}
	}
	return ""
}

// Read loads and parses the manifest at path.
func (c *Codec) Read(path string) (*domain.Manifest, error) {
	// #nosec G304 -- path is provided by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}
	return c.Parse(path, data), nil
}

// Render returns the file content of a manifest.
// Pins are written in canonical form, every other line as it was read.
func (c *Codec) Render(m *domain.Manifest) []byte {
	var buf bytes.Buffer
	for _, e := range m.Entries {
		switch e.Kind {
		case domain.KindRegistry, domain.KindVCS:
			buf.WriteString(e.Pin())
			if e.Comment != "" {
				buf.WriteString("  # ")
				buf.WriteString(e.Comment)
			}
		case domain.KindBlank:
		case domain.KindComment, domain.KindInvalid:
			buf.WriteString(e.Raw)
		}
		buf.WriteByte('\n')
	}

	out := bytes.TrimRight(buf.Bytes(), "\n")
	if len(out) == 0 {
		return nil
	}
	return append(out, '\n')
}

// Write atomically replaces the file at path with the rendered manifest.
func (c *Codec) Write(path string, m *domain.Manifest) error {
	fail := func(err error) error {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	perm := os.FileMode(domain.FilePerm)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fail(err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(c.Render(m)); err != nil {
		_ = tmp.Close()
		return fail(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(err)
	}
	return nil
}
