package document

import (
	"bufio"
	"strconv"
	"strings"
)

// Header keys recognized by the parser. Any other key is ignored.
const (
	FieldName        = "name"
	FieldStatus      = "status"
	FieldDescription = "description"
	FieldDependsOn   = "depends_on"
	FieldParallel    = "parallel"
	FieldProgress    = "progress"
	FieldGitHub      = "github"
	FieldCreated     = "created"
	FieldUpdated     = "updated"
	FieldCompletion  = "completion"
	FieldLastSync    = "last_sync"
)

var recognized = map[string]struct{}{
	FieldName:        {},
	FieldStatus:      {},
	FieldDescription: {},
	FieldDependsOn:   {},
	FieldParallel:    {},
	FieldProgress:    {},
	FieldGitHub:      {},
	FieldCreated:     {},
	FieldUpdated:     {},
	FieldCompletion:  {},
	FieldLastSync:    {},
}

const fence = "---"

// Metadata is the typed view of a header block.
type Metadata struct {
	Name        string
	Status      string
	Description string
	// DependsOn keeps the declared order. Only task documents use it.
	DependsOn []string
	Parallel  bool

	Progress   string
	GitHub     string
	Created    string
	Updated    string
	Completion string
	LastSync   string
}

// Fields is the flat key/value view of a header block. Every recognized key
// is present; missing ones map to "".
type Fields map[string]string

// Parse splits content into its header fields and body.
//
// The header block must open on the first non-blank line with "---" and
// close with another "---" line. Inside it each "key: value" line is split
// at the first colon. The first occurrence of a key wins, unknown keys and
// lines without a colon are ignored. A missing or unterminated block yields
// empty fields, the whole text as body and hasHeader == false.
func Parse(content string) (fields Fields, body string, hasHeader bool) {
	fields = make(Fields, len(recognized))
	for k := range recognized {
		fields[k] = ""
	}
	seen := make(map[string]bool, len(recognized))

	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)

	offset := 0
	opened := false
	var pending [][2]string
	for scanner.Scan() {
		line := scanner.Text()
		offset += len(line) + 1
		trimmed := strings.TrimSpace(line)
		if !opened {
			if trimmed == "" {
				continue
			}
			if trimmed != fence {
				return fields, content, false
			}
			opened = true
			continue
		}
		if trimmed == fence {
			for _, kv := range pending {
				if seen[kv[0]] {
					continue
				}
				seen[kv[0]] = true
				fields[kv[0]] = kv[1]
			}
			if offset > len(content) {
				offset = len(content)
			}
			return fields, content[offset:], true
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if _, known := recognized[key]; !known {
			continue
		}
		pending = append(pending, [2]string{key, unquote(strings.TrimSpace(value))})
	}
	return fields, content, false
}

// ParseMetadata parses content and converts the header into Metadata.
func ParseMetadata(content string) (Metadata, string, bool) {
	fields, body, ok := Parse(content)
	return fields.Metadata(), body, ok
}

// Metadata converts the flat fields into their typed form.
func (f Fields) Metadata() Metadata {
	return Metadata{
		Name:        f[FieldName],
		Status:      f[FieldStatus],
		Description: f[FieldDescription],
		DependsOn:   ParseDependsOn(f[FieldDependsOn]),
		Parallel:    parseBool(f[FieldParallel]),
		Progress:    f[FieldProgress],
		GitHub:      f[FieldGitHub],
		Created:     f[FieldCreated],
		Updated:     f[FieldUpdated],
		Completion:  f[FieldCompletion],
		LastSync:    f[FieldLastSync],
	}
}

// ParseDependsOn parses a bracketed, comma separated id list such as
// "[1, 2, 3]". An empty value, "[]" and the bare key name all mean no
// dependencies and return nil. Empty elements are dropped.
func ParseDependsOn(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" || value == FieldDependsOn || value == FieldDependsOn+":" {
		return nil
	}
	value = strings.TrimPrefix(value, "[")
	value = strings.TrimSuffix(value, "]")
	var deps []string
	for _, part := range strings.Split(value, ",") {
		part = unquote(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		deps = append(deps, part)
	}
	return deps
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && b
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// NameOr returns the declared name, or fallback when none is set.
func (m Metadata) NameOr(fallback string) string {
	if m.Name == "" {
		return fallback
	}
	return m.Name
}
