package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantFields map[string]string
		wantBody   string
		wantHeader bool
	}{
		{
			name:       "full header",
			content:    "---\nname: OAuth\nstatus: open\ndepends_on: [1, 2]\nparallel: true\n---\n# OAuth\n",
			wantFields: map[string]string{FieldName: "OAuth", FieldStatus: "open", FieldDependsOn: "[1, 2]", FieldParallel: "true"},
			wantBody:   "# OAuth\n",
			wantHeader: true,
		},
		{
			name:       "first occurrence wins",
			content:    "---\nstatus: open\nstatus: closed\n---\n",
			wantFields: map[string]string{FieldStatus: "open"},
			wantBody:   "",
			wantHeader: true,
		},
		{
			name:       "unknown keys and junk lines are ignored",
			content:    "---\nowner: alice\njust text\nname: x\n---\nbody",
			wantFields: map[string]string{FieldName: "x"},
			wantBody:   "body",
			wantHeader: true,
		},
		{
			name:       "value keeps later colons",
			content:    "---\ndescription: a: b\ncreated: 2024-01-02T03:04:05Z\n---\n",
			wantFields: map[string]string{FieldDescription: "a: b", FieldCreated: "2024-01-02T03:04:05Z"},
			wantBody:   "",
			wantHeader: true,
		},
		{
			name:       "quoted values",
			content:    "---\nname: \"Quoted\"\nstatus: 'open'\n---\n",
			wantFields: map[string]string{FieldName: "Quoted", FieldStatus: "open"},
			wantBody:   "",
			wantHeader: true,
		},
		{
			name:       "leading blank lines and CRLF",
			content:    "\r\n---\r\nname: win\r\n---\r\nbody\r\n",
			wantFields: map[string]string{FieldName: "win"},
			wantBody:   "body\n",
			wantHeader: true,
		},
		{
			name:       "no header",
			content:    "# Title\nstatus: open\n",
			wantFields: map[string]string{},
			wantBody:   "# Title\nstatus: open\n",
			wantHeader: false,
		},
		{
			name:       "unterminated header",
			content:    "---\nname: x\n",
			wantFields: map[string]string{},
			wantBody:   "---\nname: x\n",
			wantHeader: false,
		},
		{
			name:       "empty document",
			content:    "",
			wantFields: map[string]string{},
			wantBody:   "",
			wantHeader: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, body, ok := Parse(tt.content)
			assert.Equal(t, tt.wantHeader, ok)
			assert.Equal(t, tt.wantBody, body)
			assert.Len(t, fields, len(recognized))
			for key := range recognized {
				assert.Equal(t, tt.wantFields[key], fields[key], key)
			}
		})
	}
}

func TestParseDependsOn(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"[1, 2, 3]", []string{"1", "2", "3"}},
		{"[4]", []string{"4"}},
		{"1,2", []string{"1", "2"}},
		{"[1,,2, ]", []string{"1", "2"}},
		{"[\"7\", '8']", []string{"7", "8"}},
		{"[]", nil},
		{"", nil},
		{"  ", nil},
		{"depends_on:", nil},
		{"depends_on", nil},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDependsOn(tt.value))
		})
	}
}

func TestParseMetadata(t *testing.T) {
	meta, body, ok := ParseMetadata("---\nname: Task\nstatus: closed\ndepends_on: [2, 10]\nparallel: TRUE\ncompletion: 40%\n---\nbody")
	assert.True(t, ok)
	assert.Equal(t, "body", body)
	assert.Equal(t, Metadata{
		Name:       "Task",
		Status:     "closed",
		DependsOn:  []string{"2", "10"},
		Parallel:   true,
		Completion: "40%",
	}, meta)

	meta, _, ok = ParseMetadata("no header")
	assert.False(t, ok)
	assert.Equal(t, Metadata{}, meta)
	assert.Equal(t, "fallback", meta.NameOr("fallback"))
}

func TestIsTaskFile(t *testing.T) {
	assert.True(t, IsTaskFile("1.md"))
	assert.True(t, IsTaskFile("0042.md"))
	assert.False(t, IsTaskFile("epic.md"))
	assert.False(t, IsTaskFile("1a.md"))
	assert.False(t, IsTaskFile(".md"))
	assert.False(t, IsTaskFile("12.txt"))
	assert.Equal(t, "12", TaskID("epics/auth/12.md"))
}

func TestCompareIDs(t *testing.T) {
	assert.True(t, CompareIDs("2", "10"))
	assert.False(t, CompareIDs("10", "2"))
	assert.True(t, CompareIDs("02", "2"))
	assert.True(t, CompareIDs("10", "a"))
	assert.True(t, CompareIDs("a", "b"))
	assert.False(t, CompareIDs("3", "3"))
	assert.Equal(t, "task", KindTask.String())
	assert.Equal(t, "other", KindOther.String())
}
