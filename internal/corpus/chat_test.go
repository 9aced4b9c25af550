// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksolberg/agelex/pkg/types"
)

func TestAgeToMonths(t *testing.T) {
	tests := []struct {
		name string
		age  string
		want int
		ok   bool
	}{
		{name: "years months days", age: "2;06.14", want: 30, ok: true},
		{name: "years months only", age: "1;11", want: 23, ok: true},
		{name: "zero months", age: "4;0.02", want: 48, ok: true},
		{name: "no separator", age: "36", ok: false},
		{name: "missing years", age: ";3", ok: false},
		{name: "missing months", age: "2;", ok: false},
		{name: "empty", age: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AgeToMonths(tt.age)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

const sampleTranscript = `@UTF8
@Begin
@Languages:	eng
@Participants:	CHI Target_Child , MOT Mother
@ID:	eng|Brown|CHI|2;06.14|female|||Target_Child|||
@ID:	eng|Brown|MOT|||||Mother|||
*MOT:	what is that ?
*CHI:	that a doggie .
%mor:	pro:dem|that det:art|a n|doggie .
*CHI:	doggie go woof .
*MOT:	yes it does .
@End
`

func writeTranscript(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFile(t *testing.T) {
	path := writeTranscript(t, t.TempDir(), "boy01.cha", sampleTranscript)

	rows, err := ParseFile(path, "brown")
	require.NoError(t, err)
	require.Len(t, rows, 2, "only target-child utterances survive")

	assert.Equal(t, "that a doggie .", rows[0].Text)
	assert.Equal(t, 30, rows[0].AgeMonths)
	assert.True(t, rows[0].AgeKnown)
	assert.Equal(t, "brown", rows[0].Corpus)
	assert.Equal(t, "boy01.cha", rows[0].File)
	assert.Equal(t, "doggie go woof .", rows[1].Text)
}

func TestParseFileNoChildAge(t *testing.T) {
	// Without a parseable Target_Child age no utterances are usable.
	transcript := `@Begin
@ID:	eng|Brown|CHI||female|||Target_Child|||
*CHI:	hello there .
@End
`
	path := writeTranscript(t, t.TempDir(), "nodate.cha", transcript)

	rows, err := ParseFile(path, "brown")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseAll(t *testing.T) {
	raw := t.TempDir()
	writeTranscript(t, filepath.Join(raw, "brown"), "a.cha", sampleTranscript)
	writeTranscript(t, filepath.Join(raw, "brown"), "b.cha", sampleTranscript)
	writeTranscript(t, filepath.Join(raw, "brown"), "notes.txt", "ignored")

	cfg := types.CorpusConfig{RawDir: raw, Corpora: []string{"brown"}}
	rows, err := ParseAll(cfg, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestParseAllMissingCorpus(t *testing.T) {
	cfg := types.CorpusConfig{RawDir: t.TempDir(), Corpora: []string{"absent"}}
	_, err := ParseAll(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent")
}
