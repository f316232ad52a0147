package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/profile-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile(first string) types.CandidateProfile {
	profile := types.NewCandidateProfile("https://www.linkedin.com/in/" + first + "/")
	profile.FirstName = first
	profile.Skills = []string{"Go"}
	return profile
}

func TestWriteProfiles_SingleIsObject(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeProfiles("", &buf, []types.CandidateProfile{sampleProfile("jane")}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "jane", got["firstName"])
	assert.Equal(t, []any{}, got["experiences"])
}

func TestWriteProfiles_ManyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeProfiles("", &buf, []types.CandidateProfile{sampleProfile("a"), sampleProfile("b")}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1]["firstName"])
}

func TestWriteProfiles_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	want := []types.CandidateProfile{sampleProfile("a"), sampleProfile("b")}

	var stdout bytes.Buffer
	require.NoError(t, writeProfiles(path, &stdout, want))
	assert.Empty(t, stdout.String())

	got, err := readProfiles(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadProfiles_SingleObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.json")
	require.NoError(t, writeProfiles(path, nil, []types.CandidateProfile{sampleProfile("jane")}))

	got, err := readProfiles(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "jane", got[0].FirstName)
}

func TestReadProfiles_Errors(t *testing.T) {
	_, err := readProfiles(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read profile file")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`"nope"`), 0644))
	_, err = readProfiles(path)
	assert.ErrorContains(t, err, "failed to parse profile JSON")
}

func TestExtractProfiles_Batch(t *testing.T) {
	good := writeHTML(t, "jane.html", namedPageHTML)
	missing := filepath.Join(t.TempDir(), "missing.html")

	profiles, err := extractProfiles(context.Background(), testConfig(), []string{good, missing}, nil, false)
	assert.EqualError(t, err, "1 of 2 inputs failed")
	require.Len(t, profiles, 1)
	assert.Equal(t, "Jane", profiles[0].FirstName)
}

func TestExtractProfiles_SingleFailureIsReturnedAsIs(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.html")

	_, err := extractProfiles(context.Background(), testConfig(), []string{missing}, nil, false)
	assert.ErrorContains(t, err, "failed to read HTML file")
}
