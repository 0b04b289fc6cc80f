package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Checklist/Config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "record.json")
	require.NoError(t, os.WriteFile(in, []byte(`{
		"tipoChecklist": "entrega",
		"placa": "ABC1234",
		"acessorios": ["macaco"],
		"anotacoes": "Sem observações."
	}`), 0o600))
	out := filepath.Join(dir, "out.pdf")

	stdout, err := run(t, "render", in, "-o", out, "--at", "2024-03-05T14:30:00Z")
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote "+out)

	first, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))

	_, err = run(t, "render", in, "-o", out, "--at", "2024-03-05T14:30:00Z")
	require.NoError(t, err)
	second, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	noType := filepath.Join(dir, "notype.json")
	require.NoError(t, os.WriteFile(noType, []byte(`{"placa":"ABC1234"}`), 0o600))
	_, err := run(t, "render", noType, "-o", filepath.Join(dir, "x.pdf"))
	assert.ErrorContains(t, err, "Tipo de Checklist")

	_, err = run(t, "render", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = run(t, "render")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "checklist version")
}

type recordingJanitor struct {
	got []Config.DraftsConfig
}

func (r *recordingJanitor) Reconfigure(cfg Config.DraftsConfig) error {
	r.got = append(r.got, cfg)
	return nil
}

func TestReloadDrafts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checklist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
upload:
  url: https://example.com/exec
auth:
  jwt_secret: k3P9vQ2mX7wLr5Zt
drafts:
  retention: 48h
  purge_schedule: "@every 2h"
`), 0o600))

	j := &recordingJanitor{}
	require.NoError(t, reloadDrafts(path, j))
	require.Len(t, j.got, 1)
	assert.Equal(t, 48*time.Hour, j.got[0].Retention)
	assert.Equal(t, "@every 2h", j.got[0].PurgeSchedule)

	require.NoError(t, os.WriteFile(path, []byte("auth:\n  jwt_secret: secret\n"), 0o600))
	assert.Error(t, reloadDrafts(path, j), "an invalid file is not applied")
	assert.Len(t, j.got, 1)
}
