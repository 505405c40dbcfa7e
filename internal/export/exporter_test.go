package export

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	doc json.RawMessage
	err error
}

func (s stubSource) Export(context.Context, int) (json.RawMessage, error) {
	return s.doc, s.err
}

func TestFileName(t *testing.T) {
	ts := time.Date(2025, 3, 1, 23, 30, 0, 0, time.FixedZone("PST", -8*3600))

	assert.Equal(t, "moodnestai_data_2025-03-02.json", FileName(ts))
}

func TestExportWritesPrettyJSON(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(stubSource{doc: json.RawMessage(`{"user_id":1,"chats":[]}`)}, dir, 1)
	e.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	path, err := e.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "moodnestai_data_2025-03-01.json"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"user_id\": 1,\n  \"chats\": []\n}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExportFailure(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(stubSource{err: errors.New("offline")}, dir, 1)

	_, err := e.Export(context.Background())
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportRejectsNonJSON(t *testing.T) {
	e := NewExporter(stubSource{doc: json.RawMessage(`not json`)}, t.TempDir(), 1)

	_, err := e.Export(context.Background())
	assert.Error(t, err)
}
