package sink

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/report/mocks"
)

func TestFileWritesAtomically(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	file := &File{Dir: dir}

	require.Nil(t, file.Deliver("donation-report-2025-abc.pdf", []byte("%PDF-1.3 test")))

	target := filepath.Join(dir, "donation-report-2025-abc.pdf")
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 test", string(content))
	assert.Equal(t, target, file.Written())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestFileExplicitPathOverwrites(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))

	file := &File{Dir: "ignored", Path: target}
	require.Nil(t, file.Deliver("name.pdf", []byte("new")))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestFileFailureKeepsPreviousContent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report.pdf")
	// a directory where the file should go makes the rename fail
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0o644))

	file := &File{Path: target}
	assert.NotNil(t, file.Deliver("report.pdf", []byte("%PDF")))
	assert.Empty(t, file.Written())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestViewerOpensSavedFile(t *testing.T) {
	var opened string
	viewer := &Viewer{
		File: File{Dir: t.TempDir()},
		Open: func(path string) error {
			opened = path
			return nil
		},
	}

	require.Nil(t, viewer.Deliver("report.pdf", []byte("%PDF")))
	assert.Equal(t, viewer.File.Written(), opened)
	_, err := os.Stat(opened)
	assert.NoError(t, err)

	viewer.Open = func(string) error { return errors.New("no display") }
	assert.NotNil(t, viewer.Deliver("report.pdf", []byte("%PDF")))
}

func TestBufferKeepsCopy(t *testing.T) {
	document := []byte("%PDF")
	buffer := &Buffer{}
	require.Nil(t, buffer.Deliver("a.pdf", document))
	document[0] = 'X'

	name, stored := buffer.Document()
	assert.Equal(t, "a.pdf", name)
	assert.Equal(t, "%PDF", string(stored))
}

func TestFanoutStopsAtFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockSink(ctrl)
	second := mocks.NewMockSink(ctrl)
	third := mocks.NewMockSink(ctrl)

	gomock.InOrder(
		first.EXPECT().Deliver("r.pdf", []byte("%PDF")).Return(nil),
		second.EXPECT().Deliver("r.pdf", []byte("%PDF")).Return(xerr.NewError(errors.New("smtp down"), "send report", "r.pdf")),
	)
	third.EXPECT().Deliver(gomock.Any(), gomock.Any()).Times(0)

	assert.NotNil(t, Fanout{first, second, third}.Deliver("r.pdf", []byte("%PDF")))
}
