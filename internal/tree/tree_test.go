package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosanma1/forge-native/internal/change"
	"github.com/dosanma1/forge-native/internal/errors"
)

func newTree() (*Tree, *MemHost) {
	host := NewMemHost(map[string]string{
		"src/main.ts":           "import { AppModule } from './app/app.module';\n",
		"src/app/app.module.ts": "export class AppModule {}\n",
		"package.json":          "{}\n",
	})
	return New(host), host
}

func TestStagingIsInvisibleToHost(t *testing.T) {
	tr, host := newTree()

	require.NoError(t, tr.Create("src/main.tns.ts", []byte("ns")))
	require.NoError(t, tr.Overwrite("package.json", []byte("{\"a\":1}\n")))

	got, err := tr.ReadString("src/main.tns.ts")
	require.NoError(t, err)
	assert.Equal(t, "ns", got)
	assert.False(t, host.Exists("src/main.tns.ts"))
	assert.Equal(t, "{}\n", host.Content("package.json"))
}

func TestCreateOverwriteErrors(t *testing.T) {
	tr, _ := newTree()

	err := tr.Create("package.json", []byte("x"))
	assert.True(t, errors.IsAlreadyExists(err))

	err = tr.Overwrite("missing.ts", []byte("x"))
	assert.True(t, errors.IsNotFound(err))

	_, err = tr.Read("missing.ts")
	assert.True(t, errors.IsNotFound(err))
}

func TestRenameAndDelete(t *testing.T) {
	tr, host := newTree()

	require.NoError(t, tr.Rename("src/main.ts", "src/main.web.ts"))
	assert.False(t, tr.Exists("src/main.ts"))
	assert.True(t, tr.Exists("src/main.web.ts"))

	err := tr.Rename("src/main.web.ts", "package.json")
	assert.True(t, errors.IsAlreadyExists(err))

	require.NoError(t, tr.Delete("package.json"))
	assert.False(t, tr.Exists("package.json"))

	require.NoError(t, tr.Flush(context.Background()))
	assert.False(t, host.Exists("src/main.ts"))
	assert.Equal(t, "import { AppModule } from './app/app.module';\n", host.Content("src/main.web.ts"))
	assert.False(t, host.Exists("package.json"))
	assert.Empty(t, tr.Actions())
}

func TestActionsFoldRepeatedWrites(t *testing.T) {
	tr, _ := newTree()

	require.NoError(t, tr.Create("a.ts", []byte("1")))
	require.NoError(t, tr.Overwrite("a.ts", []byte("2")))
	require.NoError(t, tr.Overwrite("package.json", []byte("3")))

	actions := tr.Actions()
	require.Len(t, actions, 2)
	assert.Equal(t, ActionCreate, actions[0].Kind)
	assert.Equal(t, "2", string(actions[0].Content))
	assert.Equal(t, "UPDATE package.json (1 bytes)", actions[1].String())
}

func TestFiles(t *testing.T) {
	tr, _ := newTree()

	require.NoError(t, tr.Create("src/app/app.module.tns.ts", []byte("x")))
	require.NoError(t, tr.Delete("src/main.ts"))

	files, err := tr.Files("src", ".ts")
	require.NoError(t, err)
	assert.Equal(t, []string{"src/app/app.module.tns.ts", "src/app/app.module.ts"}, files)

	all, err := tr.Files("", "")
	require.NoError(t, err)
	assert.Contains(t, all, "package.json")
}

func TestRecorderCommit(t *testing.T) {
	tr, _ := newTree()

	rec, err := tr.BeginUpdate("src/app/app.module.ts")
	require.NoError(t, err)
	require.NoError(t, change.Apply(rec, []change.Edit{
		change.Insert{Path: rec.Path(), Pos: 0, Text: "@NgModule({})\n"},
		change.Delete{Path: rec.Path(), Start: 0, End: 7},
	}))
	require.NoError(t, tr.CommitUpdate(rec))

	got, err := tr.ReadString("src/app/app.module.ts")
	require.NoError(t, err)
	assert.Equal(t, "@NgModule({})\nclass AppModule {}\n", got)
}

func TestRecorderOutOfRange(t *testing.T) {
	tr, _ := newTree()

	rec, err := tr.BeginUpdate("package.json")
	require.NoError(t, err)
	assert.Error(t, rec.InsertLeft(10, "x"))
	assert.Error(t, rec.Remove(2, 1))
	assert.Empty(t, rec.Edits())
}

func TestRecorderStale(t *testing.T) {
	tr, _ := newTree()

	rec, err := tr.BeginUpdate("package.json")
	require.NoError(t, err)
	require.NoError(t, rec.InsertLeft(1, "\"a\":1"))

	require.NoError(t, tr.Overwrite("package.json", []byte("{\"b\":2}\n")))

	err = tr.CommitUpdate(rec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrStaleUpdate))
}

func TestRecorderConflict(t *testing.T) {
	tr, _ := newTree()

	rec, err := tr.BeginUpdate("src/app/app.module.ts")
	require.NoError(t, err)
	require.NoError(t, rec.Remove(0, 12))
	require.NoError(t, rec.InsertLeft(3, "x"))

	err = tr.CommitUpdate(rec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))

	got, err := tr.ReadString("src/app/app.module.ts")
	require.NoError(t, err)
	assert.Equal(t, "export class AppModule {}\n", got)
}
