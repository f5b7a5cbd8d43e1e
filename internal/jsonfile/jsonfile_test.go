package jsonfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/tree"
)

const tsconfig = `{
  // shared compiler options
  "compilerOptions": {
    "baseUrl": ".",
    "strict": true,
  }
}
`

type compilerOptions struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Strict  bool                `json:"strict"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

func newTree() *tree.Tree {
	return tree.New(tree.NewMemHost(map[string]string{"tsconfig.json": tsconfig}))
}

func TestReadAllowsCommentsAndTrailingCommas(t *testing.T) {
	var cfg compilerOptions
	require.NoError(t, Read(newTree(), "tsconfig.json", &cfg))
	assert.Equal(t, ".", cfg.CompilerOptions.BaseURL)
	assert.True(t, cfg.CompilerOptions.Strict)
}

func TestReadMissing(t *testing.T) {
	var cfg compilerOptions
	err := Read(newTree(), "nope.json", &cfg)
	assert.True(t, errors.IsNotFound(err))
}

func TestPatchCreatesParentsAndKeepsComments(t *testing.T) {
	tr := newTree()

	require.NoError(t, Patch(tr, "tsconfig.json",
		Set(Pointer("compilerOptions", "paths", "@src/*"), []string{"src/*"}),
		Remove(Pointer("compilerOptions", "strict")),
		Remove(Pointer("compilerOptions", "missing")),
	))

	raw, err := tr.ReadString("tsconfig.json")
	require.NoError(t, err)
	assert.Contains(t, raw, "// shared compiler options")

	var cfg compilerOptions
	require.NoError(t, Read(tr, "tsconfig.json", &cfg))
	assert.Equal(t, []string{"src/*"}, cfg.CompilerOptions.Paths["@src/*"])
	assert.False(t, cfg.CompilerOptions.Strict)
	assert.Equal(t, ".", cfg.CompilerOptions.BaseURL)
}

func TestPatchReplacesExisting(t *testing.T) {
	tr := newTree()

	require.NoError(t, Patch(tr, "tsconfig.json", Set("/compilerOptions/baseUrl", "./src")))

	var cfg compilerOptions
	require.NoError(t, Read(tr, "tsconfig.json", &cfg))
	assert.Equal(t, "./src", cfg.CompilerOptions.BaseURL)
}

func TestPointerEscapes(t *testing.T) {
	assert.Equal(t, "/compilerOptions/paths/@src~1*", Pointer("compilerOptions", "paths", "@src/*"))
	assert.Equal(t, "/a~0b", Pointer("a~b"))
}

func TestWrite(t *testing.T) {
	tr := newTree()

	require.NoError(t, Write(tr, "nsconfig.json", map[string]string{"appPath": "src"}))
	raw, err := tr.ReadString("nsconfig.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"appPath\": \"src\"\n}\n", raw)
}
