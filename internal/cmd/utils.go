package cmd

import (
	"os"
	"path/filepath"

	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/tree"
	"github.com/dosanma1/forge-native/internal/workspace"
)

// findWorkspaceRoot walks up from dir to the directory holding angular.json.
func findWorkspaceRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", dir)
	}

	for {
		configPath := filepath.Join(dir, workspace.ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.WithHint(
		errors.NotFoundf("%s in current directory or any parent directory", workspace.ConfigFileName),
		"run forge-native inside an Angular workspace or pass --cwd")
}

// openWorkspace returns a tree over the workspace containing o.cwd.
func (o *globalOptions) openWorkspace() (*tree.Tree, error) {
	root, err := findWorkspaceRoot(o.cwd)
	if err != nil {
		return nil, err
	}
	host, err := tree.NewDiskHost(root)
	if err != nil {
		return nil, err
	}
	return tree.New(host), nil
}
