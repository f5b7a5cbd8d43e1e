package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosanma1/forge-native/internal/config"
	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/tree"
	"github.com/dosanma1/forge-native/internal/workspace"
)

const angularJSON = `{
  "version": 1,
  "projects": {
    "my-app": {
      "root": "",
      "sourceRoot": "src",
      "projectType": "application",
      "prefix": "app",
      "architect": {
        "build": {
          "builder": "@angular-devkit/build-angular:browser",
          "options": { "main": "src/main.ts" }
        }
      }
    }
  }
}
`

const mainTS = `import { platformBrowserDynamic } from '@angular/platform-browser-dynamic';

import { AppModule } from './app/app.module';

platformBrowserDynamic()
  .bootstrapModule(AppModule)
  .catch(err => console.error(err));
`

const appModuleTS = `import { NgModule } from '@angular/core';
import { BrowserModule } from '@angular/platform-browser';

import { AppComponent } from './app.component';

@NgModule({
    declarations: [AppComponent],
    imports: [BrowserModule],
    bootstrap: [AppComponent]
})
export class AppModule {}
`

func load(t *testing.T, files map[string]string) (*Settings, error) {
	t.Helper()
	tr := tree.New(tree.NewMemHost(files))
	ws, err := workspace.Load(tr)
	require.NoError(t, err)
	return Load(context.Background(), tr, ws, "", config.Default())
}

func TestLoadModuleApp(t *testing.T) {
	s, err := load(t, map[string]string{
		"angular.json":          angularJSON,
		"tsconfig.json":         "{}",
		"src/main.ts":           mainTS,
		"src/app/app.module.ts": appModuleTS,
	})
	require.NoError(t, err)

	assert.Equal(t, "my-app", s.Project)
	assert.Equal(t, "src", s.SourceRoot)
	assert.Equal(t, "src/app", s.AppRoot)
	assert.Equal(t, "src/main.ts", s.MainPath)
	assert.False(t, s.Standalone)
	assert.Equal(t, "AppModule", s.EntryModuleClassName)
	assert.Equal(t, "./app/app.module", s.EntryModuleImportPath)
	assert.Equal(t, "src/app/app.module.ts", s.EntryModulePath)
	assert.Equal(t, "AppComponent", s.EntryComponentClassName)
	assert.Equal(t, "./app.component", s.EntryComponentImportPath)
	assert.Equal(t, "src/app/app.component.ts", s.EntryComponentPath)
	assert.Equal(t, "tns", s.NsExtension)
	assert.Equal(t, "tsconfig.json", s.TsConfig)
	assert.Equal(t, "    ", s.Indentation)
	assert.Equal(t, "src/app/app.module.tns.ts", s.MobilePath(s.EntryModulePath))
	assert.Equal(t, s.EntryModulePath, s.WebPath(s.EntryModulePath))
}

func TestLoadStandaloneApp(t *testing.T) {
	s, err := load(t, map[string]string{
		"angular.json": angularJSON,
		"src/main.ts": `import { bootstrapApplication } from '@angular/platform-browser';
import { AppComponent } from './app/app.component';
import { appConfig } from './app/app.config';

bootstrapApplication(AppComponent, appConfig);
`,
	})
	require.NoError(t, err)
	assert.True(t, s.Standalone)
	assert.Empty(t, s.EntryModuleClassName)
	assert.Equal(t, "AppComponent", s.EntryComponentClassName)
	assert.Equal(t, "src/app/app.component.ts", s.EntryComponentPath)
}

func TestLoadMissingMain(t *testing.T) {
	_, err := load(t, map[string]string{"angular.json": angularJSON})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestLoadWithoutBootstrap(t *testing.T) {
	_, err := load(t, map[string]string{
		"angular.json": angularJSON,
		"src/main.ts":  "console.log('hi');\n",
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadModuleWithoutBootstrapArray(t *testing.T) {
	_, err := load(t, map[string]string{
		"angular.json":          angularJSON,
		"src/main.ts":           mainTS,
		"src/app/app.module.ts": "@NgModule({ declarations: [] })\nexport class AppModule {}\n",
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "bootstrap component of AppModule")
}

func TestWithExtension(t *testing.T) {
	assert.Equal(t, "src/main.tns.ts", WithExtension("src/main.ts", "tns"))
	assert.Equal(t, "src/app/app.component.tns.html", WithExtension("src/app/app.component.html", "tns"))
	assert.Equal(t, "src/main.ts", WithExtension("src/main.ts", ""))
	assert.Equal(t, "a.b/Makefile.web", WithExtension("a.b/Makefile", "web"))
}

func TestPlatformPaths(t *testing.T) {
	s := &Settings{NsExtension: "tns", WebExtension: "web"}
	assert.Equal(t, "src/app/app.module.ts", s.CommonPath("src/app/app.module.web.ts"))
	assert.Equal(t, "src/app/app.module.ts", s.CommonPath("src/app/app.module.tns.ts"))
	assert.Equal(t, "src/app/app.module.ts", s.CommonPath("src/app/app.module.ts"))
	assert.Equal(t, "src/app/app.module.tns.ts", s.MobilePath("src/app/app.module.web.ts"))
	assert.Equal(t, "src/app/app.module.web.ts", s.WebPath("src/app/app.module.tns.ts"))
	assert.Equal(t, "src/web/main.ts", s.CommonPath("src/web/main.ts"))
}

func TestResolveModuleFile(t *testing.T) {
	assert.Equal(t, "src/app/app.module.ts", ResolveModuleFile("src/main.ts", "./app/app.module"))
	assert.Equal(t, "src/shared/util.ts", ResolveModuleFile("src/app/app.module.ts", "../shared/util"))
	assert.Empty(t, ResolveModuleFile("src/main.ts", "@angular/core"))
}

func TestRelativeImport(t *testing.T) {
	tests := []struct {
		from, file, want string
	}{
		{"src/app/app.module.ts", "src/app/home/home.component.ts", "./home/home.component"},
		{"src/app/home/home.module.ts", "src/app/app.component.ts", "../app.component"},
		{"src/main.ts", "src/app/app.module.tns.ts", "./app/app.module.tns"},
		{"main.ts", "app.module.ts", "./app.module"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeImport(tt.from, tt.file), "%s -> %s", tt.from, tt.file)
	}
}
