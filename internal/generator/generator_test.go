package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosanma1/forge-native/internal/config"
	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/internal/jsonfile"
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

const packageJSON = `{
  "name": "my-app",
  "dependencies": {
    "@angular/core": "^17.0.0"
  }
}
`

const tsconfigJSON = `{
  // shared compiler settings
  "compilerOptions": {
    "strict": true
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

const appComponentTS = `import { Component } from '@angular/core';

@Component({
  selector: 'app-root',
  templateUrl: './app.component.html'
})
export class AppComponent {}
`

func workspaceFiles() map[string]string {
	return map[string]string{
		"angular.json":                angularJSON,
		"package.json":                packageJSON,
		"tsconfig.json":               tsconfigJSON,
		".gitignore":                  "node_modules/\n",
		"src/main.ts":                 mainTS,
		"src/app/app.module.ts":       appModuleTS,
		"src/app/app.component.ts":    appComponentTS,
		"src/app/app.component.html":  "<h1>app</h1>\n",
		"src/app/shared/util.ts":      "export const x = 1;\n",
		"src/app/home/home.module.ts": homeModuleTS,
		"src/app/home/home.component.ts": `import { Component } from '@angular/core';

import { x } from '../shared/util';
import { helper } from './helper';

@Component({
  selector: 'app-home',
  templateUrl: './home.component.html'
})
export class HomeComponent {}
`,
		"src/app/home/home.component.html": "<p>home</p>\n",
		"src/app/home/helper.ts":           "export const helper = 1;\n",
	}
}

const homeModuleTS = `import { NgModule } from '@angular/core';
import { CommonModule } from '@angular/common';
import { FormsModule } from '@angular/forms';

import { HomeComponent } from './home.component';

@NgModule({
  declarations: [HomeComponent],
  imports: [CommonModule, FormsModule]
})
export class HomeModule {}
`

func newTree(files map[string]string) *tree.Tree {
	return tree.New(tree.NewMemHost(files))
}

func run(t *testing.T, tr *tree.Tree, name string, data map[string]any) error {
	t.Helper()
	return Default().Run(context.Background(), name, GeneratorOptions{
		Tree:   tr,
		Data:   data,
		Config: config.Default(),
	}, nil)
}

func read(t *testing.T, tr *tree.Tree, p string) string {
	t.Helper()
	s, err := tr.ReadString(p)
	require.NoError(t, err, p)
	return s
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{
		"add-ns",
		"component",
		"convert-relative-imports",
		"migrate-component",
		"migrate-module",
		"module",
	}, r.List())

	for _, name := range r.List() {
		g, err := r.Get(name)
		require.NoError(t, err)
		assert.NotEmpty(t, g.Description())
		assert.NotNil(t, g.Schema())
	}

	_, err := r.Get("application")
	assert.True(t, errors.IsNotFound(err))
	assert.False(t, r.Has("application"))

	assert.True(t, errors.IsAlreadyExists(r.Register(NewModuleGenerator())))
}

func TestAddNS(t *testing.T) {
	tr := newTree(workspaceFiles())
	require.NoError(t, run(t, tr, "add-ns", map[string]any{}))

	main := read(t, tr, "src/main.tns.ts")
	assert.Contains(t, main, "import { AppModule } from './app/app.module.tns';")
	assert.Contains(t, main, "bootstrapModule(AppModule)")

	module := read(t, tr, "src/app/app.module.tns.ts")
	assert.Contains(t, module, "import { AppComponent } from './app.component';")
	assert.Contains(t, module, "  declarations: [AppComponent],")
	assert.Contains(t, module, "  imports: [NativeScriptModule],")
	assert.Contains(t, module, "  schemas: [NO_ERRORS_SCHEMA]")

	assert.Contains(t, read(t, tr, "src/app/app.component.tns.html"), "GridLayout")
	assert.Contains(t, read(t, tr, "src/app.css"), "@nativescript/theme")
	assert.Contains(t, read(t, tr, "tsconfig.tns.json"), `"extends": "./tsconfig.json"`)
	assert.Contains(t, read(t, tr, "nsconfig.json"), `"nsext": ".tns"`)

	// web files are untouched
	assert.Equal(t, mainTS, read(t, tr, "src/main.ts"))
	assert.Equal(t, appModuleTS, read(t, tr, "src/app/app.module.ts"))

	var pkg struct {
		Main            string            `json:"main"`
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
		Scripts         map[string]string `json:"scripts"`
	}
	require.NoError(t, jsonfile.Read(tr, "package.json", &pkg))
	assert.Equal(t, "^17.0.0", pkg.Dependencies["@angular/core"])
	assert.Equal(t, "~8.6.0", pkg.Dependencies["@nativescript/core"])
	assert.Equal(t, "~5.0.18", pkg.DevDependencies["@nativescript/webpack"])
	assert.Equal(t, "ns run android", pkg.Scripts["android"])
	assert.Equal(t, "ns run ios", pkg.Scripts["ios"])
	assert.Equal(t, "src/main.tns.ts", pkg.Main)

	tsconfig := read(t, tr, "tsconfig.json")
	assert.Contains(t, tsconfig, "// shared compiler settings")
	var ts struct {
		CompilerOptions struct {
			BaseURL string              `json:"baseUrl"`
			Paths   map[string][]string `json:"paths"`
		} `json:"compilerOptions"`
	}
	require.NoError(t, jsonfile.Read(tr, "tsconfig.json", &ts))
	assert.Equal(t, []string{"src/*.ts"}, ts.CompilerOptions.Paths["@src/*"])
	assert.Equal(t, "./", ts.CompilerOptions.BaseURL)

	gitignore := read(t, tr, ".gitignore")
	assert.Contains(t, gitignore, "node_modules/\n")
	assert.Contains(t, gitignore, "platforms/\n")
	assert.Contains(t, gitignore, "hooks/\n")
}

func TestAddNSWithWebExtension(t *testing.T) {
	tr := newTree(workspaceFiles())
	require.NoError(t, run(t, tr, "add-ns", map[string]any{"webExtension": "web"}))

	assert.False(t, tr.Exists("src/main.ts"))
	assert.False(t, tr.Exists("src/app/app.module.ts"))
	assert.Contains(t, read(t, tr, "src/main.web.ts"), "import { AppModule } from './app/app.module.web';")
	assert.Equal(t, appModuleTS, read(t, tr, "src/app/app.module.web.ts"))
	assert.Contains(t, read(t, tr, "src/main.tns.ts"), "from './app/app.module.tns';")

	ws, err := workspace.Load(tr)
	require.NoError(t, err)
	p := ws.GetProject("my-app")
	require.NotNil(t, p)
	assert.Equal(t, "src/main.web.ts", p.BuildOption("main"))

	var ts struct {
		CompilerOptions struct {
			Paths map[string][]string `json:"paths"`
		} `json:"compilerOptions"`
	}
	require.NoError(t, jsonfile.Read(tr, "tsconfig.json", &ts))
	assert.Equal(t, []string{"src/*.web.ts", "src/*.ts"}, ts.CompilerOptions.Paths["@src/*"])
}

func TestAddNSSameExtensions(t *testing.T) {
	tr := newTree(workspaceFiles())
	err := run(t, tr, "add-ns", map[string]any{"nsExtension": "web", "webExtension": "web"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))
	assert.Empty(t, tr.Actions())
}

func TestAddNSTwice(t *testing.T) {
	tr := newTree(workspaceFiles())
	require.NoError(t, run(t, tr, "add-ns", map[string]any{}))

	err := run(t, tr, "add-ns", map[string]any{})
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestAddNSSample(t *testing.T) {
	tr := newTree(workspaceFiles())
	require.NoError(t, run(t, tr, "add-ns", map[string]any{"sample": true}))

	assert.True(t, tr.Exists("src/app/barcelona/barcelona.component.ts"))
	assert.True(t, tr.Exists("src/app/barcelona/barcelona.component.tns.html"))
	assert.Contains(t, read(t, tr, "src/app/app.module.ts"), "declarations: [AppComponent, BarcelonaComponent]")
	assert.Contains(t, read(t, tr, "src/app/app.module.tns.ts"), "declarations: [AppComponent, BarcelonaComponent]")
}

func TestComponent(t *testing.T) {
	tr := newTree(workspaceFiles())
	require.NoError(t, run(t, tr, "component", map[string]any{"name": "user-profile"}))

	for _, f := range []string{
		"src/app/user-profile/user-profile.component.ts",
		"src/app/user-profile/user-profile.component.html",
		"src/app/user-profile/user-profile.component.tns.html",
		"src/app/user-profile/user-profile.component.css",
	} {
		assert.True(t, tr.Exists(f), f)
	}
	ts := read(t, tr, "src/app/user-profile/user-profile.component.ts")
	assert.Contains(t, ts, "selector: 'app-user-profile',")
	assert.Contains(t, ts, "export class UserProfileComponent { }")

	module := read(t, tr, "src/app/app.module.ts")
	assert.Contains(t, module, "import { UserProfileComponent } from './user-profile/user-profile.component';")
	assert.Contains(t, module, "declarations: [AppComponent, UserProfileComponent],")
	assert.False(t, tr.Exists("src/app/app.module.tns.ts"))
}

func TestComponentDeclaresInMobileModule(t *testing.T) {
	tr := newTree(workspaceFiles())
	require.NoError(t, run(t, tr, "add-ns", map[string]any{}))
	require.NoError(t, run(t, tr, "component", map[string]any{"name": "about", "flat": true, "prefix": "my"}))

	assert.True(t, tr.Exists("src/app/about.component.ts"))
	assert.Contains(t, read(t, tr, "src/app/about.component.ts"), "selector: 'my-about',")

	mobile := read(t, tr, "src/app/app.module.tns.ts")
	assert.Contains(t, mobile, "import { AboutComponent } from './about.component';")
	assert.Contains(t, mobile, "declarations: [AppComponent, AboutComponent],")
}

func TestComponentSkipImport(t *testing.T) {
	tr := newTree(workspaceFiles())
	require.NoError(t, run(t, tr, "component", map[string]any{"name": "about", "skipImport": true}))

	assert.True(t, tr.Exists("src/app/about/about.component.ts"))
	assert.Equal(t, appModuleTS, read(t, tr, "src/app/app.module.ts"))
}

func TestComponentErrors(t *testing.T) {
	tr := newTree(workspaceFiles())

	err := run(t, tr, "component", map[string]any{"name": "about", "module": "missing"})
	assert.True(t, errors.IsNotFound(err))

	err = run(t, tr, "component", map[string]any{"name": "1about"})
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))

	err = run(t, tr, "component", map[string]any{})
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))
}

func TestModule(t *testing.T) {
	tr := newTree(workspaceFiles())
	require.NoError(t, run(t, tr, "add-ns", map[string]any{}))
	require.NoError(t, run(t, tr, "module", map[string]any{"name": "shared-ui", "module": "app"}))

	web := read(t, tr, "src/app/shared-ui/shared-ui.module.ts")
	assert.Contains(t, web, "imports: [CommonModule]")
	assert.Contains(t, web, "export class SharedUiModule { }")

	mobile := read(t, tr, "src/app/shared-ui/shared-ui.module.tns.ts")
	assert.Contains(t, mobile, "imports: [NativeScriptCommonModule],")
	assert.Contains(t, mobile, "schemas: [NO_ERRORS_SCHEMA]")

	assert.Contains(t, read(t, tr, "src/app/app.module.ts"), "imports: [BrowserModule, SharedUiModule],")
	assert.Contains(t, read(t, tr, "src/app/app.module.ts"), "import { SharedUiModule } from './shared-ui/shared-ui.module';")
	assert.Contains(t, read(t, tr, "src/app/app.module.tns.ts"), "imports: [NativeScriptModule, SharedUiModule],")
}

func TestModuleSkipFlags(t *testing.T) {
	tr := newTree(workspaceFiles())
	require.NoError(t, run(t, tr, "module", map[string]any{"name": "extras", "web": false, "flat": true}))

	assert.False(t, tr.Exists("src/app/extras.module.ts"))
	assert.True(t, tr.Exists("src/app/extras.module.tns.ts"))

	err := run(t, tr, "module", map[string]any{"name": "none", "web": false, "nativescript": false})
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))
}

func TestMigrateModule(t *testing.T) {
	tr := newTree(workspaceFiles())
	require.NoError(t, run(t, tr, "migrate-module", map[string]any{"name": "home"}))

	mobile := read(t, tr, "src/app/home/home.module.tns.ts")
	assert.Contains(t, mobile, "import { NativeScriptCommonModule, NativeScriptFormsModule } from '@nativescript/angular';")
	assert.Contains(t, mobile, "import { NgModule, NO_ERRORS_SCHEMA } from '@angular/core';")
	assert.Contains(t, mobile, "imports: [NativeScriptCommonModule, NativeScriptFormsModule],")
	assert.Contains(t, mobile, "schemas: [NO_ERRORS_SCHEMA]")
	assert.Contains(t, mobile, "declarations: [HomeComponent],")
	assert.NotContains(t, mobile, "@angular/common")
	assert.NotContains(t, mobile, "@angular/forms")

	assert.Equal(t, homeModuleTS, read(t, tr, "src/app/home/home.module.ts"))
	assert.Contains(t, read(t, tr, "src/app/home/home.component.tns.html"), "HomeComponent")

	err := run(t, tr, "migrate-module", map[string]any{"name": "home"})
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestMigrateModuleSwapsExports(t *testing.T) {
	files := workspaceFiles()
	files["src/app/shared/shared.module.ts"] = `import { NgModule } from '@angular/core';
import { CommonModule } from '@angular/common';

@NgModule({
  imports: [CommonModule],
  exports: [CommonModule]
})
export class SharedModule {}
`
	tr := newTree(files)
	require.NoError(t, run(t, tr, "migrate-module", map[string]any{"name": "shared"}))

	mobile := read(t, tr, "src/app/shared/shared.module.tns.ts")
	assert.Contains(t, mobile, "import { NativeScriptCommonModule } from '@nativescript/angular';")
	assert.Contains(t, mobile, "imports: [NativeScriptCommonModule],")
	assert.Contains(t, mobile, "exports: [NativeScriptCommonModule],")
	assert.Contains(t, mobile, "schemas: [NO_ERRORS_SCHEMA]")
	assert.NotContains(t, mobile, "@angular/common")
	assert.NotContains(t, mobile, "[CommonModule")
}

func TestMigrateModuleErrors(t *testing.T) {
	tr := newTree(workspaceFiles())

	err := run(t, tr, "migrate-module", map[string]any{"name": "settings"})
	assert.True(t, errors.IsNotFound(err))
	assert.NotEmpty(t, errors.GetAllHints(err))

	err = run(t, tr, "migrate-module", map[string]any{"name": "home", "path": "src/app/home/missing.module.ts"})
	assert.True(t, errors.IsNotFound(err))
}

func TestMigrateComponent(t *testing.T) {
	files := workspaceFiles()
	files["src/app/app.module.tns.ts"] = `import { NgModule, NO_ERRORS_SCHEMA } from '@angular/core';
import { NativeScriptModule } from '@nativescript/angular';

import { AppComponent } from './app.component';

@NgModule({
  declarations: [AppComponent],
  imports: [NativeScriptModule],
  bootstrap: [AppComponent],
  schemas: [NO_ERRORS_SCHEMA]
})
export class AppModule {}
`
	files["src/app/app.module.ts"] = `import { NgModule } from '@angular/core';
import { BrowserModule } from '@angular/platform-browser';

import { AppComponent } from './app.component';
import { HomeComponent } from './home/home.component';

@NgModule({
  declarations: [AppComponent, HomeComponent],
  imports: [BrowserModule],
  bootstrap: [AppComponent]
})
export class AppModule {}
`
	tr := newTree(files)
	require.NoError(t, run(t, tr, "migrate-component", map[string]any{"name": "home"}))

	assert.True(t, tr.Exists("src/app/home/home.component.tns.html"))
	mobile := read(t, tr, "src/app/app.module.tns.ts")
	assert.Contains(t, mobile, "import { HomeComponent } from './home/home.component';")
	assert.Contains(t, mobile, "declarations: [AppComponent, HomeComponent],")

	err := run(t, tr, "migrate-component", map[string]any{"name": "missing"})
	assert.True(t, errors.IsNotFound(err))
}

func TestConvertRelativeImports(t *testing.T) {
	tr := newTree(workspaceFiles())
	require.NoError(t, run(t, tr, "convert-relative-imports", map[string]any{}))

	home := read(t, tr, "src/app/home/home.component.ts")
	assert.Contains(t, home, "import { x } from '@src/app/shared/util';")
	assert.Contains(t, home, "import { helper } from './helper';")
	assert.Equal(t, mainTS, read(t, tr, "src/main.ts"))

	var ts struct {
		CompilerOptions struct {
			Paths map[string][]string `json:"paths"`
		} `json:"compilerOptions"`
	}
	require.NoError(t, jsonfile.Read(tr, "tsconfig.json", &ts))
	assert.Equal(t, []string{"src/*.ts"}, ts.CompilerOptions.Paths["@src/*"])
}

func TestSrcImport(t *testing.T) {
	fn := srcImport("src", "src/app/home/home.component.ts")
	tests := []struct {
		spec, want string
		ok         bool
	}{
		{"../shared/util", "@src/app/shared/util", true},
		{"../../environments/environment", "@src/environments/environment", true},
		{"../../../outside", "", false},
		{"./helper", "", false},
		{"@angular/core", "", false},
	}
	for _, tt := range tests {
		got, ok := fn(tt.spec)
		assert.Equal(t, tt.ok, ok, tt.spec)
		assert.Equal(t, tt.want, got, tt.spec)
	}
}
