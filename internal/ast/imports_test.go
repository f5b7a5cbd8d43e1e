package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddImport(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		symbol string
		module string
		want   string
	}{
		{
			name:   "merges into existing declaration",
			src:    "import { NgModule } from '@angular/core';\n",
			symbol: "NO_ERRORS_SCHEMA",
			module: "@angular/core",
			want:   "import { NgModule, NO_ERRORS_SCHEMA } from '@angular/core';\n",
		},
		{
			name:   "already imported",
			src:    "import { NgModule } from '@angular/core';\n",
			symbol: "NgModule",
			module: "@angular/core",
			want:   "import { NgModule } from '@angular/core';\n",
		},
		{
			name:   "namespace import covers every symbol",
			src:    "import * as core from '@angular/core';\n",
			symbol: "NgModule",
			module: "@angular/core",
			want:   "import * as core from '@angular/core';\n",
		},
		{
			name:   "adds named bindings to default import",
			src:    "import D from 'x';\n",
			symbol: "A",
			module: "x",
			want:   "import D, { A } from 'x';\n",
		},
		{
			name:   "new declaration at top of file",
			src:    "import { A } from 'a';\n",
			symbol: "B",
			module: "b",
			want:   "import { B } from 'b';\nimport { A } from 'a';\n",
		},
		{
			name:   "new declaration after directive prologue",
			src:    "'use strict';\nconst x = 1;\n",
			symbol: "B",
			module: "b",
			want:   "'use strict';\nimport { B } from 'b';\nconst x = 1;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := parse(t, tt.src)
			assert.Equal(t, tt.want, apply(t, u, u.AddImport(tt.symbol, tt.module)))
		})
	}
}

func TestAddImportTwiceIsNoop(t *testing.T) {
	u := parse(t, "import { A } from 'a';\n")
	once := apply(t, u, u.AddImport("NativeScriptModule", "@nativescript/angular"))

	again := parse(t, once)
	assert.Empty(t, again.AddImport("NativeScriptModule", "@nativescript/angular"))
}

func TestRemoveImport(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		symbol string
		want   string
	}{
		{
			name:   "only binding removes declaration",
			src:    "import { A } from 'a';\nimport { B } from 'b';\n\nclass X {}\n",
			symbol: "B",
			want:   "import { A } from 'a';\n\nclass X {}\n",
		},
		{
			name:   "only binding of first statement",
			src:    "import { A } from 'a';\nimport { B } from 'b';\n",
			symbol: "A",
			want:   "import { B } from 'b';\n",
		},
		{
			name:   "middle binding",
			src:    "import { A, B, C } from 'x';\n",
			symbol: "B",
			want:   "import { A, C } from 'x';\n",
		},
		{
			name:   "first binding",
			src:    "import { A, B, C } from 'x';\n",
			symbol: "A",
			want:   "import { B, C } from 'x';\n",
		},
		{
			name:   "named binding next to default import",
			src:    "import D, { A } from 'x';\n",
			symbol: "A",
			want:   "import D from 'x';\n",
		},
		{
			name:   "not imported",
			src:    "import { A } from 'a';\n",
			symbol: "Z",
			want:   "import { A } from 'a';\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := parse(t, tt.src)
			assert.Equal(t, tt.want, apply(t, u, u.RemoveImport(tt.symbol)))
		})
	}
}

func TestImportedSymbols(t *testing.T) {
	u := parse(t, "import { A, B as C } from './a';\nimport * as ns from 'ns';\n")

	syms := u.ImportedSymbols()
	require.Len(t, syms, 2)
	assert.Equal(t, "A", syms[0].Local())
	assert.Equal(t, "./a", syms[0].ModulePath)
	assert.Equal(t, "B", syms[1].Name)
	assert.Equal(t, "C", syms[1].Local())

	sym, ok := u.LookupImport("C")
	require.True(t, ok)
	assert.Equal(t, "B", sym.Name)

	_, ok = u.LookupImport("B")
	assert.False(t, ok)
}

func TestRewriteModulePath(t *testing.T) {
	u := parse(t, "import { AppModule } from './app/app.module';\nexport * from '../shared';\n")

	specs := u.ModuleSpecifiers()
	require.Len(t, specs, 2)
	assert.Equal(t, "./app/app.module", u.StringValue(specs[0]))
	assert.Equal(t, "../shared", u.StringValue(specs[1]))

	got := apply(t, u, u.RewriteModulePath(specs[0], "./app/app.module.web"))
	assert.Equal(t, "import { AppModule } from './app/app.module.web';\nexport * from '../shared';\n", got)

	assert.Empty(t, u.RewriteModulePath(specs[1], "../shared"))
}
