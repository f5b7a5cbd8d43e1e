package codemod

import (
	"github.com/dosanma1/forge-native/internal/ast"
	"github.com/dosanma1/forge-native/internal/change"
	"github.com/dosanma1/forge-native/internal/errors"
)

// AddImport binds symbol from module.
func AddImport(symbol, module string) Step {
	return func(u *ast.Unit) ([]change.Edit, error) {
		return u.AddImport(symbol, module), nil
	}
}

// RemoveImport drops every named binding of symbol.
func RemoveImport(symbol string) Step {
	return func(u *ast.Unit) ([]change.Edit, error) {
		return u.RemoveImport(symbol), nil
	}
}

// AddToDecoratorField appends symbol to the array under field in the
// decorator metadata of class. Missing metadata is an error.
func AddToDecoratorField(class, decorator, field, symbol string) Step {
	return func(u *ast.Unit) ([]change.Edit, error) {
		ref, err := u.ClassMetadata(class, decorator)
		if err != nil {
			return nil, err
		}
		return u.AddToArrayField(ref.Object, field, symbol), nil
	}
}

// RemoveFromDecoratorField drops symbol from the array under field in every
// decorator of that name in the file.
func RemoveFromDecoratorField(decorator, field, symbol string) Step {
	return func(u *ast.Unit) ([]change.Edit, error) {
		decorators, err := u.Decorators(decorator)
		if err != nil {
			return nil, err
		}
		return u.RemoveFromArrayField(decorators, field, symbol), nil
	}
}

// ReplaceSymbol swaps one array element for another in every decorator of
// that name, moving the import along with it. When field of class's
// metadata does not list from nothing changes. Otherwise every other array
// of that metadata listing from, such as exports, is swapped as well so the
// removed import leaves no reference behind.
func ReplaceSymbol(class, decorator, field, from, to, toModule string) []Step {
	var fields []string
	return []Step{
		func(u *ast.Unit) ([]change.Edit, error) {
			fields = nil
			ref, err := u.ClassMetadata(class, decorator)
			if err != nil {
				return nil, err
			}
			if !contains(u.ArrayFieldValues(ref.Object, field), from) {
				return nil, nil
			}
			fields = append(fields, field)
			for _, prop := range u.Properties(ref.Object) {
				name := u.PropertyName(prop)
				if name != "" && name != field && contains(u.ArrayFieldValues(ref.Object, name), from) {
					fields = append(fields, name)
				}
			}

			decorators, err := u.Decorators(decorator)
			if err != nil {
				return nil, err
			}
			var edits []change.Edit
			for _, f := range fields {
				edits = append(edits, u.RemoveFromArrayField(decorators, f, from)...)
			}
			return edits, nil
		},
		func(u *ast.Unit) ([]change.Edit, error) {
			if len(fields) == 0 {
				return nil, nil
			}
			return u.RemoveImport(from), nil
		},
		func(u *ast.Unit) ([]change.Edit, error) {
			if len(fields) == 0 {
				return nil, nil
			}
			ref, err := u.ClassMetadata(class, decorator)
			if err != nil {
				return nil, err
			}
			var edits []change.Edit
			for _, f := range fields {
				edits = append(edits, u.AddToArrayField(ref.Object, f, to)...)
			}
			return edits, nil
		},
		func(u *ast.Unit) ([]change.Edit, error) {
			if len(fields) == 0 {
				return nil, nil
			}
			return u.AddImport(to, toModule), nil
		},
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// ReplaceImportPath points the import of symbol at a new module path.
func ReplaceImportPath(symbol, path string) Step {
	return func(u *ast.Unit) ([]change.Edit, error) {
		sym, ok := u.LookupImport(symbol)
		if !ok {
			return nil, errors.NotFoundf("import of %s in %s", symbol, u.Path())
		}
		return u.RewriteModulePath(sym.Declaration.ChildByFieldName("source"), path), nil
	}
}

// RewriteModulePaths maps every import and re-export specifier through fn.
// fn returns the new path and whether to change it.
func RewriteModulePaths(fn func(spec string) (string, bool)) Step {
	return func(u *ast.Unit) ([]change.Edit, error) {
		var edits []change.Edit
		for _, src := range u.ModuleSpecifiers() {
			if next, ok := fn(u.StringValue(src)); ok {
				edits = append(edits, u.RewriteModulePath(src, next)...)
			}
		}
		return edits, nil
	}
}
