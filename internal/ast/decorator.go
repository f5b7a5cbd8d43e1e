package ast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dosanma1/forge-native/internal/errors"
)

// ClassMetadataRef identifies the metadata object of one decorator on one
// class. It stays valid only as long as the Unit it came from.
type ClassMetadataRef struct {
	ClassName     string
	DecoratorName string
	Object        *sitter.Node
}

// DecoratorName returns the name a decorator is applied by: the identifier
// for @Foo and @Foo(...), the property for @ns.Foo(...).
func (u *Unit) DecoratorName(d *sitter.Node) string {
	expr := firstNamed(d)
	if expr == nil {
		return ""
	}
	switch kindOf(expr) {
	case KindIdentifier:
		return u.Text(expr)
	case KindMember:
		return u.Text(expr.ChildByFieldName("property"))
	case KindCall:
		return u.calleeName(expr)
	}
	return ""
}

// DecoratorObject returns the first argument of a decorator call when it is
// an object literal.
func (u *Unit) DecoratorObject(d *sitter.Node) *sitter.Node {
	expr := firstNamed(d)
	if expr == nil || kindOf(expr) != KindCall {
		return nil
	}
	args := expr.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	first := namedChildren(args)
	if len(first) == 0 || kindOf(first[0]) != KindObject {
		return nil
	}
	return first[0]
}

// Decorators returns every decorator named name in the file. A leading @
// in name is ignored.
func (u *Unit) Decorators(name string) ([]*sitter.Node, error) {
	return u.FindAll(Pattern{{Kind: KindDecorator, Name: name}})
}

// ClassDecorators returns the decorators of class, including those written
// before its export keyword.
func (u *Unit) ClassDecorators(class *sitter.Node) []*sitter.Node {
	out := u.exportDecorators(class)
	for i := 0; i < int(class.NamedChildCount()); i++ {
		if c := class.NamedChild(i); kindOf(c) == KindDecorator {
			out = append(out, c)
		}
	}
	return out
}

// Class returns the class declaration named name. Abstract classes count.
func (u *Unit) Class(name string) (*sitter.Node, error) {
	var matches []*sitter.Node
	for _, k := range []Kind{KindClass, KindAbstractClass} {
		found, err := u.FindAll(Pattern{{Kind: k, Name: name}})
		if err != nil {
			return nil, err
		}
		matches = append(matches, found...)
	}
	switch len(matches) {
	case 0:
		return nil, errors.NotFoundf("class %s in %s", name, u.path)
	case 1:
		return matches[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrAmbiguous, "%d classes named %s in %s", len(matches), name, u.path)
	}
}

// DecoratorArgument returns the object literal passed to the decorator
// named decoratorName on class className. It returns nil without error when
// the class, the decorator or the object literal is absent. decoratorName
// may be written with its @.
func (u *Unit) DecoratorArgument(className, decoratorName string) (*sitter.Node, error) {
	decoratorName = strings.TrimPrefix(decoratorName, "@")
	class, err := u.Class(className)
	if errors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for _, d := range u.ClassDecorators(class) {
		if u.DecoratorName(d) != decoratorName {
			continue
		}
		if obj := u.DecoratorObject(d); obj != nil {
			return obj, nil
		}
	}
	return nil, nil
}

// ClassMetadata is DecoratorArgument with absence reported as an error
// naming the class, decorator and file.
func (u *Unit) ClassMetadata(className, decoratorName string) (*ClassMetadataRef, error) {
	decoratorName = strings.TrimPrefix(decoratorName, "@")
	obj, err := u.DecoratorArgument(className, decoratorName)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.NotFoundf("@%s metadata on class %s in %s", decoratorName, className, u.path)
	}
	return &ClassMetadataRef{ClassName: className, DecoratorName: decoratorName, Object: obj}, nil
}

// DecoratedClasses returns the names of classes carrying the decorator.
func (u *Unit) DecoratedClasses(decoratorName string) []string {
	decoratorName = strings.TrimPrefix(decoratorName, "@")
	var names []string
	for _, k := range []Kind{KindClass, KindAbstractClass} {
		classes, _ := u.FindAll(Pattern{{Kind: k}})
		for _, c := range classes {
			for _, d := range u.ClassDecorators(c) {
				if u.DecoratorName(d) == decoratorName {
					names = append(names, u.Text(c.ChildByFieldName("name")))
					break
				}
			}
		}
	}
	return names
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	children := namedChildren(n)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}
