// object.go — the nested object tree that transformations operate on.
//
// An Object is a named unit of Mir code that may embed further named
// objects and raw data sections. The tree is strictly singly owned:
// parents hold children, nothing points back up. Anything that needs an
// ancestor chain addresses nodes by dotted qualified path instead.
package mir

import (
	"fmt"
	"strings"
)

// ObjectNode is either an *Object or a *Data section.
type ObjectNode interface {
	NodeName() string
}

// Data is an opaque named payload inside an object. It carries no code
// and can never be selected as the target of a transformation session.
type Data struct {
	Pos
	Name  string
	Value string
}

func (d *Data) NodeName() string { return d.Name }

// Object is a named code unit with ordered children. AnalysisInfo is
// attached by the analyzer and holds only for the current value of Code:
// every structural rewrite must clear it before the next analysis.
type Object struct {
	Pos
	Name         string
	Code         *Block
	SubNodes     []ObjectNode
	AnalysisInfo *AnalysisInfo
}

func (o *Object) NodeName() string { return o.Name }

// SubObject returns the direct child object with the given name.
func (o *Object) SubObject(name string) *Object {
	for _, n := range o.SubNodes {
		if sub, ok := n.(*Object); ok && sub.Name == name {
			return sub
		}
	}
	return nil
}

// QualifiedDataNames returns the names an object's code may reference in
// datasize/dataoffset calls: direct children by plain name, and nested
// objects' children dotted through their parents.
func (o *Object) QualifiedDataNames() map[string]bool {
	names := map[string]bool{o.Name: true}
	var collect func(prefix string, node ObjectNode)
	collect = func(prefix string, node ObjectNode) {
		name := prefix + node.NodeName()
		names[name] = true
		if sub, ok := node.(*Object); ok {
			for _, child := range sub.SubNodes {
				collect(name+".", child)
			}
		}
	}
	for _, n := range o.SubNodes {
		collect("", n)
	}
	return names
}

// WalkPostOrder visits every object reachable from root, calling fn
// after all of a node's children have been visited (children in document
// order). Data sections are not visited. The first error aborts the walk
// and is returned unchanged.
func WalkPostOrder(root *Object, fn func(*Object) error) error {
	for _, n := range root.SubNodes {
		if sub, ok := n.(*Object); ok {
			if err := WalkPostOrder(sub, fn); err != nil {
				return err
			}
		}
	}
	return fn(root)
}

// PathError reports a qualified path that does not address a code-bearing
// object in the tree.
type PathError struct {
	Path string
	Msg  string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("cannot resolve object path %q: %s", e.Path, e.Msg)
}

// ResolveSubObject walks a dot-qualified path from root. The empty path
// and the root's own name address the root itself; every further segment
// must name an existing direct child object. A segment that lands on a
// data section is an error since data cannot hold code.
func ResolveSubObject(root *Object, qualifiedPath string) (*Object, error) {
	if qualifiedPath == "" || qualifiedPath == root.Name {
		return root, nil
	}
	if !strings.HasPrefix(qualifiedPath, root.Name+".") {
		return nil, &PathError{Path: qualifiedPath, Msg: fmt.Sprintf("no object named %q", firstSegment(qualifiedPath))}
	}
	rest := qualifiedPath[len(root.Name)+1:]
	name := firstSegment(rest)
	for _, n := range root.SubNodes {
		if n.NodeName() != name {
			continue
		}
		sub, ok := n.(*Object)
		if !ok {
			return nil, &PathError{Path: qualifiedPath, Msg: fmt.Sprintf("%q is a data section and may not contain code", name)}
		}
		return ResolveSubObject(sub, rest)
	}
	return nil, &PathError{Path: qualifiedPath, Msg: fmt.Sprintf("object %q has no sub-object %q", root.Name, name)}
}

func firstSegment(path string) string {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return path
}
