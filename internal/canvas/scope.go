package canvas

import (
	"fmt"

	"github.com/monet-draw/monet/internal/geom"
)

// ScopeKind identifies an open bracket in the output document.
type ScopeKind int

const (
	// ScopeCanvas is the implicit group flipping canvas to device coordinates.
	ScopeCanvas ScopeKind = iota
	// ScopeGroup is a group opened by BeginGroup.
	ScopeGroup
	// ScopeClipDefinition is a clip path being recorded by DefineClip.
	ScopeClipDefinition
	// ScopeClip is a group applying a clip, opened by UseClip.
	ScopeClip
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeCanvas:
		return "canvas"
	case ScopeGroup:
		return "group"
	case ScopeClipDefinition:
		return "clip definition"
	case ScopeClip:
		return "clip"
	}
	return fmt.Sprintf("ScopeKind(%d)", int(k))
}

type scope struct {
	kind ScopeKind
	// ctm maps the coordinates used inside the scope to device coordinates.
	ctm geom.Matrix2D
}

func (c *Canvas) ctm() geom.Matrix2D {
	if len(c.scopes) == 0 {
		return geom.IdentityMatrix()
	}
	return c.scopes[len(c.scopes)-1].ctm
}

// CTM returns the matrix mapping canvas coordinates to device coordinates
// under the scopes currently open.
func (c *Canvas) CTM() geom.Matrix2D { return c.ctm() }

// Innermost returns the kind of the innermost open scope. A closed canvas
// reports ScopeCanvas.
func (c *Canvas) Innermost() ScopeKind {
	if len(c.scopes) == 0 {
		return ScopeCanvas
	}
	return c.scopes[len(c.scopes)-1].kind
}

// GroupLevel returns the number of groups opened by BeginGroup and not yet
// closed. The implicit canvas group is not counted.
func (c *Canvas) GroupLevel() int {
	n := 0
	for _, s := range c.scopes {
		if s.kind == ScopeGroup {
			n++
		}
	}
	return n
}

func (c *Canvas) has(kind ScopeKind) bool {
	for _, s := range c.scopes {
		if s.kind == kind {
			return true
		}
	}
	return false
}

func (c *Canvas) push(kind ScopeKind, m geom.Matrix2D) {
	c.scopes = append(c.scopes, scope{kind: kind, ctm: c.ctm().Multiply(m)})
	Logger().Debug("scope opened", "kind", kind, "depth", len(c.scopes))
}

func (c *Canvas) openGroup(kind ScopeKind, seq geom.Sequence, name string) {
	tag := "<g"
	if name != "" {
		tag += fmt.Sprintf(` name="%s"`, escape(name))
	}
	if !seq.IsIdentity() {
		tag += fmt.Sprintf(` transform="%s"`, transformList(seq))
	}
	c.out.emit(c.out.indent(0) + tag + ">\n")
	c.out.level++
	c.push(kind, seq.Matrix())
}

// closeScope writes the closing tags of the innermost scope and pops it.
func (c *Canvas) closeScope() {
	top := c.scopes[len(c.scopes)-1]
	c.scopes = c.scopes[:len(c.scopes)-1]

	switch top.kind {
	case ScopeCanvas, ScopeGroup, ScopeClip:
		c.out.level--
		c.out.emit(c.out.indent(0) + "</g>\n")
	case ScopeClipDefinition:
		c.out.level -= 2
		c.out.emit(fmt.Sprintf("%s</clipPath>\n%s</defs>\n", c.out.indent(1), c.out.indent(0)))
		c.clipID = c.pendingClip
		c.pendingClip = ""
	}
	Logger().Debug("scope closed", "kind", top.kind, "depth", len(c.scopes))
}

// BeginGroup opens a group applying transforms to everything drawn until the
// matching EndGroup. The transform attribute is omitted when every element of
// transforms is the identity; the name attribute when name is empty.
func (c *Canvas) BeginGroup(transforms geom.Sequence, name string) {
	c.mustBeOpen()
	c.openGroup(ScopeGroup, transforms, name)
}

// EndGroup closes the group opened by the last BeginGroup. It panics when
// that group is not the innermost open scope, e.g. when no group is open or
// a clip opened later is still active.
func (c *Canvas) EndGroup() {
	c.mustBeOpen()
	if kind := c.Innermost(); kind != ScopeGroup {
		panic(fmt.Sprintf("canvas: EndGroup with innermost scope %s", kind))
	}
	c.closeScope()
}

// DefineClip starts recording a clip path. Everything drawn until EndClip
// contributes its geometry to the clip; paint attributes are ignored by
// viewers. It panics when a clip definition is already open.
func (c *Canvas) DefineClip() {
	c.mustBeOpen()
	if c.has(ScopeClipDefinition) {
		panic("canvas: DefineClip inside a clip definition")
	}
	c.pendingClip = c.newClipID()
	c.out.emit(fmt.Sprintf("%s<defs>\n%s<clipPath id=\"%s\">\n",
		c.out.indent(0), c.out.indent(1), escape(c.pendingClip)))
	c.out.level += 2
	c.push(ScopeClipDefinition, geom.IdentityMatrix())
}

// EndClip ends the clip definition opened by DefineClip, makes it the
// current clip and returns its id. It panics when the clip definition is
// not the innermost open scope.
func (c *Canvas) EndClip() string {
	c.mustBeOpen()
	if kind := c.Innermost(); kind != ScopeClipDefinition {
		panic(fmt.Sprintf("canvas: EndClip with innermost scope %s", kind))
	}
	c.closeScope()
	Logger().Debug("clip registered", "id", c.clipID)
	return c.clipID
}

// UseClip opens a group clipped by the current clip until RemoveClip.
// It panics when no clip has been defined yet.
func (c *Canvas) UseClip() {
	c.mustBeOpen()
	if c.clipID == "" {
		panic("canvas: UseClip before any DefineClip/EndClip")
	}
	c.out.emit(fmt.Sprintf("%s<g clip-path=\"url(#%s)\">\n", c.out.indent(0), escape(c.clipID)))
	c.out.level++
	c.push(ScopeClip, geom.IdentityMatrix())
}

// RemoveClip closes the group opened by the last UseClip. It panics when
// that group is not the innermost open scope.
func (c *Canvas) RemoveClip() {
	c.mustBeOpen()
	if kind := c.Innermost(); kind != ScopeClip {
		panic(fmt.Sprintf("canvas: RemoveClip with innermost scope %s", kind))
	}
	c.closeScope()
}

// HasClip reports whether a clip has been defined and can be used.
func (c *Canvas) HasClip() bool { return c.clipID != "" }

// ClipID returns the id of the current clip, or "" before the first EndClip.
func (c *Canvas) ClipID() string { return c.clipID }

// Clipping reports whether a clip applied by UseClip is still open.
func (c *Canvas) Clipping() bool { return c.has(ScopeClip) }

// InClipDefinition reports whether DefineClip is waiting for its EndClip.
func (c *Canvas) InClipDefinition() bool { return c.has(ScopeClipDefinition) }
