package main

import "fmt"

type varKind int

const (
	kindVar varKind = iota
	kindParam
)

type varInfo struct {
	name  string
	typ   Type
	scope string
	kind  varKind
	addr  int
}

func (v *varInfo) String() string {
	return fmt.Sprintf("%v: %v @%v", v.name, v.typ, v.addr)
}

// varTable is a stack of per-scope name tables. The bottom frame is the
// program's global scope; lookup searches top-down so locals shadow
// globals. Within a single frame names are unique, which also keeps a local
// from shadowing its own function's parameters.
type varTable struct {
	frames []map[string]*varInfo
	names  []string
}

func newVarTable() *varTable {
	return &varTable{
		frames: []map[string]*varInfo{{}},
		names:  []string{"global"},
	}
}

func (vt *varTable) enterScope(name string) {
	vt.frames = append(vt.frames, map[string]*varInfo{})
	vt.names = append(vt.names, name)
}

func (vt *varTable) exitScope() {
	if len(vt.frames) > 1 {
		vt.frames = vt.frames[:len(vt.frames)-1]
		vt.names = vt.names[:len(vt.names)-1]
	}
}

func (vt *varTable) scopeName() string { return vt.names[len(vt.names)-1] }

func (vt *varTable) add(name string, t Type, kind varKind, addr int) error {
	frame := vt.frames[len(vt.frames)-1]
	if _, dup := frame[name]; dup {
		return fmt.Errorf("duplicate variable '%v' in %v", name, vt.scopeName())
	}
	frame[name] = &varInfo{
		name:  name,
		typ:   t,
		scope: vt.scopeName(),
		kind:  kind,
		addr:  addr,
	}
	return nil
}

// lookup resolves name against the innermost scope first, then outward to
// the global frame; nil when undeclared.
func (vt *varTable) lookup(name string) *varInfo {
	for i := len(vt.frames) - 1; i >= 0; i-- {
		if v, ok := vt.frames[i][name]; ok {
			return v
		}
	}
	return nil
}
