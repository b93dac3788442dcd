package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Object is a compiled program: the quadruple list, the constant pool, and
// the function directory. It serializes to the JSON object-file format and
// is immutable once built.
type Object struct {
	ProgramName string
	Quads       []quad
	Consts      map[int]value
	Funcs       *funcDir
}

type funcJSON struct {
	ReturnType    Type           `json:"return_type"`
	QuadStart     int            `json:"quad_start"`
	ReturnAddress *int           `json:"return_address"`
	Params        []param        `json:"params"`
	Resources     resourceCounts `json:"resources"`
}

type objectJSON struct {
	ProgramName string                     `json:"program_name"`
	Quadruples  []quad                     `json:"quadruples"`
	Constants   map[string]json.RawMessage `json:"constants"`
	Functions   map[string]funcJSON        `json:"functions"`
}

// MarshalJSON emits the object-file shape: quadruples as four-cell arrays,
// constants keyed by decimal address strings, and the function directory
// with its resource counts.
func (obj *Object) MarshalJSON() ([]byte, error) {
	out := objectJSON{
		ProgramName: obj.ProgramName,
		Quadruples:  obj.Quads,
		Constants:   make(map[string]json.RawMessage, len(obj.Consts)),
		Functions:   make(map[string]funcJSON, len(obj.Funcs.funcs)),
	}
	for addr, v := range obj.Consts {
		var cell []byte
		switch v.kind {
		case valInt:
			cell = strconv.AppendInt(nil, v.i, 10)
		case valFloat:
			cell = strconv.AppendFloat(nil, v.f, 'g', -1, 64)
		default:
			return nil, fmt.Errorf("constant @%v is not numeric", addr)
		}
		out.Constants[strconv.Itoa(addr)] = cell
	}
	for name, fi := range obj.Funcs.funcs {
		fj := funcJSON{
			ReturnType: fi.ret,
			QuadStart:  fi.quadStart,
			Params:     fi.params,
			Resources:  fi.res,
		}
		if fj.Params == nil {
			fj.Params = []param{}
		}
		if fi.returnAddr >= 0 {
			addr := fi.returnAddr
			fj.ReturnAddress = &addr
		}
		out.Functions[name] = fj
	}
	return json.Marshal(out)
}

// UnmarshalJSON loads a serialized object program. Constant keys arrive as
// decimal strings and are parsed back to addresses; each constant's numeric
// type is recovered from its segment.
func (obj *Object) UnmarshalJSON(p []byte) error {
	var in objectJSON
	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()
	if err := dec.Decode(&in); err != nil {
		return err
	}

	obj.ProgramName = in.ProgramName
	obj.Quads = in.Quadruples
	obj.Consts = make(map[int]value, len(in.Constants))
	for key, raw := range in.Constants {
		addr, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("constant key %q is not an address", key)
		}
		t, err := typeOfAddr(addr)
		if err != nil {
			return fmt.Errorf("constant key %q: %w", key, err)
		}
		if t == typeInt {
			var n int64
			if err := json.Unmarshal(raw, &n); err != nil {
				return fmt.Errorf("constant @%v: %w", addr, err)
			}
			obj.Consts[addr] = intValue(n)
		} else {
			var f float64
			if err := json.Unmarshal(raw, &f); err != nil {
				return fmt.Errorf("constant @%v: %w", addr, err)
			}
			obj.Consts[addr] = floatValue(f)
		}
	}

	obj.Funcs = newFuncDir()
	names := make([]string, 0, len(in.Functions))
	for name := range in.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fj := in.Functions[name]
		fi, err := obj.Funcs.add(name, fj.ReturnType)
		if err != nil {
			return err
		}
		fi.quadStart = fj.QuadStart
		fi.params = fj.Params
		fi.res = fj.Resources
		fi.returnAddr = -1
		if fj.ReturnAddress != nil {
			fi.returnAddr = *fj.ReturnAddress
		}
		if name == in.ProgramName {
			fi.isProgram = true
		}
	}
	return nil
}

// Encode writes the object program as indented JSON.
func (obj *Object) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeObject parses a serialized object program.
func DecodeObject(p []byte) (*Object, error) {
	var obj Object
	if err := json.Unmarshal(p, &obj); err != nil {
		return nil, fmt.Errorf("bad object file: %w", err)
	}
	return &obj, nil
}
