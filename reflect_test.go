package wirebench_test

import (
	"testing"

	wb "github.com/db47h/wirebench"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func Test_prop_names(t *testing.T) {
	td := map[wb.NodeType][]string{
		wb.PowerSupply: {"name", "on", "voltage"},
		wb.Motherboard: {"name", "mode", "fps", "color", "dosType", "dosUrl"},
		wb.Screen:      {"name", "brightness", "scale", "color", "test"},
		wb.Switch:      {"name", "on"},
		wb.LED:         {"name"},
		wb.CableSpool:  {"name"},
	}
	for typ, want := range td {
		ts, ok := wb.Lookup(typ)
		if !ok {
			t.Fatalf("type %s not found", typ)
		}
		if diff := cmp.Diff(want, wb.PropNames(ts.NewProps())); diff != "" {
			t.Errorf("%s (-want +got):\n%s", typ, diff)
		}
	}
}

func Test_set_prop(t *testing.T) {
	td := []struct {
		typ   wb.NodeType
		name  string
		value interface{}
		want  interface{}
		err   bool
	}{
		{wb.PowerSupply, "voltage", 5, 5.0, false},
		{wb.PowerSupply, "voltage", "3.3", 3.3, false},
		{wb.PowerSupply, "on", "false", false, false},
		{wb.PowerSupply, "on", 1, nil, true},
		{wb.PowerSupply, "on", "maybe", nil, true},
		{wb.Motherboard, "fps", 30.0, 30, false},
		{wb.Motherboard, "fps", "-5", 60, false},
		{wb.Motherboard, "mode", "color", "color", false},
		{wb.Motherboard, "mode", 3, nil, true},
		{wb.Screen, "brightness", -20, 0.0, false},
		{wb.Screen, "scale", 3, 2.0, false},
		{wb.Screen, "scale", "0.1", 0.5, false},
		{wb.Screen, "name", "Main", "Main", false},
		{wb.LED, "name", "status", "status", false},
		{wb.LED, "on", true, nil, true},
	}
	for _, d := range td {
		ts, _ := wb.Lookup(d.typ)
		p := ts.NewProps()
		err := wb.SetProp(p, d.name, d.value)
		if d.err {
			if err == nil {
				t.Errorf("%s.%s = %v: expected error", d.typ, d.name, d.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s.%s = %v: %v", d.typ, d.name, d.value, err)
			continue
		}
		got, err := wb.GetProp(p, d.name)
		if err != nil {
			t.Fatal(err)
		}
		if got != d.want {
			t.Errorf("%s.%s = %v: got %v (%T), expected %v (%T)", d.typ, d.name, d.value, got, got, d.want, d.want)
		}
	}
}

func Test_unknown_prop(t *testing.T) {
	ts, _ := wb.Lookup(wb.Switch)
	_, err := wb.GetProp(ts.NewProps(), "voltage")
	if !errors.Is(err, wb.ErrUnknownProp) {
		t.Fatalf("got %v", err)
	}
	var pe *wb.PropError
	if !errors.As(err, &pe) || pe.Name != "voltage" {
		t.Fatalf("got %#v", err)
	}
}

func Test_clone_props(t *testing.T) {
	ts, _ := wb.Lookup(wb.Motherboard)
	p := ts.NewProps()
	c := wb.CloneProps(p)
	if err := wb.SetProp(c, "color", "#123456"); err != nil {
		t.Fatal(err)
	}
	if v, _ := wb.GetProp(p, "color"); v != wb.White {
		t.Fatalf("original modified: %v", v)
	}
	if diff := cmp.Diff(p, ts.NewProps()); diff != "" {
		t.Fatal(diff)
	}
}

func Test_registry(t *testing.T) {
	ts := wb.Types()
	if len(ts) != 8 {
		t.Fatalf("got %d types", len(ts))
	}
	for _, s := range ts {
		n := wb.NewNode(s.Type, 0, 0)
		if n == nil || n.Type != s.Type || n.Props.DisplayName() == "" {
			t.Fatalf("bad node for %s: %+v", s.Type, n)
		}
		if diff := cmp.Diff(s.Inputs, n.Inputs); diff != "" {
			t.Errorf("%s inputs:\n%s", s.Type, diff)
		}
		// ports are copies
		if len(n.Outputs) > 0 && &n.Outputs[0] == &s.Outputs[0] {
			t.Errorf("%s: outputs shared with type", s.Type)
		}
	}
	if wb.NewNode("Toaster", 0, 0) != nil {
		t.Fatal("unknown type accepted")
	}
	if _, ok := wb.Lookup("Toaster"); ok {
		t.Fatal("unknown type found")
	}
}
