package wirebench_test

import (
	"testing"

	wb "github.com/db47h/wirebench"
	"github.com/db47h/wirebench/wbtest"
)

func Test_spawn_undo_redo(t *testing.T) {
	b := wb.New()
	n := wbtest.Spawn(t, b, wb.Screen, 43, 17)
	if n.X != 40 || n.Y != 20 {
		t.Fatalf("position not snapped: %v", n.Position())
	}
	if !b.Document().Selected(n.ID) {
		t.Fatal("spawned node not selected")
	}
	want := wbtest.Snap(b.Document())

	if !b.Undo() {
		t.Fatal("nothing to undo")
	}
	if nn, _ := b.Document().Len(); nn != 0 {
		t.Fatalf("expected empty document after undo, got %d nodes", nn)
	}
	if !b.Redo() {
		t.Fatal("nothing to redo")
	}
	wbtest.CompareDocument(t, want, b.Document())
	if b.Redo() {
		t.Fatal("redo list not empty")
	}
}

func Test_history_bound(t *testing.T) {
	b := wb.New()
	for i := 0; i < wb.MaxHistory+1; i++ {
		wbtest.Spawn(t, b, wb.LED, float64(i*10), 0)
	}
	n := 0
	for b.Undo() {
		n++
	}
	if n != wb.MaxHistory {
		t.Fatalf("undid %d commands, expected %d", n, wb.MaxHistory)
	}
	if nn, _ := b.Document().Len(); nn != 1 {
		t.Fatalf("expected 1 node left, got %d", nn)
	}
}

func Test_redo_cleared_by_execute(t *testing.T) {
	b := wb.New()
	wbtest.Spawn(t, b, wb.LED, 0, 0)
	b.Undo()
	if !b.CanRedo() {
		t.Fatal("expected redo")
	}
	wbtest.Spawn(t, b, wb.Sensor, 0, 0)
	if b.CanRedo() {
		t.Fatal("redo list not cleared")
	}
}

func Test_delete_undo(t *testing.T) {
	b := wb.New()
	psu := wbtest.Spawn(t, b, wb.PowerSupply, 0, 0)
	sw := wbtest.Spawn(t, b, wb.Switch, 200, 0)
	sp := wbtest.Spawn(t, b, wb.Splitter, 400, 0)
	led := wbtest.Spawn(t, b, wb.LED, 600, 0)
	wbtest.Connect(t, b, psu, "power", sw, "powerIn")
	wbtest.Connect(t, b, sw, "powerOut", sp, "in")
	wbtest.Connect(t, b, sp, "a", led, "power")
	want := wbtest.Snap(b.Document())

	if !b.Delete(sw.ID) {
		t.Fatal("nothing deleted")
	}
	nn, nc := b.Document().Len()
	if nn != 3 || nc != 1 {
		t.Fatalf("expected 3 nodes and 1 cable, got %d and %d", nn, nc)
	}
	wbtest.AssertInvariants(t, b.Document())

	b.Undo()
	wbtest.CompareDocument(t, want, b.Document())
	b.Redo()
	if b.Document().Node(sw.ID) != nil {
		t.Fatal("redo did not delete node")
	}
	if b.Delete("nope") {
		t.Fatal("deleted unknown id")
	}
}

func Test_duplicate(t *testing.T) {
	b := wb.New()
	psu := wbtest.Spawn(t, b, wb.PowerSupply, 0, 0)
	led := wbtest.Spawn(t, b, wb.LED, 200, 0)
	wbtest.Connect(t, b, psu, "power", led, "power")
	if err := b.SetProp(psu.ID, "voltage", 5); err != nil {
		t.Fatal(err)
	}

	ns, err := b.Duplicate([]wb.ID{psu.ID, led.ID}, 21, 19)
	if err != nil {
		t.Fatal(err)
	}
	if len(ns) != 2 {
		t.Fatalf("expected 2 copies, got %d", len(ns))
	}
	c := ns[0]
	if c.ID == psu.ID || c.X != 20 || c.Y != 20 {
		t.Fatalf("bad copy %s at %v", c.ID, c.Position())
	}
	if v, _ := wb.GetProp(c.Props, "voltage"); v != 5.0 {
		t.Fatalf("props not copied: voltage = %v", v)
	}
	if _, nc := b.Document().Len(); nc != 1 {
		t.Fatal("cables must not be duplicated")
	}
	if sel := b.Document().Selection(); len(sel) != 2 || !b.Document().Selected(ns[1].ID) {
		t.Fatalf("copies not selected: %v", sel)
	}

	// the copy is independent from the original
	if err := b.SetProp(c.ID, "on", false); err != nil {
		t.Fatal(err)
	}
	if v, _ := wb.GetProp(b.Document().Node(psu.ID).Props, "on"); v != true {
		t.Fatal("original modified")
	}
}

func Test_move(t *testing.T) {
	b := wb.New()
	a := wbtest.Spawn(t, b, wb.LED, 0, 0)
	c := wbtest.Spawn(t, b, wb.LED, 100, 100)
	if err := b.MoveBy([]wb.ID{a.ID, c.ID}, 14, -26); err != nil {
		t.Fatal(err)
	}
	if a.Position() != (wb.Point{X: 10, Y: -30}) || c.Position() != (wb.Point{X: 110, Y: 70}) {
		t.Fatalf("bad positions %v %v", a.Position(), c.Position())
	}
	b.Undo()
	if a.Position() != (wb.Point{}) || c.Position() != (wb.Point{X: 100, Y: 100}) {
		t.Fatalf("undo: bad positions %v %v", a.Position(), c.Position())
	}
	if err := b.Move(a.ID, 55, 54); err != nil {
		t.Fatal(err)
	}
	if a.Position() != (wb.Point{X: 60, Y: 50}) {
		t.Fatalf("bad position %v", a.Position())
	}
	if err := b.Move("nope", 0, 0); err == nil {
		t.Fatal("moved unknown node")
	}
}

func Test_set_props(t *testing.T) {
	b := wb.New()
	s := wbtest.Spawn(t, b, wb.Screen, 0, 0)
	if err := b.SetProp(s.ID, "brightness", 150); err != nil {
		t.Fatal(err)
	}
	if v, _ := wb.GetProp(s.Props, "brightness"); v != 100.0 {
		t.Fatalf("brightness not clamped: %v", v)
	}
	if err := b.SetProp(s.ID, "bogus", 1); err == nil {
		t.Fatal("expected error")
	}
	if err := b.SetProps(s.ID, &wb.LEDProps{}); err == nil {
		t.Fatal("expected type mismatch")
	}
	p := wb.CloneProps(s.Props).(*wb.ScreenProps)
	p.Scale = 0.1
	p.Name = "Main"
	if err := b.SetProps(s.ID, p); err != nil {
		t.Fatal(err)
	}
	sp := b.Document().Node(s.ID).Props.(*wb.ScreenProps)
	if sp.Scale != 0.5 || sp.DisplayName() != "Main" {
		t.Fatalf("got %+v", sp)
	}
	b.Undo()
	b.Undo()
	sp = b.Document().Node(s.ID).Props.(*wb.ScreenProps)
	if sp.Brightness != 100 || sp.Scale != 1 || sp.Name != "Screen" {
		t.Fatalf("undo: got %+v", sp)
	}
}

func Test_reset(t *testing.T) {
	b := wb.New()
	psu := wbtest.Spawn(t, b, wb.PowerSupply, 0, 0)
	led := wbtest.Spawn(t, b, wb.LED, 0, 0)
	wbtest.Connect(t, b, psu, "power", led, "power")
	b.Document().Pan = wb.Point{X: 12, Y: 34}
	b.Document().Zoom = 2
	want := wbtest.Snap(b.Document())

	b.Reset()
	d := b.Document()
	if nn, nc := d.Len(); nn != 0 || nc != 0 {
		t.Fatalf("document not empty: %d nodes, %d cables", nn, nc)
	}
	if d.Pan != want.Pan || d.Zoom != want.Zoom {
		t.Fatal("view transform not kept")
	}
	b.Undo()
	wbtest.CompareDocument(t, want, d)
}

func Test_select(t *testing.T) {
	b := wb.New()
	a := wbtest.Spawn(t, b, wb.LED, 0, 0)
	c := wbtest.Spawn(t, b, wb.LED, 0, 0)
	b.Select(a.ID, c.ID, "nope")
	if sel := b.Document().Selection(); len(sel) != 2 {
		t.Fatalf("bad selection %v", sel)
	}
	if !b.DeleteSelection() {
		t.Fatal("nothing deleted")
	}
	if nn, _ := b.Document().Len(); nn != 0 {
		t.Fatal("selection not deleted")
	}
	b.Undo()
	if sel := b.Document().Selection(); len(sel) != 2 {
		t.Fatalf("selection not restored: %v", sel)
	}
}
