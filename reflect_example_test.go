package wirebench_test

import (
	"fmt"

	wb "github.com/db47h/wirebench"
)

// Properties can be listed, read and written by name. String values are
// parsed and out of range values clamped.
func ExampleSetProp() {
	ts, _ := wb.Lookup(wb.Screen)
	props := ts.NewProps()
	fmt.Println(wb.PropNames(props))

	if err := wb.SetProp(props, "brightness", "250"); err != nil {
		panic(err)
	}
	v, _ := wb.GetProp(props, "brightness")
	fmt.Println("brightness:", v)

	err := wb.SetProp(props, "contrast", 50)
	fmt.Println(err)

	// Output:
	// [name brightness scale color test]
	// brightness: 100
	// no such property contrast
}

// A power supply lighting a LED through a switch.
func ExampleBench() {
	b := wb.New()
	psu, _ := b.Spawn(wb.PowerSupply, 0, 0)
	sw, _ := b.Spawn(wb.Switch, 200, 0)
	led, _ := b.Spawn(wb.LED, 400, 0)
	b.Connect(psu.Endpoint("power"), sw.Endpoint("powerIn"))
	b.Connect(sw.Endpoint("powerOut"), led.Endpoint("power"))

	b.Settle(10)
	fmt.Println("lit:", b.Signals().State(led.ID).Lit)

	b.SetProp(sw.ID, "on", false)
	b.Settle(10)
	fmt.Println("lit:", b.Signals().State(led.ID).Lit)

	b.Undo()
	b.Settle(10)
	fmt.Println("lit:", b.Signals().State(led.ID).Lit)

	// Output:
	// lit: true
	// lit: false
	// lit: true
}
