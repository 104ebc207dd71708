package blueprint_test

import (
	"fmt"
	"log"

	"github.com/lvillar/blueprint"
)

func Example() {
	type row struct{ Label string }

	schema := func(data any) (*blueprint.Fragment, error) {
		rows := data.([]row)
		return &blueprint.Fragment{
			Shapes: []*blueprint.Shape{
				blueprint.Box(blueprint.Center(), blueprint.Pos(20), blueprint.Dim(100), blueprint.Dim(100)),
			},
			Loops: []*blueprint.Loop{
				blueprint.Each(rows, func(r row, i int) *blueprint.Fragment {
					return &blueprint.Fragment{Text: []*blueprint.Text{{
						X:    blueprint.Pos(30),
						Y:    blueprint.Pos(290 + float64(i)*30),
						Text: r.Label,
					}}}
				}),
			},
		}, nil
	}

	bp, err := blueprint.New(schema, []row{{"one"}, {"two"}}, blueprint.WithFormat("A4"))
	if err != nil {
		log.Fatal(err)
	}
	blob, err := bp.GenerateBlob()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(blob.Type)
	// Output: application/pdf
}

func ExampleMetrics() {
	m := blueprint.Metrics{Page: blueprint.A4.Dimensions(blueprint.Portrait)}

	x, y := m.PositionWithin(blueprint.Center(), blueprint.Pos(20), 100)
	fmt.Printf("%.2f %.2f\n", x, y)

	w, h := m.Size(blueprint.DimPercent(50), blueprint.DimPercent(50))
	fmt.Printf("%.3f %.3f\n", w, h)
	// Output:
	// 247.64 20.00
	// 297.640 420.945
}

func ExampleParseFormat() {
	f, err := blueprint.ParseFormat("letter")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(f.Dimensions(blueprint.Landscape))
	// Output: {792 612}
}
