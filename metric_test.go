package blueprint

import (
	"encoding/json"
	"math"
	"testing"
)

var a4 = Metrics{Page: A4.Dimensions(Portrait)}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMetricsSizePercent(t *testing.T) {
	w, h := a4.Size(DimPercent(50), DimPercent(50))
	if !approx(w, 297.64) || !approx(h, 420.945) {
		t.Fatalf("Size(50%%, 50%%) = %v, %v; want 297.64, 420.945", w, h)
	}

	w, h = a4.Size(Dim(10), DimPercent(10))
	if w != 10 || !approx(h, 84.189) {
		t.Fatalf("Size(10, 10%%) = %v, %v", w, h)
	}
}

func TestMetricsPositionCenter(t *testing.T) {
	x, y := a4.PositionWithin(Center(), Pos(0), 100)
	if !approx(x, 247.64) || y != 0 {
		t.Fatalf("PositionWithin(center, 0, 100) = %v, %v; want 247.64, 0", x, y)
	}

	x, _ = a4.Position(Center(), Pos(0))
	if !approx(x, 297.64) {
		t.Fatalf("Position(center, 0) = %v; want 297.64", x)
	}

	// a centered y ignores the reference width
	_, y = a4.PositionWithin(Pos(0), Center(), 100)
	if !approx(y, 420.945) {
		t.Fatalf("centered y = %v; want 420.945", y)
	}
}

func TestMetricsPositionPercent(t *testing.T) {
	x, y := a4.Position(PosPercent(25), PosPercent(100))
	if !approx(x, 148.82) || !approx(y, 841.89) {
		t.Fatalf("Position(25%%, 100%%) = %v, %v", x, y)
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		want Position
	}{
		{"center", Center()},
		{"25%", PosPercent(25)},
		{" 12.5 % ", PosPercent(12.5)},
		{"-40", Pos(-40)},
		{"0", Pos(0)},
	}
	for _, tt := range tests {
		got, err := ParsePosition(tt.in)
		if err != nil {
			t.Errorf("ParsePosition(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePosition(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "left", "%", "1e"} {
		if _, err := ParsePosition(bad); err == nil {
			t.Errorf("ParsePosition(%q): expected error", bad)
		}
	}
}

func TestParseSizeRejectsCenter(t *testing.T) {
	if _, err := ParseSize("center"); err == nil {
		t.Fatal("expected error for centered size")
	}
	s, err := ParseSize("90%")
	if err != nil || s != DimPercent(90) {
		t.Fatalf("ParseSize(90%%) = %v, %v", s, err)
	}
}

func TestMetricJSON(t *testing.T) {
	var shape Shape
	err := json.Unmarshal([]byte(`{"type":"box","x":"center","y":"10%","width":100,"height":"50%"}`), &shape)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !shape.X.IsCenter() || shape.Y != PosPercent(10) || shape.Width != Dim(100) || shape.Height != DimPercent(50) {
		t.Fatalf("decoded %+v", shape)
	}

	out, err := json.Marshal(struct {
		X Position `json:"x"`
		Y Position `json:"y"`
		W Size     `json:"w"`
	}{Center(), Pos(20), DimPercent(50)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"x":"center","y":20,"w":"50%"}` {
		t.Fatalf("Marshal = %s", out)
	}

	var p Position
	if err := json.Unmarshal([]byte(`true`), &p); err == nil {
		t.Fatal("expected error for boolean position")
	}
}
