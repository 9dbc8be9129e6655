package aggregate

import (
	"reflect"
	"testing"
)

func TestReshapeAlignsAndZeroFills(t *testing.T) {
	rows := []Row{
		{Bucket: 2010.0, Groups: []string{"post"}, Value: 3},
		{Bucket: 2010.25, Groups: []string{"like"}, Value: 2},
		{Bucket: 2010.5, Groups: []string{"post"}, Value: 1},
	}

	s, err := Reshape(rows, 0)
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}

	wantDate := []float64{2010.0, 2010.25, 2010.5}
	if !reflect.DeepEqual(s.Date, wantDate) {
		t.Errorf("Date = %v, want %v", s.Date, wantDate)
	}
	for name, seq := range s.Values {
		if len(seq) != len(s.Date) {
			t.Errorf("series %q has length %d, want %d", name, len(seq), len(s.Date))
		}
	}
	if !reflect.DeepEqual(s.Values["post"], []float64{3, 0, 1}) {
		t.Errorf("post series = %v, want [3 0 1]", s.Values["post"])
	}
	if !reflect.DeepEqual(s.Values["like"], []float64{0, 2, 0}) {
		t.Errorf("like series = %v, want [0 2 0]", s.Values["like"])
	}
}

func TestReshapeSumsCollisions(t *testing.T) {
	rows := []Row{
		{Bucket: 2012.0, Groups: []string{"post"}, Value: 2},
		{Bucket: 2012.0, Groups: []string{"post"}, Value: 5},
	}

	s, err := Reshape(rows, 0)
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}
	if got := s.Values["post"][0]; got != 7 {
		t.Errorf("summed value = %v, want 7", got)
	}
}

// Conservation: no row is dropped or double-counted.
func TestReshapeConservation(t *testing.T) {
	rows := []Row{
		{Bucket: 2009.0, Groups: []string{"a"}, Value: 1},
		{Bucket: 2009.0, Groups: []string{"b"}, Value: 2},
		{Bucket: 2009.5, Groups: []string{"a"}, Value: 4},
		{Bucket: 2010.0, Groups: []string{"c"}, Value: -3},
		{Bucket: 2010.0, Groups: []string{"a"}, Value: 1.5},
	}

	var wantTotal float64
	for _, r := range rows {
		wantTotal += r.Value
	}

	s, err := Reshape(rows, 0)
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}

	var total float64
	for _, seq := range s.Values {
		for _, v := range seq {
			total += v
		}
	}
	if total != wantTotal {
		t.Errorf("total across series = %v, want %v", total, wantTotal)
	}
}

func TestReshapeEmptyInput(t *testing.T) {
	s, err := Reshape(nil, 0)
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}
	if len(s.Date) != 0 {
		t.Errorf("Date = %v, want empty", s.Date)
	}
	if len(s.Values) != 0 {
		t.Errorf("Values has %d series, want none", len(s.Values))
	}
}

func TestReshapeGroupIndexOutOfRange(t *testing.T) {
	rows := []Row{{Bucket: 2010.0, Groups: []string{"only"}, Value: 1}}
	if _, err := Reshape(rows, 1); err == nil {
		t.Error("expected an error for out-of-range group index")
	}
}

func TestReshapeSecondGroupColumn(t *testing.T) {
	rows := []Row{
		{Bucket: 2010.0, Groups: []string{"self", "post"}, Value: 1},
		{Bucket: 2010.0, Groups: []string{"other", "post"}, Value: 2},
		{Bucket: 2010.0, Groups: []string{"self", "like"}, Value: 4},
	}

	s, err := Reshape(rows, 1)
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}
	if got := s.Values["post"][0]; got != 3 {
		t.Errorf("post series = %v, want 3", got)
	}
	if got := s.Values["like"][0]; got != 4 {
		t.Errorf("like series = %v, want 4", got)
	}
}

func TestReshapeIsPure(t *testing.T) {
	rows := []Row{
		{Bucket: 2010.0, Groups: []string{"a"}, Value: 1},
		{Bucket: 2011.0, Groups: []string{"b"}, Value: 2},
	}

	s1, err := Reshape(rows, 0)
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}
	s2, err := Reshape(rows, 0)
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}
	if !reflect.DeepEqual(s1, s2) {
		t.Error("Reshape is not idempotent for identical input")
	}
}

func TestFilter(t *testing.T) {
	rows := []Row{
		{Bucket: 2010.0, Groups: []string{"self", "post"}, Value: 1},
		{Bucket: 2010.0, Groups: []string{"other", "like"}, Value: 2},
		{Bucket: 2011.0, Groups: []string{"self", "like"}, Value: 3},
	}

	got := Filter(rows, 0, "self")
	if len(got) != 2 {
		t.Fatalf("Filter returned %d rows, want 2", len(got))
	}
	for _, r := range got {
		if r.Groups[0] != "self" {
			t.Errorf("unexpected row %v", r)
		}
	}
}

func TestCumulative(t *testing.T) {
	s := &Series{
		Date:   []float64{2010.0, 2010.25, 2010.5},
		Values: map[string][]float64{"friends": {2, -1, 3}},
	}

	c := s.Cumulative()
	want := []float64{2, 1, 4}
	if !reflect.DeepEqual(c.Values["friends"], want) {
		t.Errorf("cumulative = %v, want %v", c.Values["friends"], want)
	}
	// Source series must be untouched.
	if !reflect.DeepEqual(s.Values["friends"], []float64{2, -1, 3}) {
		t.Errorf("source series mutated: %v", s.Values["friends"])
	}
}

func TestNamesSorted(t *testing.T) {
	s := &Series{Values: map[string][]float64{"b": nil, "a": nil, "c": nil}}
	want := []string{"a", "b", "c"}
	if got := s.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
