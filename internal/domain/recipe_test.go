package domain

import (
	"encoding/json"
	"testing"
)

func TestIngredientQuantityDecoding(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{`{"name":"flour","quantity":200,"unit":"g"}`, 200},
		{`{"name":"flour","quantity":"1.5","unit":"cups"}`, 1.5},
		{`{"name":"salt","quantity":"a pinch","unit":""}`, 0},
		{`{"name":"salt","quantity":null,"unit":""}`, 0},
		{`{"name":"salt","quantity":"NaN","unit":""}`, 0},
		{`{"name":"salt","quantity":"-Inf","unit":""}`, 0},
		{`{"name":"salt","unit":""}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var ing Ingredient
			if err := json.Unmarshal([]byte(tt.in), &ing); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if ing.Quantity != tt.want {
				t.Errorf("quantity = %v, want %v", ing.Quantity, tt.want)
			}
		})
	}
}

func TestIngredientQuantityEncodesNumber(t *testing.T) {
	b, err := json.Marshal(Ingredient{Name: "egg", Quantity: 2, Unit: ""})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"name":"egg","quantity":2,"unit":""}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSortedInstructionsIsStable(t *testing.T) {
	c := Component{Instructions: []Instruction{
		{Step: 3, Text: "c"},
		{Step: 1, Text: "a"},
		{Step: 3, Text: "d"},
		{Step: 2, Text: "b"},
	}}
	got := c.SortedInstructions()
	want := []string{"a", "b", "c", "d"}
	for i, ins := range got {
		if ins.Text != want[i] {
			t.Fatalf("position %d = %q, want %q", i, ins.Text, want[i])
		}
	}
	if c.Instructions[0].Text != "c" {
		t.Error("SortedInstructions modified the component")
	}
}

func TestNormalizedReplacesNilSlices(t *testing.T) {
	r := Recipe{Name: "Tart", Components: []Component{{Name: "crust"}}}
	b, err := json.Marshal(r.Normalized())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":0,"name":"Tart","dish_id":0,"components":[{"name":"crust","ingredients":[],"instructions":[]}]}`
	if string(b) != want {
		t.Errorf("got %s\nwant %s", b, want)
	}
}

func TestMatchTupleRoundTrip(t *testing.T) {
	var d IngredientDetail
	in := `{"id":1,"title":"tomato","avoid":["milk"],"affinities":["basil + olive oil"],"matches":[["salt",4],["basil",2]]}`
	if err := json.Unmarshal([]byte(in), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(d.Matches) != 2 || d.Matches[0] != (Match{"salt", 4}) || d.Matches[1] != (Match{"basil", 2}) {
		t.Fatalf("matches = %+v", d.Matches)
	}
	b, _ := json.Marshal(d.Matches[0])
	if string(b) != `["salt",4]` {
		t.Errorf("encoded %s", b)
	}
}

func TestMatchRejectsBadTuple(t *testing.T) {
	var m Match
	if err := json.Unmarshal([]byte(`["salt"]`), &m); err == nil {
		t.Error("expected error for one-element tuple")
	}
}

func TestEmphasisForScore(t *testing.T) {
	want := map[int]Emphasis{
		4: EmphasisStrongest, 3: EmphasisStrong, 2: EmphasisNormal,
		1: EmphasisMuted, 0: EmphasisMuted, 7: EmphasisMuted, -1: EmphasisMuted,
	}
	for score, e := range want {
		if got := EmphasisForScore(score); got != e {
			t.Errorf("EmphasisForScore(%d) = %s, want %s", score, got, e)
		}
	}
}

func TestCommandFromString(t *testing.T) {
	if CommandFromString("renumber") != CommandRenumber {
		t.Error("renumber not recognized")
	}
	if CommandFromString("nope") != CommandUnknown {
		t.Error("unknown name should map to CommandUnknown")
	}
	if CommandSave.String() != "save" {
		t.Errorf("CommandSave.String() = %q", CommandSave.String())
	}
}
