package runModel

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestResultSet_InsertionOrderAndOverwrite(t *testing.T) {
	rs := NewResultSet()
	rs.Set("b?", "1")
	rs.Set("a?", "2")
	rs.Set("b?", "3")

	if rs.Len() != 2 {
		t.Fatalf("Len got %d, want 2", rs.Len())
	}
	if got := rs.Questions(); !reflect.DeepEqual(got, []string{"b?", "a?"}) {
		t.Errorf("order got %q", got)
	}
	if v, _ := rs.Get("b?"); v != "3" {
		t.Errorf("last write should win, got %s", v)
	}
}

func TestResultSet_JSON(t *testing.T) {
	var rs ResultSet
	rs.Set("Who wrote it?", "Jane Doe")
	rs.Set(" When?", "2024")

	data, err := json.Marshal(map[string]any{"results": rs})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"results":{"Who wrote it?":"Jane Doe"," When?":"2024"}}`
	if string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}

	var decoded struct {
		Results ResultSet `json:"results"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got := decoded.Results.Questions(); !reflect.DeepEqual(got, []string{"Who wrote it?", " When?"}) {
		t.Errorf("decoded order got %q", got)
	}
}

func TestResultSet_PrettyJSON(t *testing.T) {
	rs := NewResultSet()
	rs.Set("Who is the author?", "Jane <Doe>")
	rs.Set("What is the date?", "Data Not Available")

	got, err := rs.PrettyJSON()
	if err != nil {
		t.Fatalf("PrettyJSON failed: %v", err)
	}
	want := "{\n  \"Who is the author?\": \"Jane <Doe>\",\n  \"What is the date?\": \"Data Not Available\"\n}"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}

	empty, _ := NewResultSet().PrettyJSON()
	if empty != "{}" {
		t.Errorf("empty set got %q", empty)
	}
}

func TestResultSet_UnmarshalRejectsArrays(t *testing.T) {
	var rs ResultSet
	if err := json.Unmarshal([]byte(`["a"]`), &rs); err == nil {
		t.Error("expected error for array input")
	}
}

func TestResultSet_ZeroValueAndNull(t *testing.T) {
	var rs ResultSet
	if _, ok := rs.Get("anything?"); ok {
		t.Error("zero value should hold no answers")
	}
	if got := rs.Questions(); len(got) != 0 {
		t.Errorf("zero value questions got %q", got)
	}
	data, err := json.Marshal(rs)
	if err != nil || string(data) != "{}" {
		t.Errorf("zero value marshal got %s, %v", data, err)
	}

	rs.Set("a?", "1")
	if err := json.Unmarshal([]byte(`null`), &rs); err != nil {
		t.Fatalf("unmarshal null failed: %v", err)
	}
	if rs.Len() != 0 {
		t.Errorf("null should reset the set, Len got %d", rs.Len())
	}
}
