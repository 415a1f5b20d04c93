package minutes

import (
	"strings"
	"testing"
)

func TestRegistry_Defaults(t *testing.T) {
	r := NewRegistry()

	tmpl, ok := r.Get(DefaultTemplateName)
	if !ok {
		t.Fatal("default template missing")
	}
	vars := ExtractVariables(tmpl.Body)
	if len(vars) != 2 || vars[0] != "date" || vars[1] != "transcript" {
		t.Errorf("default template variables: %v", vars)
	}
}

func TestRegistry_AddValidation(t *testing.T) {
	r := NewRegistry()

	if err := r.Add(Template{Name: "", Body: "b"}); err == nil {
		t.Error("empty name accepted")
	}
	if err := r.Add(Template{Name: "n", Body: ""}); err == nil {
		t.Error("empty body accepted")
	}
	if err := r.Add(Template{Name: DefaultTemplateName, Body: "b"}); err == nil {
		t.Error("reserved name accepted")
	}

	if err := r.Add(Template{Name: "mine", Body: "{{transcript}}"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add(Template{Name: "mine", Body: "other"}); err == nil {
		t.Error("duplicate name accepted")
	}
}

func TestRegistry_UpdateAndRemove(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(Template{Name: "mine", Body: "v1"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := r.Update(Template{Name: "mine", Body: "v2"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := r.Get("mine")
	if got.Body != "v2" {
		t.Errorf("body after update: %q", got.Body)
	}

	if err := r.Update(Template{Name: "missing", Body: "b"}); err == nil {
		t.Error("update of missing template accepted")
	}
	if err := r.Remove(DefaultTemplateName); err == nil {
		t.Error("default template removed")
	}
	if err := r.Remove("mine"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := r.Get("mine"); ok {
		t.Error("template still present after Remove")
	}
}

func TestRegistry_ListOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zebra", "alpha"} {
		if err := r.Add(Template{Name: name, Body: "b"}); err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
	}

	list := r.List()
	if len(list) != 3 {
		t.Fatalf("got %d templates", len(list))
	}
	// Defaults first, then custom sorted by name.
	if list[0].Name != DefaultTemplateName || list[1].Name != "alpha" || list[2].Name != "zebra" {
		names := make([]string, len(list))
		for i, tm := range list {
			names[i] = tm.Name
		}
		t.Errorf("order: %v", names)
	}
}

func TestRegistry_ExportImportRoundTrip(t *testing.T) {
	src := NewRegistry()
	if err := src.Add(Template{Name: "one", Body: "first {{transcript}}"}); err != nil {
		t.Fatal(err)
	}
	if err := src.Add(Template{Name: "two", Body: "second"}); err != nil {
		t.Fatal(err)
	}

	data, err := src.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	dst := NewRegistry()
	n, err := dst.ImportJSON(data)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d, want 2", n)
	}
	got, ok := dst.Get("one")
	if !ok || got.Body != "first {{transcript}}" {
		t.Errorf("template one after round trip: %+v ok=%v", got, ok)
	}
}

func TestRegistry_ImportAbortsOnInvalidEntry(t *testing.T) {
	r := NewRegistry()

	// Sorted import order: "a-ok" imports, then the reserved name fails.
	data := []byte(`{"a-ok": "body", "` + DefaultTemplateName + `": "body"}`)
	n, err := r.ImportJSON(data)
	if err == nil {
		t.Fatal("expected error for reserved name")
	}
	if n != 1 {
		t.Errorf("imported %d before abort, want 1", n)
	}
	if _, ok := r.Get("a-ok"); !ok {
		t.Error("entries before the invalid one should stay imported")
	}
}

func TestRegistry_ImportRejectsMalformedJSON(t *testing.T) {
	r := NewRegistry()
	if _, err := r.ImportJSON([]byte(`["not", "a", "map"]`)); err == nil {
		t.Error("expected parse error")
	}
}

func TestRender(t *testing.T) {
	out, err := Render("Hi {{name}}, today is {{date}}. Bye {{name}}.", map[string]string{
		"name": "Ada",
		"date": "Monday",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "Hi Ada, today is Monday. Bye Ada." {
		t.Errorf("got %q", out)
	}
}

func TestRender_MissingVariable(t *testing.T) {
	_, err := Render("{{transcript}} on {{date}}", map[string]string{"transcript": "t"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "date") {
		t.Errorf("error does not name the missing variable: %v", err)
	}
}

func TestExtractVariables(t *testing.T) {
	vars := ExtractVariables("{{b}} {{a}} {{b}} plain {not-a-var}")
	if len(vars) != 2 || vars[0] != "b" || vars[1] != "a" {
		t.Errorf("got %v", vars)
	}
	if got := ExtractVariables("no placeholders"); got != nil {
		t.Errorf("got %v for template without variables", got)
	}
}
