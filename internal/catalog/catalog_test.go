package catalog

import (
	"testing"
)

func TestCatalogShape(t *testing.T) {
	if StepCount() != 8 {
		t.Fatalf("StepCount = %d, want 8", StepCount())
	}

	wantOrder := []string{
		SectionGeneralData,
		SectionBuildingFeatures,
		SectionCertificates,
		SectionMaintenance,
		SectionInstallations,
		SectionRenovations,
		SectionInsurance,
		SectionDocumentation,
	}

	for i, id := range wantOrder {
		def, ok := ByIndex(i)
		if !ok {
			t.Fatalf("ByIndex(%d) not ok", i)
		}
		if def.Id != id {
			t.Errorf("step %d = %s, want %s", i, def.Id, id)
		}
		if def.Title == "" {
			t.Errorf("step %d has empty title", i)
		}
		if len(def.Fields) == 0 {
			t.Errorf("step %d has no fields", i)
		}
	}
}

func TestRequiredFieldCounts(t *testing.T) {
	tests := []struct {
		id           string
		wantRequired int
	}{
		{SectionGeneralData, 5},
		{SectionCertificates, 2},
		{SectionMaintenance, 1},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			def, ok := ById(tt.id)
			if !ok {
				t.Fatalf("ById(%s) not ok", tt.id)
			}
			got := 0
			for _, f := range def.Fields {
				if f.Required {
					got++
				}
			}
			if got != tt.wantRequired {
				t.Errorf("required fields = %d, want %d", got, tt.wantRequired)
			}
		})
	}
}

func TestIndexOf(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{SectionGeneralData, 0},
		{SectionCertificates, 2},
		{SectionMaintenance, 3},
		{SectionDocumentation, 7},
		{"no_such_section", -1},
		{"", -1},
	}

	for _, tt := range tests {
		if got := IndexOf(tt.id); got != tt.want {
			t.Errorf("IndexOf(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestByIndexBounds(t *testing.T) {
	if _, ok := ByIndex(-1); ok {
		t.Error("ByIndex(-1) should not be ok")
	}
	if _, ok := ByIndex(8); ok {
		t.Error("ByIndex(8) should not be ok")
	}
}

func TestSelectFieldsCarryOptions(t *testing.T) {
	for _, def := range Sections() {
		for _, f := range def.Fields {
			if f.Kind == FieldSelect && len(f.Options) == 0 {
				t.Errorf("select field %s.%s has no options", def.Id, f.Name)
			}
			if f.Kind != FieldSelect && len(f.Options) > 0 {
				t.Errorf("non-select field %s.%s carries options", def.Id, f.Name)
			}
		}
	}
}
