package projection

import (
	"testing"

	"building-book-be/internal/catalog"
	"building-book-be/internal/entity"
)

func sectionOf(t catalog.SectionType, complete bool) *entity.Section {
	return &entity.Section{Type: t, Complete: complete}
}

func TestProgressNilBook(t *testing.T) {
	got := Progress(nil, catalog.NewResolver())
	if got.CompletedCount != 0 || got.Percentage != 0 {
		t.Errorf("nil book = %+v, want zero metrics", got)
	}
}

func TestProgressEmptyBook(t *testing.T) {
	got := Progress(&entity.Book{}, catalog.NewResolver())
	if got.CompletedCount != 0 || got.Percentage != 0 {
		t.Errorf("empty book = %+v, want zero metrics", got)
	}
}

func TestProgressRounding(t *testing.T) {
	resolver := catalog.NewResolver()

	tests := []struct {
		name           string
		sections       []*entity.Section
		wantCount      int
		wantPercentage int
	}{
		{
			name:           "one of eight rounds to 13",
			sections:       []*entity.Section{sectionOf(catalog.TypeGeneralData, true)},
			wantCount:      1,
			wantPercentage: 13,
		},
		{
			name: "incomplete sections do not count",
			sections: []*entity.Section{
				sectionOf(catalog.TypeGeneralData, true),
				sectionOf(catalog.TypeCertificates, false),
				sectionOf(catalog.TypeMaintenance, false),
			},
			wantCount:      1,
			wantPercentage: 13,
		},
		{
			name: "three of eight rounds to 38",
			sections: []*entity.Section{
				sectionOf(catalog.TypeGeneralData, true),
				sectionOf(catalog.TypeCertificates, true),
				sectionOf(catalog.TypeMaintenance, true),
			},
			wantCount:      3,
			wantPercentage: 38,
		},
		{
			name: "four of eight is exactly half",
			sections: []*entity.Section{
				sectionOf(catalog.TypeGeneralData, true),
				sectionOf(catalog.TypeBuildingFeatures, true),
				sectionOf(catalog.TypeCertificates, true),
				sectionOf(catalog.TypeMaintenance, true),
			},
			wantCount:      4,
			wantPercentage: 50,
		},
		{
			name: "all eight complete",
			sections: []*entity.Section{
				sectionOf(catalog.TypeGeneralData, true),
				sectionOf(catalog.TypeBuildingFeatures, true),
				sectionOf(catalog.TypeCertificates, true),
				sectionOf(catalog.TypeMaintenance, true),
				sectionOf(catalog.TypeInstallations, true),
				sectionOf(catalog.TypeRenovations, true),
				sectionOf(catalog.TypeInsurance, true),
				sectionOf(catalog.TypeDocumentation, true),
			},
			wantCount:      8,
			wantPercentage: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Progress(&entity.Book{Sections: tt.sections}, resolver)
			if got.CompletedCount != tt.wantCount {
				t.Errorf("CompletedCount = %d, want %d", got.CompletedCount, tt.wantCount)
			}
			if got.Percentage != tt.wantPercentage {
				t.Errorf("Percentage = %d, want %d", got.Percentage, tt.wantPercentage)
			}
		})
	}
}

func TestProgressIgnoresUnknownTypes(t *testing.T) {
	book := &entity.Book{Sections: []*entity.Section{
		sectionOf(catalog.TypeGeneralData, true),
		sectionOf(catalog.SectionType("ACCESSIBILITY"), true),
	}}

	got := Progress(book, catalog.NewResolver())
	if got.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, want 1 (unknown type skipped)", got.CompletedCount)
	}
}

func TestProgressDeduplicatesTypes(t *testing.T) {
	// Two rows of the same type collapse to one catalog entry.
	book := &entity.Book{Sections: []*entity.Section{
		sectionOf(catalog.TypeGeneralData, true),
		sectionOf(catalog.TypeGeneralData, true),
	}}

	got := Progress(book, catalog.NewResolver())
	if got.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, want 1", got.CompletedCount)
	}
}
