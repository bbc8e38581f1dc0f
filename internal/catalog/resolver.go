package catalog

import "building-book-be/internal/apperror"

// SectionType is the backend's canonical enum for a section's topic,
// independent of UI wording.
type SectionType string

const (
	TypeGeneralData      SectionType = "GENERAL_DATA"
	TypeBuildingFeatures SectionType = "BUILDING_FEATURES"
	TypeCertificates     SectionType = "CERTIFICATES"
	TypeMaintenance      SectionType = "MAINTENANCE"
	TypeInstallations    SectionType = "INSTALLATIONS"
	TypeRenovations      SectionType = "RENOVATIONS"
	TypeInsurance        SectionType = "INSURANCE"
	TypeDocumentation    SectionType = "DOCUMENTATION"
)

var canonicalByUiId = map[string]SectionType{
	SectionGeneralData:      TypeGeneralData,
	SectionBuildingFeatures: TypeBuildingFeatures,
	SectionCertificates:     TypeCertificates,
	SectionMaintenance:      TypeMaintenance,
	SectionInstallations:    TypeInstallations,
	SectionRenovations:      TypeRenovations,
	SectionInsurance:        TypeInsurance,
	SectionDocumentation:    TypeDocumentation,
}

// Resolver translates between the UI catalog ids and the backend's
// canonical section types. Both lookup tables are built once from the
// closed catalog; resolution is stable for the process lifetime.
type Resolver struct {
	canonicalByUi map[string]SectionType
	uiByCanonical map[SectionType]string
}

func NewResolver() *Resolver {
	uiByCanonical := make(map[SectionType]string, len(canonicalByUiId))
	for uiId, t := range canonicalByUiId {
		uiByCanonical[t] = uiId
	}
	return &Resolver{
		canonicalByUi: canonicalByUiId,
		uiByCanonical: uiByCanonical,
	}
}

// ToCanonicalType maps a UI catalog id to its canonical type. The catalog
// is closed, so a miss indicates a programming or catalog-versioning
// defect and is reported as UnknownSectionError rather than assumed away.
func (r *Resolver) ToCanonicalType(uiId string) (SectionType, error) {
	t, ok := r.canonicalByUi[uiId]
	if !ok {
		return "", &apperror.UnknownSectionError{Value: uiId}
	}
	return t, nil
}

// ToUiId maps a canonical type back to a UI catalog id. Backend section
// types without a catalog entry return ok=false and are ignored by
// callers, so a newer backend can add types without breaking this client.
func (r *Resolver) ToUiId(t SectionType) (string, bool) {
	uiId, ok := r.uiByCanonical[t]
	return uiId, ok
}
