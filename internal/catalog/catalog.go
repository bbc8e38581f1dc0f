package catalog

// FieldKind enumerates the input widgets a section field can render as.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldSelect   FieldKind = "select"
	FieldDate     FieldKind = "date"
)

type Field struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// SectionDefinition is one static entry of the digital book catalog.
// The catalog is closed: exactly 8 definitions, fixed at compile time,
// never reshuffled at runtime.
type SectionDefinition struct {
	Id          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields"`
}

// UI catalog ids, in wizard order.
const (
	SectionGeneralData      = "general_data"
	SectionBuildingFeatures = "building_features"
	SectionCertificates     = "certificates"
	SectionMaintenance      = "maintenance"
	SectionInstallations    = "installations"
	SectionRenovations      = "renovations"
	SectionInsurance        = "insurance"
	SectionDocumentation    = "documentation"
)

var sections = []SectionDefinition{
	{
		Id:          SectionGeneralData,
		Title:       "Datos generales",
		Description: "Identificación y datos básicos del edificio",
		Fields: []Field{
			{Name: "address", Label: "Dirección", Kind: FieldText, Required: true},
			{Name: "cadastral_reference", Label: "Referencia catastral", Kind: FieldText, Required: true},
			{Name: "construction_year", Label: "Año de construcción", Kind: FieldText, Required: true},
			{Name: "property_type", Label: "Tipo de inmueble", Kind: FieldSelect, Required: true, Options: []string{"Residencial", "Oficinas", "Comercial", "Mixto"}},
			{Name: "total_area", Label: "Superficie construida (m²)", Kind: FieldText, Required: true},
			{Name: "description", Label: "Descripción", Kind: FieldTextarea, Required: false},
		},
	},
	{
		Id:          SectionBuildingFeatures,
		Title:       "Características constructivas",
		Description: "Estructura, cerramientos y cubierta",
		Fields: []Field{
			{Name: "structure_type", Label: "Tipo de estructura", Kind: FieldSelect, Required: true, Options: []string{"Hormigón", "Acero", "Madera", "Mixta"}},
			{Name: "facade", Label: "Fachada", Kind: FieldText, Required: true},
			{Name: "roof_type", Label: "Tipo de cubierta", Kind: FieldText, Required: false},
			{Name: "floors_above", Label: "Plantas sobre rasante", Kind: FieldText, Required: false},
			{Name: "floors_below", Label: "Plantas bajo rasante", Kind: FieldText, Required: false},
		},
	},
	{
		Id:          SectionCertificates,
		Title:       "Certificados",
		Description: "Certificados energéticos y de inspección técnica",
		Fields: []Field{
			{Name: "energy_certificate_number", Label: "Nº certificado energético", Kind: FieldText, Required: true},
			{Name: "energy_rating", Label: "Calificación energética", Kind: FieldSelect, Required: true, Options: []string{"A", "B", "C", "D", "E", "F", "G"}},
			{Name: "ite_date", Label: "Fecha última ITE", Kind: FieldDate, Required: false},
			{Name: "ite_result", Label: "Resultado ITE", Kind: FieldTextarea, Required: false},
		},
	},
	{
		Id:          SectionMaintenance,
		Title:       "Mantenimiento",
		Description: "Plan y contratos de mantenimiento del edificio",
		Fields: []Field{
			{Name: "maintenance_company", Label: "Empresa de mantenimiento", Kind: FieldText, Required: true},
			{Name: "plan_summary", Label: "Resumen del plan", Kind: FieldTextarea, Required: false},
			{Name: "last_review_date", Label: "Fecha última revisión", Kind: FieldDate, Required: false},
		},
	},
	{
		Id:          SectionInstallations,
		Title:       "Instalaciones",
		Description: "Instalaciones comunes: ascensores, calderas, electricidad",
		Fields: []Field{
			{Name: "elevator_count", Label: "Número de ascensores", Kind: FieldText, Required: true},
			{Name: "heating_system", Label: "Sistema de calefacción", Kind: FieldSelect, Required: false, Options: []string{"Central", "Individual", "Ninguno"}},
			{Name: "electrical_certificate", Label: "Boletín eléctrico", Kind: FieldText, Required: false},
			{Name: "notes", Label: "Observaciones", Kind: FieldTextarea, Required: false},
		},
	},
	{
		Id:          SectionRenovations,
		Title:       "Reformas y rehabilitación",
		Description: "Obras y actuaciones realizadas sobre el edificio",
		Fields: []Field{
			{Name: "last_renovation_year", Label: "Año última reforma", Kind: FieldText, Required: true},
			{Name: "renovation_scope", Label: "Alcance", Kind: FieldTextarea, Required: false},
			{Name: "pending_works", Label: "Actuaciones pendientes", Kind: FieldTextarea, Required: false},
		},
	},
	{
		Id:          SectionInsurance,
		Title:       "Seguros",
		Description: "Pólizas de seguro vigentes del edificio",
		Fields: []Field{
			{Name: "insurer", Label: "Aseguradora", Kind: FieldText, Required: true},
			{Name: "policy_number", Label: "Nº de póliza", Kind: FieldText, Required: true},
			{Name: "expiry_date", Label: "Fecha de vencimiento", Kind: FieldDate, Required: false},
		},
	},
	{
		Id:          SectionDocumentation,
		Title:       "Documentación administrativa",
		Description: "Licencias, escrituras y demás documentación del edificio",
		Fields: []Field{
			{Name: "occupancy_license", Label: "Licencia de ocupación", Kind: FieldText, Required: true},
			{Name: "registry_data", Label: "Datos registrales", Kind: FieldTextarea, Required: false},
			{Name: "other_documents", Label: "Otra documentación", Kind: FieldTextarea, Required: false},
		},
	},
}

var indexById = func() map[string]int {
	m := make(map[string]int, len(sections))
	for i, s := range sections {
		m[s.Id] = i
	}
	return m
}()

// Sections returns the catalog in wizard order.
func Sections() []SectionDefinition {
	return sections
}

// StepCount is the number of wizard steps (always 8).
func StepCount() int {
	return len(sections)
}

// ByIndex returns the definition for a step index.
func ByIndex(i int) (SectionDefinition, bool) {
	if i < 0 || i >= len(sections) {
		return SectionDefinition{}, false
	}
	return sections[i], true
}

// ById returns the definition for a UI catalog id.
func ById(id string) (SectionDefinition, bool) {
	i, ok := indexById[id]
	if !ok {
		return SectionDefinition{}, false
	}
	return sections[i], true
}

// IndexOf returns the step index of a UI catalog id, or -1.
func IndexOf(id string) int {
	if i, ok := indexById[id]; ok {
		return i
	}
	return -1
}
