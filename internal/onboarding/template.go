package onboarding

// templateItem seeds one checklist item when onboarding starts for a
// contractor.
type templateItem struct {
	Stage    string
	Label    string
	Category Category
	Required bool
}

const (
	stageCompanyDetails = "company_details"
	stageCompliance     = "compliance_documents"
	stageSafety         = "safety_induction"
	stageFinance        = "financial_setup"
)

var stageOrder = map[string]int{
	stageCompanyDetails: 0,
	stageCompliance:     1,
	stageSafety:         2,
	stageFinance:        3,
}

var stageTitles = map[string]string{
	stageCompanyDetails: "Company Details",
	stageCompliance:     "Compliance Documents",
	stageSafety:         "Safety Induction",
	stageFinance:        "Financial Setup",
}

func stageTitle(stage string) string {
	if title, ok := stageTitles[stage]; ok {
		return title
	}
	return stage
}

// checklistTemplate is the default onboarding checklist seeded for every
// new contractor.
var checklistTemplate = []templateItem{
	{stageCompanyDetails, "Company registration details captured", CategoryCompany, true},
	{stageCompanyDetails, "Primary contact confirmed", CategoryCompany, true},
	{stageCompanyDetails, "Physical and postal addresses captured", CategoryCompany, false},
	{stageCompliance, "Tax clearance certificate uploaded", CategoryCompliance, true},
	{stageCompliance, "Public liability insurance uploaded", CategoryCompliance, true},
	{stageCompliance, "Company registration certificate uploaded", CategoryCompliance, true},
	{stageCompliance, "BEE certificate uploaded", CategoryCompliance, false},
	{stageSafety, "Site safety induction completed", CategorySafety, true},
	{stageSafety, "Safety certificate uploaded", CategorySafety, true},
	{stageSafety, "PPE issue acknowledged", CategorySafety, false},
	{stageFinance, "Bank confirmation letter uploaded", CategoryFinance, true},
	{stageFinance, "Rate card agreed and signed", CategoryFinance, true},
}
