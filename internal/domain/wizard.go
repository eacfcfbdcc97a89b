package domain

// WizardStep names one page of the listing wizard.
type WizardStep string

const (
	StepAddress        WizardStep = "address"
	StepUse            WizardStep = "use"
	StepAmenities      WizardStep = "amenities"
	StepApprovals      WizardStep = "approvals"
	StepQualifications WizardStep = "qualifications"
	StepPricing        WizardStep = "pricing"
	StepHours          WizardStep = "hours"
	StepServices       WizardStep = "services"
)

// WizardSteps is the fixed, linear step order.
var WizardSteps = []WizardStep{
	StepAddress,
	StepUse,
	StepAmenities,
	StepApprovals,
	StepQualifications,
	StepPricing,
	StepHours,
	StepServices,
}

// SaveReason says what triggered a wizard save.
type SaveReason string

const (
	SaveManual   SaveReason = "manual"
	SaveNext     SaveReason = "next"
	SaveBack     SaveReason = "back"
	SaveAutosave SaveReason = "autosave"
)
