package checkout

// Step is the single process-wide checkout position. Exactly one value is
// active per session at any time.
type Step string

const (
	StepSelection    Step = "selection"
	StepSummary      Step = "summary"
	StepDelivery     Step = "delivery"
	StepConfirmation Step = "confirmation"
)

func (s Step) String() string {
	return string(s)
}

var allowedTransitions = map[Step]map[Step]bool{
	StepSelection: {
		StepSummary: true,
	},
	StepSummary: {
		StepSelection: true,
		StepDelivery:  true,
	},
	StepDelivery: {
		StepSummary:      true,
		StepConfirmation: true,
	},
	StepConfirmation: {
		StepSelection: true,
	},
}
