package checkout

type Step int

const (
	StepItems Step = iota
	StepDetails
	StepConfirm
)

func (s Step) String() string {
	switch s {
	case StepItems:
		return "items"
	case StepDetails:
		return "details"
	case StepConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}
