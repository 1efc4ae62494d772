package order

// StepState is the progress of one timeline step.
type StepState int

const (
	StepUpcoming StepState = iota
	StepCurrent
	StepDone
)

func (s StepState) String() string {
	switch s {
	case StepCurrent:
		return "current"
	case StepDone:
		return "done"
	default:
		return "upcoming"
	}
}

// TimelineStep is one stage of the shipment as shown to operators.
type TimelineStep struct {
	Stage Stage
	Label string
	State StepState
}

// Timeline lays out the four shipment stages with their progress. Stages
// before the current one are done; once the order is COMPLETED every stage is
// done. An order with an unknown stage shows all stages as upcoming.
func (o *Order) Timeline() []TimelineStep {
	stages := Stages()
	current := -1
	for i, s := range stages {
		if s == o.stage {
			current = i
		}
	}

	steps := make([]TimelineStep, 0, len(stages))
	for i, s := range stages {
		state := StepUpcoming
		switch {
		case o.IsCompleted():
			state = StepDone
		case current >= 0 && i < current:
			state = StepDone
		case i == current:
			state = StepCurrent
		}
		steps = append(steps, TimelineStep{Stage: s, Label: s.Label(), State: state})
	}
	return steps
}
