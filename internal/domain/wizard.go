package domain

// WizardState состояние мастера бронирования
type WizardState string

const (
	StateEmpty              WizardState = "empty"
	StateServiceChosen      WizardState = "service_chosen"
	StateProfessionalChosen WizardState = "professional_chosen"
	StateSlotChosen         WizardState = "slot_chosen"
	StateAwaitingPayment    WizardState = "awaiting_payment"
	StateCompleted          WizardState = "completed"
	StateAbandoned          WizardState = "abandoned"
)

// WizardStep шаг мастера, на который контроллер может перенаправить страницу
type WizardStep string

const (
	StepServiceSelection      WizardStep = "service_selection"
	StepProfessionalSelection WizardStep = "professional_selection"
	StepSlotSelection         WizardStep = "slot_selection"
	StepPayment               WizardStep = "payment"
)

// IsTerminal returns true for states with no outgoing transitions
func (s WizardState) IsTerminal() bool {
	return s == StateCompleted || s == StateAbandoned
}
