package domain

const MailTypePlanSummary = "plan_summary"

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type PlanSummaryMailData struct {
	Start         string   `json:"start"`
	End           string   `json:"end"`
	Quota         string   `json:"quota"`
	Summary       string   `json:"summary"`
	RemainingDays string   `json:"remainingDays"`
	FullDays      []string `json:"fullDays"`
	HalfDays      []string `json:"halfDays"`
}
