package review

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

type ReviewRequest struct {
	Decision Decision `json:"decision" binding:"required"`
	Notes    string   `json:"notes"`
}

type SubmitRequest struct {
	Profile string   `json:"profile"`
	Skills  []string `json:"skills"`
}
