package response_models

// ConsultaResponse is the public card lookup payload: just enough for a
// subscriber to check their own standing.
type ConsultaResponse struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	PlanType    string `json:"plan_type"`
	NextDueDate string `json:"next_due_date"`
}
