package models

type Plan string

const (
	PlanMonthly Plan = "monthly"
	PlanYearly  Plan = "yearly"
)

type CheckoutRequest struct {
	Plan Plan `json:"plan"`
}

// RedirectResponse carries the payment provider page to open.
type RedirectResponse struct {
	URL string `json:"url"`
}
