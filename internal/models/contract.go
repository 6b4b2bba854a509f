package models

// RiskLevel is the discrete bucket a continuous risk probability maps into
type RiskLevel string

const (
	RiskLevelNormal   RiskLevel = "normal"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelVeryHigh RiskLevel = "very_high"
)

// ContractInput represents one lease-guarantee contract as submitted by the client.
// Guarantee months use the YYYYMM integer format (e.g. 202103).
type ContractInput struct {
	GuaranteeStartMonth int     `json:"guarantee_start_month" binding:"required"`
	GuaranteeEndMonth   int     `json:"guarantee_end_month" binding:"required"`
	HouseValue          float64 `json:"house_value"`
	LeaseDepositAmount  float64 `json:"lease_deposit_amount"`
	SeniorLienAmount    float64 `json:"senior_lien_amount"`
	Region              string  `json:"region" binding:"required"`
	PropertyType        string  `json:"property_type" binding:"required"`
}

// FeatureContribution is one entry of the ranked explanation: a feature, the
// value it took for this contract, and its signed contribution to the score.
type FeatureContribution struct {
	Feature      string  `json:"feature"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
	Description  string  `json:"description"`
}

// PredictionResult is the scored contract before narrative enrichment
type PredictionResult struct {
	RiskScore     float64               `json:"risk_score"`
	RiskLevel     RiskLevel             `json:"risk_level"`
	Explanation   []FeatureContribution `json:"explanation"`
	OriginalInput ContractInput         `json:"original_input"`
}

// FinalResult is the full response body returned to the client
type FinalResult struct {
	PredictionResult
	AIExplanation string `json:"ai_explanation"`
}

// ErrorResponse is the standard error body returned by handlers
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
