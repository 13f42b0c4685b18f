package models

type Summary struct {
	Overview   string   `json:"overview"`
	MainPoints []string `json:"mainPoints"`
	KeyTopics  []string `json:"keyTopics"`
}

func (Summary) Variant() Variant { return VariantSummary }

type GenerateSummaryRequest struct {
	Content string `json:"content"`
}
