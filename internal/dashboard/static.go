package dashboard

// MetricCard is one headline number on the dashboard.
type MetricCard struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change,omitempty"`
}

// Scenario is a weighted user journey of the load profile.
type Scenario struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"` // percent
}

// Phase is one stage of the load profile.
type Phase struct {
	Name        string `json:"name"`
	DurationSec int    `json:"durationSec"`
	ArrivalRate int    `json:"arrivalRate"` // new virtual users per second
}

// AnalysisSummary is the results summary panel.
type AnalysisSummary struct {
	SuccessRate string `json:"successRate"`
	P95Latency  string `json:"p95Latency"`
	PeakRPS     string `json:"peakRps"`
}

// The values below are display data only; nothing measures them.
var (
	PerformanceMetrics = []MetricCard{
		{Title: "Avg Response Time", Value: "127ms", Change: "+12%"},
		{Title: "Requests/sec", Value: "1,247", Change: "+5.2%"},
		{Title: "Error Rate", Value: "0.3%", Change: "-0.1%"},
		{Title: "Concurrent Users", Value: "850", Change: "+15%"},
	}

	Scenarios = []Scenario{
		{Name: "User Registration & Shopping", Weight: 40},
		{Name: "Login & Purchase Flow", Weight: 35},
		{Name: "Product Search & Browse", Weight: 20},
		{Name: "Analytics Dashboard", Weight: 5},
	}

	Phases = []Phase{
		{Name: "Warm up", DurationSec: 60, ArrivalRate: 5},
		{Name: "Normal load", DurationSec: 120, ArrivalRate: 20},
		{Name: "Peak load", DurationSec: 180, ArrivalRate: 50},
		{Name: "Cool down", DurationSec: 60, ArrivalRate: 10},
	}

	Analysis = AnalysisSummary{
		SuccessRate: "98.7%",
		P95Latency:  "2.3s",
		PeakRPS:     "1,247",
	}
)
