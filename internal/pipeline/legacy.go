package pipeline

// LegacyView is the flat projection kept for callers that have not migrated
// to the combined shape. It is a pure, lossy transform of Combined and
// introduces no data of its own.
type LegacyView struct {
	Scripts             []string `json:"scripts"`
	Tracking            []string `json:"tracking"`
	PerformanceImpact   string   `json:"performanceImpact"`
	PrivacyImplications string   `json:"privacyImplications"`
	CDNUsage            []string `json:"cdnUsage"`
}

// Legacy derives the flat view from a combined result.
func Legacy(c Combined) LegacyView {
	view := LegacyView{
		Scripts:  []string{},
		Tracking: []string{},
		CDNUsage: []string{},
	}

	for _, s := range c.Services {
		view.Scripts = append(view.Scripts, s.URL)
		switch s.Category {
		case "tracking", "advertising":
			view.Tracking = append(view.Tracking, s.Name)
		case "cdn":
			view.CDNUsage = append(view.CDNUsage, s.Name)
		}
	}

	switch {
	case c.Summary.BlockingCount == 0:
		view.PerformanceImpact = "low"
	case c.Summary.BlockingCount <= 3:
		view.PerformanceImpact = "medium"
	default:
		view.PerformanceImpact = "high"
	}

	view.PrivacyImplications = "none"
	if c.Security != nil {
		view.PrivacyImplications = c.Security.RiskLevel
	}
	return view
}
