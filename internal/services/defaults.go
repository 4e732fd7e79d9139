package services

// DefaultCatalog returns the built-in vendor table. The entries are pattern
// data only; category assignments follow common usage, and load estimates
// are rough static figures in milliseconds.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultDescriptors, defaultSlowPatterns)
}

var defaultDescriptors = []Descriptor{
	{
		Name:            "Google Analytics",
		Category:        CategoryAnalytics,
		Patterns:        []string{"google-analytics.com", "googletagmanager.com/gtag"},
		EstimatedLoadMS: 120,
	},
	{
		Name:            "Google Tag Manager",
		Category:        CategoryAnalytics,
		Patterns:        []string{"googletagmanager.com/gtm"},
		Enhances:        []string{"google-analytics.com", "googletagmanager.com/gtag"},
		EstimatedLoadMS: 150,
	},
	{
		Name:            "Google Ads",
		Category:        CategoryAdvertising,
		Patterns:        []string{"googlesyndication.com", "googleadservices.com"},
		EstimatedLoadMS: 350,
	},
	{
		Name:            "DoubleClick",
		Category:        CategoryAdvertising,
		Patterns:        []string{"doubleclick.net"},
		EstimatedLoadMS: 300,
	},
	{
		Name:            "Amazon Ads",
		Category:        CategoryAdvertising,
		Patterns:        []string{"amazon-adsystem.com"},
		EstimatedLoadMS: 280,
	},
	{
		Name:            "Criteo",
		Category:        CategoryAdvertising,
		Patterns:        []string{"criteo.com", "criteo.net"},
		EstimatedLoadMS: 260,
	},
	{
		Name:            "Facebook Pixel",
		Category:        CategoryTracking,
		Patterns:        []string{"connect.facebook.net", "facebook.com/tr"},
		EstimatedLoadMS: 180,
	},
	{
		Name:            "Facebook SDK",
		Category:        CategorySocial,
		Patterns:        []string{"facebook.com/plugins", "fbcdn.net"},
		EstimatedLoadMS: 200,
	},
	{
		Name:            "Twitter Widgets",
		Category:        CategorySocial,
		Patterns:        []string{"platform.twitter.com"},
		EstimatedLoadMS: 170,
	},
	{
		Name:            "LinkedIn Insight",
		Category:        CategoryTracking,
		Patterns:        []string{"snap.licdn.com"},
		EstimatedLoadMS: 130,
	},
	{
		Name:            "Hotjar",
		Category:        CategoryAnalytics,
		Patterns:        []string{"hotjar.com"},
		EstimatedLoadMS: 160,
	},
	{
		Name:            "Mixpanel",
		Category:        CategoryAnalytics,
		Patterns:        []string{"mixpanel.com", "mxpnl.com"},
		EstimatedLoadMS: 110,
	},
	{
		Name:            "Segment",
		Category:        CategoryAnalytics,
		Patterns:        []string{"segment.com/analytics.js", "cdn.segment.com"},
		EstimatedLoadMS: 140,
	},
	{
		Name:            "jQuery",
		Category:        CategoryUtilities,
		Patterns:        []string{"/jquery.", "/jquery-", "code.jquery.com"},
		Critical:        true,
		EstimatedLoadMS: 90,
		KnownCVEs: []CVE{
			{ID: "CVE-2020-11022", Severity: "medium", Summary: "jQuery <3.5.0 htmlPrefilter XSS"},
			{ID: "CVE-2019-11358", Severity: "medium", Summary: "jQuery <3.4.0 Object.prototype pollution"},
		},
	},
	{
		Name:            "Bootstrap",
		Category:        CategoryUtilities,
		Patterns:        []string{"/bootstrap.", "/bootstrap-", "bootstrapcdn.com"},
		Requires:        []string{"/jquery.", "/jquery-", "code.jquery.com"},
		EstimatedLoadMS: 100,
		KnownCVEs: []CVE{
			{ID: "CVE-2019-8331", Severity: "medium", Summary: "Bootstrap <3.4.1 tooltip XSS"},
		},
	},
	{
		Name:            "React",
		Category:        CategoryUtilities,
		Patterns:        []string{"/react.", "/react-dom.", "/react.production", "/react.development"},
		Critical:        true,
		Conflicts:       []string{"/angular.", "/vue."},
		EstimatedLoadMS: 130,
	},
	{
		Name:            "Angular",
		Category:        CategoryUtilities,
		Patterns:        []string{"/angular."},
		Critical:        true,
		Conflicts:       []string{"/react.", "/vue."},
		EstimatedLoadMS: 180,
		KnownCVEs: []CVE{
			{ID: "CVE-2022-25844", Severity: "medium", Summary: "AngularJS <1.8.3 ReDoS in angular.copy"},
		},
	},
	{
		Name:            "Vue",
		Category:        CategoryUtilities,
		Patterns:        []string{"/vue.", "/vue-router."},
		Critical:        true,
		Conflicts:       []string{"/react.", "/angular."},
		EstimatedLoadMS: 110,
	},
	{
		Name:            "Cloudflare CDN",
		Category:        CategoryCDN,
		Patterns:        []string{"cdnjs.cloudflare.com", "cdn.cloudflare.com"},
		EstimatedLoadMS: 60,
	},
	{
		Name:            "jsDelivr",
		Category:        CategoryCDN,
		Patterns:        []string{"cdn.jsdelivr.net"},
		EstimatedLoadMS: 60,
	},
	{
		Name:            "unpkg",
		Category:        CategoryCDN,
		Patterns:        []string{"unpkg.com"},
		EstimatedLoadMS: 70,
	},
	{
		Name:            "Google Fonts",
		Category:        CategoryCDN,
		Patterns:        []string{"fonts.googleapis.com", "fonts.gstatic.com"},
		EstimatedLoadMS: 80,
	},
	{
		Name:            "YouTube Embed",
		Category:        CategorySocial,
		Patterns:        []string{"youtube.com/embed", "youtube-nocookie.com"},
		EstimatedLoadMS: 400,
	},
	{
		Name:            "Intercom",
		Category:        CategoryUtilities,
		Patterns:        []string{"widget.intercom.io", "js.intercomcdn.com"},
		EstimatedLoadMS: 220,
	},
	{
		Name:            "Stripe.js",
		Category:        CategoryUtilities,
		Patterns:        []string{"js.stripe.com"},
		Critical:        true,
		EstimatedLoadMS: 150,
	},
	{
		Name:            "Scorecard Research",
		Category:        CategoryTracking,
		Patterns:        []string{"scorecardresearch.com"},
		EstimatedLoadMS: 140,
	},
	{
		Name:            "Quantcast",
		Category:        CategoryTracking,
		Patterns:        []string{"quantserve.com", "quantcast.com"},
		EstimatedLoadMS: 140,
	},
}

var defaultSlowPatterns = []string{
	"doubleclick.net",
	"googlesyndication.com",
	"amazon-adsystem.com",
	"criteo.",
	"scorecardresearch.com",
	"quantserve.com",
	"youtube.com/embed",
	"hotjar.com",
	"widget.intercom.io",
}
