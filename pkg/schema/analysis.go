package schema

// CompanyAnalysis is the structured form of a research pass over one
// company: what it sells, to whom, and where it stands.
type CompanyAnalysis struct {
	Overview            string   `json:"overview" jsonschema_description:"One paragraph describing what the company does"`
	Products            []string `json:"products" jsonschema_description:"Main products or services offered"`
	TargetAudience      string   `json:"target_audience" jsonschema_description:"Who the company sells to"`
	Competitors         []string `json:"competitors" jsonschema_description:"Named direct competitors"`
	UniqueSellingPoints []string `json:"unique_selling_points" jsonschema_description:"What differentiates the company"`
	MarketPosition      string   `json:"market_position" jsonschema_description:"Where the company sits in its market"`
}

// BrandProfile is the structured form of a brand voice analysis.
type BrandProfile struct {
	Personality string   `json:"personality" jsonschema_description:"Brand personality in a few words"`
	Tone        string   `json:"tone" jsonschema_description:"Voice and tone guidance for copy"`
	Values      []string `json:"values" jsonschema_description:"Core values the brand communicates"`
	Keywords    []string `json:"keywords" jsonschema_description:"Words and phrases the brand favors"`
}
