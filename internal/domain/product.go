package domain

// Product is an insurance product published on Ask Kodiak.
type Product struct {
	ID           string
	Name         string
	Description  string
	OwnerID      string
	OwnerType    string
	Admitted     *bool
	CoverageType []string
	Highlights   []string

	// Geos lists the ISO 3166-2 codes the product is offered in.
	Geos []string

	// Eligible and Score are only set on search results.
	Eligible *bool
	Score    int
}

// ProductPage is a page of products, optionally scoped to a NAICS code.
type ProductPage struct {
	Hash        string
	Code        string
	Description string
	Type        string
	Count       int
	Page        int
	Pages       int
	PerPage     int
	Products    []Product
}

// Eligibility is the answer to "is product P eligible for NAICS code C".
type Eligibility struct {
	ProductID string
	Code      string
	Eligible  bool

	// PercentOfCodesEligible is set when Code names a group rather than a leaf code.
	PercentOfCodesEligible float64
}

// EligibilityReport summarises eligibility of one product across several codes.
type EligibilityReport struct {
	ProductID  string
	Results    []Eligibility
	Eligible   []string
	Ineligible []string
}
