package domain

import "time"

// Company is a carrier, wholesaler or agency publishing products.
type Company struct {
	ID          string
	Name        string
	ShortName   string
	Description string
	Location    string
	Phone       string
	Website     string
	Logo        string
	NAIC        string
	IsCarrier   bool
	Joined      time.Time
	Products    []string
}

// CompanyPage is a page of companies.
type CompanyPage struct {
	Count     int
	Page      int
	Pages     int
	PerPage   int
	Companies []Company
}
