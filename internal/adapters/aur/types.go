package aur

import "net/url"

// By selects the search dimension supported by the RPC endpoint
type By string

// Search dimensions
const (
	ByName       By = "name"
	ByMaintainer By = "maintainer"
)

// envelope is the RPC v5 reply wrapper. Type distinguishes a search
// reply from an error reply; unknown fields are ignored on decode
type envelope struct {
	Version     int       `json:"version"`
	Type        string    `json:"type"`
	ResultCount int       `json:"resultcount"`
	Results     []Package `json:"results"`
	Error       string    `json:"error"`
}

// Package is one AUR record as returned by the search endpoint.
// Description, URL and Maintainer are null for orphaned or sparse
// packages, hence the pointers
type Package struct {
	ID             int64   `json:"ID"`
	Name           string  `json:"Name"`
	PackageBase    string  `json:"PackageBase"`
	Version        string  `json:"Version"`
	Description    *string `json:"Description"`
	URL            *string `json:"URL"`
	NumVotes       int     `json:"NumVotes"`
	Popularity     float64 `json:"Popularity"`
	Maintainer     *string `json:"Maintainer"`
	FirstSubmitted int64   `json:"FirstSubmitted"`
	LastModified   int64   `json:"LastModified"`
}

// PageURL returns the canonical AUR web page for the package
func (p Package) PageURL() string {
	return "https://aur.archlinux.org/packages/" + url.PathEscape(p.Name)
}

// GitURL returns the clone URL of the package base repository
func (p Package) GitURL() string {
	return "https://aur.archlinux.org/" + url.PathEscape(p.PackageBase) + ".git"
}
