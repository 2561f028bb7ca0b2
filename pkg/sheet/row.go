// Package sheet defines the fixed positional row layout of the
// external spreadsheet sink. The sink addresses cells positionally, so
// the column order here must be preserved exactly. Record-to-row
// conversion lives only in this package.
package sheet

import (
	"strings"

	"github.com/fundradar/fundradar/pkg/funding"
)

// Column positions in sink rows.
const (
	ColCompany = iota
	ColWebsite
	ColProfileLink
	ColAmount
	ColRound
	ColIndustry
	ColDescription
	ColSourceLink
	ColInvestors
	ColNewsDate
	ColLastUpdated

	// NumColumns is the fixed row width.
	NumColumns
)

// Row is one positional sink row.
type Row []string

// Header is the sink header row.
var Header = Row{
	"Company",
	"Website",
	"LinkedIn",
	"Amount",
	"Funding Round",
	"Industry",
	"Description",
	"Source",
	"Investors",
	"Funding Date",
	"Last Updated",
}

// profileBaseURL prefixes the company slug in the profile-link column.
const profileBaseURL = "https://www.linkedin.com/company/"

// FromRecord converts a record into its positional row form.
func FromRecord(r funding.Record) Row {
	row := make(Row, NumColumns)
	row[ColCompany] = r.Company
	row[ColWebsite] = r.Website
	if slug := r.Slug(); slug != "" {
		row[ColProfileLink] = profileBaseURL + slug
	}
	row[ColAmount] = r.Amount
	row[ColRound] = r.Round
	row[ColIndustry] = r.Industry
	row[ColDescription] = r.Description
	row[ColSourceLink] = r.SourceLink
	row[ColInvestors] = strings.Join(r.Investors, ", ")
	row[ColNewsDate] = r.NewsDate
	row[ColLastUpdated] = r.LastUpdated
	return row
}

// Key resolves a sink row to its funding event identity. Short rows
// resolve from whatever columns they have, matching how the sink
// returns trailing empty cells.
func (row Row) Key() funding.Key {
	r := funding.Record{
		Company:  row.cell(ColCompany),
		Round:    row.cell(ColRound),
		NewsDate: row.cell(ColNewsDate),
	}
	return r.Key()
}

// Round returns the round column value.
func (row Row) Round() string {
	return row.cell(ColRound)
}

// EventKey identifies the row's funding event without its round, for
// matching rows whose round column holds a sentinel.
func (row Row) EventKey() string {
	return funding.Normalize(row.cell(ColCompany)) + "_" + row.cell(ColNewsDate)
}

// cell returns a column value, tolerating short rows.
func (row Row) cell(col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}
