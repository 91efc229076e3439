package model

import (
	"bytes"
	"encoding/json"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Format identifies a supported export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates an export format string. An unsupported format is a
// configuration error identifying the invalid value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON, FormatXLSX:
		return Format(s), nil
	default:
		return "", eris.Errorf("model: unsupported export format %q", s)
	}
}

// Export serializes the collection in the given format.
func (c LeadCollection) Export(format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return c.ExportCSV()
	case FormatJSON:
		return c.ExportJSON()
	case FormatXLSX:
		return c.ExportXLSX()
	default:
		return nil, eris.Errorf("model: unsupported export format %q", format)
	}
}

// ExportCSV serializes the collection as comma-separated values with a
// header naming every flat lead field.
func (c LeadCollection) ExportCSV() ([]byte, error) {
	data, err := csvutil.Marshal(c.Leads)
	if err != nil {
		return nil, eris.Wrap(err, "model: marshal csv")
	}
	return data, nil
}

// ImportCSV rebuilds a collection from ExportCSV output.
func ImportCSV(data []byte) (LeadCollection, error) {
	var leads []Lead
	if err := csvutil.Unmarshal(data, &leads); err != nil {
		return LeadCollection{}, eris.Wrap(err, "model: unmarshal csv")
	}
	return LeadCollection{Leads: leads}, nil
}

// ExportJSON serializes the collection as an indented JSON array of objects.
func (c LeadCollection) ExportJSON() ([]byte, error) {
	leads := c.Leads
	if leads == nil {
		leads = []Lead{}
	}
	data, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "model: marshal json")
	}
	return data, nil
}

// ExportXLSX serializes the collection as a single-sheet XLSX workbook.
func (c LeadCollection) ExportXLSX() ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Leads")
	if err != nil {
		return nil, eris.Wrap(err, "model: add xlsx sheet")
	}

	table := c.ToTable()
	header := sheet.AddRow()
	for _, col := range table.Columns {
		header.AddCell().Value = col
	}
	for _, row := range table.Rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().Value = cell
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, eris.Wrap(err, "model: write xlsx")
	}
	return buf.Bytes(), nil
}
