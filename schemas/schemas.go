// Package schemas embeds the JSON Schemas that pin the output contracts.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory
//
//go:embed *.schema.json
var FS embed.FS

// ReportFile is the schema for an analysis report
const ReportFile = "report.schema.json"

// Report returns the raw report schema
func Report() []byte {
	data, err := FS.ReadFile(ReportFile)
	if err != nil {
		panic(err)
	}
	return data
}
