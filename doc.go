// Package md2docx post-processes generated report documents: it locates
// the table-of-contents region, classifies tables by their header
// signature and applies per-category styling, forces page breaks before
// section titles, rescales inline images to the usable page width,
// normalizes the report font while restyling headings, and persists the
// result.
//
// # Quick Start
//
// Create a processor and run it over a saved document:
//
//	p, err := md2docx.NewProcessor()
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := p.ProcessFile(ctx, "report.json"); err != nil {
//		log.Fatal(err)
//	}
//
// Or convert a markdown report end to end:
//
//	err = p.ConvertFile(ctx, "report.md", "out/report.json")
//
// Individual stages degrade gracefully: a failure in one stage is logged
// and the remaining stages still run. Only a failed save aborts a run.
package md2docx
