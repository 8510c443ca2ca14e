// Package export renders the submissions log as the downloadable CSV the
// admin view offers.
package export

import (
	"bytes"
	"encoding/csv"

	"ppm-service/internal/model"
)

// Filename is the download name offered to the browser.
const Filename = "PPM_inputs_export.csv"

// CSV renders the deduplicated log with the fixed 14-column header, values as
// text, rows in insertion order.
func CSV(subs []model.Submission) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(model.SubmissionColumns); err != nil {
		return nil, err
	}
	for _, s := range model.Deduplicate(subs) {
		if err := w.Write(s.Row()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
