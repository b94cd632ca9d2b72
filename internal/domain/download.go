package domain

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

// The download service only holds January 2024 archives, so the date range
// is fixed.
const (
	DownloadStart = "20240101"
	DownloadEnd   = "20240131"
)

// ErrIncompleteSelection means the region path or variable set is not filled in.
var ErrIncompleteSelection = errors.New("region and variables must all be selected")

// DownloadRequest is the query sent to the weather-data service.
type DownloadRequest struct {
	ForecastID string
	City       string
	District   string
	Town       string
	Variables  []string
	Start      string
	End        string
}

// NewDownloadRequest validates sel and builds the request for it.
func NewDownloadRequest(sel Selection) (DownloadRequest, error) {
	if sel.Level1 == "" || sel.Level2 == "" || sel.Level3 == "" || len(sel.Variables) == 0 {
		return DownloadRequest{}, ErrIncompleteSelection
	}
	return DownloadRequest{
		ForecastID: sel.Forecast.ID,
		City:       sel.Level1,
		District:   sel.Level2,
		Town:       sel.Level3,
		Variables:  slices.Clone(sel.Variables),
		Start:      DownloadStart,
		End:        DownloadEnd,
	}, nil
}

// Query encodes the request parameters; variable repeats once per selection.
// The forecast type is not part of the service contract and is not sent.
func (r DownloadRequest) Query() url.Values {
	q := url.Values{}
	q.Set("city", r.City)
	q.Set("district", r.District)
	q.Set("town", r.Town)
	for _, v := range r.Variables {
		q.Add("variable", v)
	}
	q.Set("start", r.Start)
	q.Set("end", r.End)
	return q
}

// Filename is the archive name the payload is saved under.
func (r DownloadRequest) Filename() string {
	return fmt.Sprintf("%s_%s_%s.zip", r.Town, r.Start, r.End)
}
