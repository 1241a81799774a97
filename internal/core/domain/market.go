package domain

import "encoding/json"

// PriceQuery filters a mandi price lookup. Empty strings are not sent.
type PriceQuery struct {
	State     string
	District  string
	Market    string
	Commodity string
	Variety   string
	Grade     string
	Limit     int
	Offset    int
}

// PriceResult is one page of price records as published by the data source.
// Total is the size of the full result set when the source reports it.
type PriceResult struct {
	Records []json.RawMessage
	Total   int
}
