package tda

import (
	"net/url"
	"strconv"
)

// Bool returns a pointer to b, for use with optional boolean parameters.
func Bool(b bool) *bool {
	return &b
}

// GetAccountParams holds the optional parameters for Client.GetAccount.
//
// The zero value sends no query parameters. String fields left empty are
// omitted from the request entirely. No cross-field validation is done
// here; invalid combinations are rejected by the API itself.
type GetAccountParams struct {
	// Fields selects additional sections beyond balances.
	// Choices: "positions", "orders" (comma-separated for both).
	Fields string
}

// Values returns the query parameters for the present fields.
func (p GetAccountParams) Values() url.Values {
	v := url.Values{}
	if p.Fields != "" {
		v.Set("fields", p.Fields)
	}
	return v
}

// GetAccountsParams holds the optional parameters for Client.GetAccounts.
type GetAccountsParams struct {
	// Fields selects additional sections beyond balances.
	// Choices: "positions", "orders" (comma-separated for both).
	Fields string
}

// Values returns the query parameters for the present fields.
func (p GetAccountsParams) Values() url.Values {
	v := url.Values{}
	if p.Fields != "" {
		v.Set("fields", p.Fields)
	}
	return v
}

// GetMoversParams holds the optional parameters for Client.GetMovers.
type GetMoversParams struct {
	// Direction restricts results to movers going "up" or "down".
	Direction string

	// Change selects the change type: "value" or "percent".
	Change string
}

// Values returns the query parameters for the present fields.
func (p GetMoversParams) Values() url.Values {
	v := url.Values{}
	if p.Direction != "" {
		v.Set("direction", p.Direction)
	}
	if p.Change != "" {
		v.Set("change", p.Change)
	}
	return v
}

// GetPriceHistoryParams holds the optional parameters for
// Client.GetPriceHistory.
//
// StartDate/EndDate are milliseconds since epoch. If both are provided,
// Period should not be. Valid period/frequency combinations are
// enforced by the API, not here.
type GetPriceHistoryParams struct {
	// PeriodType is the type of period to show: "day", "month",
	// "year" or "ytd". Default is "day".
	PeriodType string

	// Period is the number of periods to show.
	Period string

	// FrequencyType is the type of frequency with which a new candle
	// is formed, e.g. "minute", "daily", "weekly", "monthly".
	FrequencyType string

	// Frequency is the number of the FrequencyType included in each
	// candle, e.g. 1, 5, 10, 15, 30 for "minute".
	Frequency string

	// EndDate is the end date as milliseconds since epoch. Default is
	// the previous trading day.
	EndDate string

	// StartDate is the start date as milliseconds since epoch.
	StartDate string

	// NeedExtendedHoursData requests extended hours data when true,
	// regular market hours only when false. Nil omits the parameter
	// (the API defaults to true).
	NeedExtendedHoursData *bool
}

// Values returns the query parameters for the present fields.
func (p GetPriceHistoryParams) Values() url.Values {
	v := url.Values{}
	if p.PeriodType != "" {
		v.Set("periodType", p.PeriodType)
	}
	if p.Period != "" {
		v.Set("period", p.Period)
	}
	if p.FrequencyType != "" {
		v.Set("frequencyType", p.FrequencyType)
	}
	if p.Frequency != "" {
		v.Set("frequency", p.Frequency)
	}
	if p.EndDate != "" {
		v.Set("endDate", p.EndDate)
	}
	if p.StartDate != "" {
		v.Set("startDate", p.StartDate)
	}
	if p.NeedExtendedHoursData != nil {
		v.Set("needExtendedHoursData", strconv.FormatBool(*p.NeedExtendedHoursData))
	}
	return v
}
