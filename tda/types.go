package tda

import (
	"encoding/json"
	"fmt"
)

// TokenResponse is the raw body returned by the token endpoint. It is
// not directly usable as a bearer credential; convert it with
// NewAccessToken before installing it on a client.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
	ExpiresIn   int64  `json:"expires_in"`
}

// UnmarshalJSON decodes a token response, rejecting bodies that are
// missing required fields rather than defaulting them.
func (r *TokenResponse) UnmarshalJSON(data []byte) error {
	var aux struct {
		AccessToken *string `json:"access_token"`
		Scope       *string `json:"scope"`
		ExpiresIn   *int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.AccessToken == nil {
		return fmt.Errorf("token response missing required field %q", "access_token")
	}
	if aux.Scope == nil {
		return fmt.Errorf("token response missing required field %q", "scope")
	}
	if aux.ExpiresIn == nil {
		return fmt.Errorf("token response missing required field %q", "expires_in")
	}

	r.AccessToken = *aux.AccessToken
	r.Scope = *aux.Scope
	r.ExpiresIn = *aux.ExpiresIn
	return nil
}

// PriceHistory is the response returned by Client.GetPriceHistory.
type PriceHistory struct {
	Symbol  string   `json:"symbol"`
	Empty   bool     `json:"empty"`
	Candles []Candle `json:"candles"`
}

// UnmarshalJSON decodes a price history response, rejecting bodies
// missing the symbol or candle list.
func (h *PriceHistory) UnmarshalJSON(data []byte) error {
	var aux struct {
		Symbol  *string  `json:"symbol"`
		Empty   bool     `json:"empty"`
		Candles []Candle `json:"candles"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Symbol == nil {
		return fmt.Errorf("price history missing required field %q", "symbol")
	}
	if aux.Candles == nil {
		return fmt.Errorf("price history missing required field %q", "candles")
	}

	h.Symbol = *aux.Symbol
	h.Empty = aux.Empty
	h.Candles = aux.Candles
	return nil
}

// Candle is a single OHLCV record. Datetime is milliseconds since
// epoch; prices are IEEE-754 doubles, matching the wire encoding.
type Candle struct {
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   int64   `json:"volume"`
	Datetime int64   `json:"datetime"`
}

// UnmarshalJSON decodes a candle. Candles are fixed-shape records, so
// every field is required.
func (c *Candle) UnmarshalJSON(data []byte) error {
	var aux struct {
		Open     *float64 `json:"open"`
		High     *float64 `json:"high"`
		Low      *float64 `json:"low"`
		Close    *float64 `json:"close"`
		Volume   *int64   `json:"volume"`
		Datetime *int64   `json:"datetime"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	for name, present := range map[string]bool{
		"open":     aux.Open != nil,
		"high":     aux.High != nil,
		"low":      aux.Low != nil,
		"close":    aux.Close != nil,
		"volume":   aux.Volume != nil,
		"datetime": aux.Datetime != nil,
	} {
		if !present {
			return fmt.Errorf("candle missing required field %q", name)
		}
	}

	c.Open = *aux.Open
	c.High = *aux.High
	c.Low = *aux.Low
	c.Close = *aux.Close
	c.Volume = *aux.Volume
	c.Datetime = *aux.Datetime
	return nil
}

// Mover is one top-mover entry returned by Client.GetMovers.
type Mover struct {
	Change      float64 `json:"change"`
	Description string  `json:"description"`
	Direction   string  `json:"direction"`
	Last        float64 `json:"last"`
	Symbol      string  `json:"symbol"`
	TotalVolume int64   `json:"totalVolume"`
}

// UnmarshalJSON decodes a mover entry, rejecting entries missing the
// symbol or price fields.
func (m *Mover) UnmarshalJSON(data []byte) error {
	var aux struct {
		Change      *float64 `json:"change"`
		Description string   `json:"description"`
		Direction   *string  `json:"direction"`
		Last        *float64 `json:"last"`
		Symbol      *string  `json:"symbol"`
		TotalVolume *int64   `json:"totalVolume"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	for name, present := range map[string]bool{
		"change":      aux.Change != nil,
		"direction":   aux.Direction != nil,
		"last":        aux.Last != nil,
		"symbol":      aux.Symbol != nil,
		"totalVolume": aux.TotalVolume != nil,
	} {
		if !present {
			return fmt.Errorf("mover missing required field %q", name)
		}
	}

	m.Change = *aux.Change
	m.Description = aux.Description
	m.Direction = *aux.Direction
	m.Last = *aux.Last
	m.Symbol = *aux.Symbol
	m.TotalVolume = *aux.TotalVolume
	return nil
}

// Account is one entry returned by Client.GetAccount and
// Client.GetAccounts.
type Account struct {
	SecuritiesAccount SecuritiesAccount `json:"securitiesAccount"`
}

// SecuritiesAccount is the account-type union inside an Account. The
// wire format carries no discriminant beyond the payload's own shape,
// so the concrete variant is detected structurally. Only the margin
// account variant is modeled; anything else is kept as a raw fallback
// and surfaces as an UnsupportedAccountError when accessed, leaving
// the rest of the response intact.
type SecuritiesAccount struct {
	margin *MarginAccount
	raw    json.RawMessage
}

// UnmarshalJSON detects and decodes the account variant. Unrecognized
// variants do not fail the decode; they are retained raw.
func (s *SecuritiesAccount) UnmarshalJSON(data []byte) error {
	s.raw = append(json.RawMessage(nil), data...)
	s.margin = nil

	var probe struct {
		Type            string          `json:"type"`
		AccountID       *string         `json:"accountId"`
		InitialBalances json.RawMessage `json:"initialBalances"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	// The margin variant is identified by its type marker plus the
	// presence of an account ID and balance sections.
	if probe.Type != "MARGIN" || probe.AccountID == nil || probe.InitialBalances == nil {
		return nil
	}

	var m MarginAccount
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	s.margin = &m
	return nil
}

// MarshalJSON writes back the original wire payload.
func (s SecuritiesAccount) MarshalJSON() ([]byte, error) {
	if s.raw != nil {
		return s.raw, nil
	}
	return []byte("null"), nil
}

// Margin returns the margin-account variant, or an
// UnsupportedAccountError carrying the raw payload if the account is
// of an unmodeled type.
func (s *SecuritiesAccount) Margin() (*MarginAccount, error) {
	if s.margin == nil {
		return nil, &UnsupportedAccountError{Raw: s.raw}
	}
	return s.margin, nil
}

// Raw returns the undecoded account payload.
func (s *SecuritiesAccount) Raw() json.RawMessage {
	return s.raw
}

// MarginAccount is the margin variant of a securities account.
type MarginAccount struct {
	Type                    string            `json:"type"`
	AccountID               string            `json:"accountId"`
	RoundTrips              int               `json:"roundTrips"`
	IsDayTrader             bool              `json:"isDayTrader"`
	IsClosingOnlyRestricted bool              `json:"isClosingOnlyRestricted"`
	InitialBalances         InitialBalances   `json:"initialBalances"`
	CurrentBalances         CurrentBalances   `json:"currentBalances"`
	ProjectedBalances       ProjectedBalances `json:"projectedBalances"`
}

// InitialBalances holds the start-of-day balances of a securities
// account. Fields are pointers because different account types and
// subscription levels omit them; nil means "not reported", which is
// distinct from a reported zero.
type InitialBalances struct {
	AccountValue               *float64 `json:"accountValue"`
	AccruedInterest            *float64 `json:"accruedInterest"`
	BondValue                  *float64 `json:"bondValue"`
	CashAvailableForTrading    *float64 `json:"cashAvailableForTrading"`
	CashAvailableForWithdrawal *float64 `json:"cashAvailableForWithdrawal"`
	CashBalance                *float64 `json:"cashBalance"`
	CashDebitCallValue         *float64 `json:"cashDebitCallValue"`
	CashReceipts               *float64 `json:"cashReceipts"`
	IsInCall                   *bool    `json:"isInCall"`
	LiquidationValue           *float64 `json:"liquidationValue"`
	LongOptionMarketValue      *float64 `json:"longOptionMarketValue"`
	MoneyMarketFund            *float64 `json:"moneyMarketFund"`
	MutualFundValue            *float64 `json:"mutualFundValue"`
	PendingDeposits            *float64 `json:"pendingDeposits"`
	ShortOptionMarketValue     *float64 `json:"shortOptionMarketValue"`
	ShortStockValue            *float64 `json:"shortStockValue"`
	UnsettledCash              *float64 `json:"unsettledCash"`
}

// CurrentBalances holds the live balances of a securities account.
// See InitialBalances for the presence semantics.
type CurrentBalances struct {
	AccruedInterest            *float64 `json:"accruedInterest"`
	BondValue                  *float64 `json:"bondValue"`
	CashAvailableForTrading    *float64 `json:"cashAvailableForTrading"`
	CashAvailableForWithdrawal *float64 `json:"cashAvailableForWithdrawal"`
	CashBalance                *float64 `json:"cashBalance"`
	CashCall                   *float64 `json:"cashCall"`
	CashDebitCallValue         *float64 `json:"cashDebitCallValue"`
	CashReceipts               *float64 `json:"cashReceipts"`
	LiquidationValue           *float64 `json:"liquidationValue"`
	LongMarketValue            *float64 `json:"longMarketValue"`
	LongOptionMarketValue      *float64 `json:"longOptionMarketValue"`
	MoneyMarketFund            *float64 `json:"moneyMarketFund"`
	MutualFundValue            *float64 `json:"mutualFundValue"`
	PendingDeposits            *float64 `json:"pendingDeposits"`
	Savings                    *float64 `json:"savings"`
	ShortMarketValue           *float64 `json:"shortMarketValue"`
	ShortOptionMarketValue     *float64 `json:"shortOptionMarketValue"`
	TotalCash                  *float64 `json:"totalCash"`
	UnsettledCash              *float64 `json:"unsettledCash"`
}

// ProjectedBalances holds the projected balances of a securities
// account. See InitialBalances for the presence semantics.
type ProjectedBalances struct {
	CashAvailableForTrading    *float64 `json:"cashAvailableForTrading"`
	CashAvailableForWithdrawal *float64 `json:"cashAvailableForWithdrawal"`
}
