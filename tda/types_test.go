package tda

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenResponseUnmarshal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var resp TokenResponse
		err := json.Unmarshal([]byte(`{"access_token":"T1","scope":"read write","expires_in":1800}`), &resp)
		require.NoError(t, err)
		assert.Equal(t, "T1", resp.AccessToken)
		assert.Equal(t, "read write", resp.Scope)
		assert.Equal(t, int64(1800), resp.ExpiresIn)
	})

	t.Run("missing access_token", func(t *testing.T) {
		var resp TokenResponse
		err := json.Unmarshal([]byte(`{"scope":"read","expires_in":1800}`), &resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access_token")
	})

	t.Run("missing expires_in", func(t *testing.T) {
		var resp TokenResponse
		err := json.Unmarshal([]byte(`{"access_token":"T1","scope":"read"}`), &resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expires_in")
	})
}

func TestPriceHistoryUnmarshal(t *testing.T) {
	valid := `{
		"candles": [
			{"open":132.43,"high":132.63,"low":130.23,"close":130.92,"volume":106239823,"datetime":1609740000000}
		],
		"empty": false,
		"symbol": "AAPL"
	}`

	t.Run("valid", func(t *testing.T) {
		var h PriceHistory
		require.NoError(t, json.Unmarshal([]byte(valid), &h))
		assert.Equal(t, "AAPL", h.Symbol)
		assert.False(t, h.Empty)
		require.Len(t, h.Candles, 1)
		assert.Equal(t, 132.43, h.Candles[0].Open)
		assert.Equal(t, int64(1609740000000), h.Candles[0].Datetime)
	})

	t.Run("missing symbol is a parse error", func(t *testing.T) {
		var h PriceHistory
		err := json.Unmarshal([]byte(`{"candles":[],"empty":true}`), &h)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "symbol")
	})

	t.Run("missing candles is a parse error", func(t *testing.T) {
		var h PriceHistory
		err := json.Unmarshal([]byte(`{"symbol":"AAPL","empty":true}`), &h)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "candles")
	})

	t.Run("candle missing a price field is a parse error", func(t *testing.T) {
		var h PriceHistory
		err := json.Unmarshal([]byte(`{"symbol":"AAPL","empty":false,"candles":[{"open":1,"high":2,"low":0.5,"volume":10,"datetime":1609740000000}]}`), &h)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "close")
	})
}

func TestMoverUnmarshal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var m Mover
		err := json.Unmarshal([]byte(`{"change":0.0253,"description":"Boeing Co","direction":"up","last":221.98,"symbol":"BA","totalVolume":21560012}`), &m)
		require.NoError(t, err)
		assert.Equal(t, "BA", m.Symbol)
		assert.Equal(t, "up", m.Direction)
		assert.Equal(t, int64(21560012), m.TotalVolume)
	})

	t.Run("missing symbol", func(t *testing.T) {
		var m Mover
		err := json.Unmarshal([]byte(`{"change":0.1,"description":"x","direction":"up","last":10,"totalVolume":1}`), &m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "symbol")
	})
}

const marginAccountJSON = `{
	"securitiesAccount": {
		"type": "MARGIN",
		"accountId": "123456789",
		"roundTrips": 0,
		"isDayTrader": false,
		"isClosingOnlyRestricted": false,
		"initialBalances": {
			"accountValue": 10000.5,
			"cashBalance": 2500.25,
			"isInCall": false
		},
		"currentBalances": {
			"liquidationValue": 10250.75,
			"cashBalance": 2500.25
		},
		"projectedBalances": {
			"cashAvailableForTrading": 2000
		}
	}
}`

func TestAccountUnmarshal(t *testing.T) {
	t.Run("margin account", func(t *testing.T) {
		var account Account
		require.NoError(t, json.Unmarshal([]byte(marginAccountJSON), &account))

		margin, err := account.SecuritiesAccount.Margin()
		require.NoError(t, err)
		assert.Equal(t, "MARGIN", margin.Type)
		assert.Equal(t, "123456789", margin.AccountID)
		assert.False(t, margin.IsDayTrader)

		// Present fields decode; absent fields stay nil rather than
		// defaulting to zero.
		require.NotNil(t, margin.InitialBalances.AccountValue)
		assert.Equal(t, 10000.5, *margin.InitialBalances.AccountValue)
		require.NotNil(t, margin.InitialBalances.IsInCall)
		assert.False(t, *margin.InitialBalances.IsInCall)
		assert.Nil(t, margin.InitialBalances.BondValue)
		require.NotNil(t, margin.CurrentBalances.LiquidationValue)
		assert.Equal(t, 10250.75, *margin.CurrentBalances.LiquidationValue)
		assert.Nil(t, margin.CurrentBalances.Savings)
		require.NotNil(t, margin.ProjectedBalances.CashAvailableForTrading)
		assert.Equal(t, 2000.0, *margin.ProjectedBalances.CashAvailableForTrading)
	})

	t.Run("unknown variant decodes but fails closed on access", func(t *testing.T) {
		payload := `{"securitiesAccount":{"type":"CASH","accountId":"987654321","cashBalance":100}}`

		var account Account
		require.NoError(t, json.Unmarshal([]byte(payload), &account))

		_, err := account.SecuritiesAccount.Margin()
		require.Error(t, err)

		var unsupported *UnsupportedAccountError
		require.ErrorAs(t, err, &unsupported)
		assert.Contains(t, string(unsupported.Raw), `"CASH"`)
	})

	t.Run("list of accounts with mixed variants", func(t *testing.T) {
		payload := `[` + marginAccountJSON + `,{"securitiesAccount":{"type":"CASH","accountId":"987654321"}}]`

		var accounts []Account
		require.NoError(t, json.Unmarshal([]byte(payload), &accounts))
		require.Len(t, accounts, 2)

		_, err := accounts[0].SecuritiesAccount.Margin()
		assert.NoError(t, err)
		_, err = accounts[1].SecuritiesAccount.Margin()
		assert.Error(t, err)
	})

	t.Run("raw payload round trips", func(t *testing.T) {
		var account Account
		require.NoError(t, json.Unmarshal([]byte(marginAccountJSON), &account))

		data, err := json.Marshal(account)
		require.NoError(t, err)

		var again Account
		require.NoError(t, json.Unmarshal(data, &again))
		margin, err := again.SecuritiesAccount.Margin()
		require.NoError(t, err)
		assert.Equal(t, "123456789", margin.AccountID)
	})
}
