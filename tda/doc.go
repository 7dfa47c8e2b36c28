// Package tda provides a typed client for the TD Ameritrade REST API.
//
// The client covers OAuth2 token refresh, account retrieval, market
// movers and price-history candles. Each method is a single synchronous
// request/response round trip with no retry, caching or rate-limit
// handling; that policy, if wanted, belongs to the caller.
//
// # Usage
//
// Create a client with your application's client ID and a valid
// refresh token, then obtain and install an access token:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tda.NewClient("CLIENT_ID", "REFRESH_TOKEN", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.RefreshAccessToken(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	token := tda.NewAccessToken(*resp)
//	client.SetAccessToken(&token)
//
//	history, err := client.GetPriceHistory(ctx, "AAPL", tda.GetPriceHistoryParams{
//		PeriodType: "day",
//		Period:     "2",
//	})
//
// Tokens can equally come from storage instead of the token endpoint;
// use tda.WithAccessToken or SetAccessToken with a previously persisted
// AccessToken. The library does not refresh tokens on its own — check
// AccessToken.Expired and refresh when needed.
//
// # Error Handling
//
// All methods surface errors to the immediate caller and never retry:
//
//   - *StatusError: the API answered with a non-200 status; carries the
//     status code and the raw body verbatim
//   - *ParseError: the API answered 200 but the body did not match the
//     expected schema; wraps the decode failure
//   - ErrNoToken: an authenticated method was called before an access
//     token was installed
//   - *UnsupportedAccountError: a securities account payload did not
//     match any modeled variant; carries the raw payload
//
// Transport-level failures (DNS, refused connections) are returned as
// wrapped errors from the underlying HTTP client.
//
// # Concurrency
//
// A Client owns a single mutable token slot and is not safe for
// concurrent use across goroutines without external synchronization;
// alternatively, use one Client per goroutine.
package tda
