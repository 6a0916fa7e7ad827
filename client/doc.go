// Package client implements the resilient request pipeline for the
// image-generation API, plus the typed call surface built on top of
// it.
//
// # Pipeline
//
// [Client.Do] wraps every network call with credential injection,
// single-flight token refresh, bounded retry, and error
// classification:
//
//	store := core.NewMemoryStore()
//	c := client.New("https://api.example.com", refresher,
//	    client.WithCredentialStore(store),
//	    client.WithErrorSink(toasts),
//	)
//	user, err := c.Me(ctx)
//
// On a 401 the pipeline refreshes the credential once and replays the
// request; concurrent 401s share a single refresh and replay with the
// same new token. On 429/5xx it retries per the configured
// [core.RetryPolicy]. Every failure that escapes Do is a
// *core.ClassifiedError; recover the display record with
// [core.InfoFromError].
//
// # Domain surface
//
// Typed wrappers cover generation CRUD ([Client.TextToImage],
// [Client.Generations], [Client.DownloadZip]...), billing
// ([Client.Subscription], [Client.Checkout], [Client.Usage]...), the
// account ([Client.Me]) and health probes. They are pass-through: the
// backend payloads are returned unmodified.
//
// # Polling
//
// [Client.WaitForGeneration] polls a generation at a fixed interval
// until it completes, fails, is cancelled, or the attempt budget runs
// out. Cancel by cancelling the context.
package client
