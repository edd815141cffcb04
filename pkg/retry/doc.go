// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package retry provides the per-status retry policy of the Direct API client.

A [Policy] maps a failure status code to a [Limit]. The limit carries a
global retry budget and optional per-endpoint overrides:

	policy := retry.Policy{
	    429: {Global: 2, Backoff: 500 * time.Millisecond},
	    503: {Global: 1, Endpoints: map[string]int{"charges": 0}},
	}

Endpoint overrides match the exact endpoint path first ("charges/ABC") and
then its leading resource ("charges").

The caller passes the number of retries already made for the current call;
the policy never stores call history. Statuses without an entry are never
retried, and transport failures that produce no status are never consulted.

In YAML configuration the same table reads:

	retry:
	  429:
	    global: 2
	    backoff: 500ms
	  503:
	    global: 1
	    endpoints:
	      charges: 0
*/
package retry
