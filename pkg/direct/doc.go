// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package direct implements the JSON Direct API client.

Every call carries the merchant credentials plus a fresh nonce and timestamp,
and is authorized with an HMAC-SHA512 signature over

	method + url + body + merchantId + nonce + timestamp

keyed by the client secret (see package signing).

# Resources

	charges, _ := direct.NewCharges(cfg, direct.WithLogger(logger))
	result, err := charges.PostCharges(ctx, direct.ChargeSale, payload)

The factory builds a resource client by identifier:

	res, err := direct.Get("charges", cfg, logger)
	charges := res.(*direct.Charges)

# Retries

Failure statuses are retried according to cfg.Retry. A status with no entry
is never retried. The final failure is a *gwerr.RequestError carrying the
request and the last response.

# Transports

By default POST and PUT use the raw-stream transport and other methods the
standard HTTP client; WithTransport overrides both.
*/
package direct
