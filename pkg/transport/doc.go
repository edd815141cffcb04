// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package transport implements the HTTP transports used by the gateway clients.

All transports satisfy a single interface:

	type Transport interface {
	    Do(ctx context.Context, req *Request) (*Response, error)
	}

Non-2xx statuses are returned as a [Response]; an error means the exchange
itself could not be completed.

# Implementations

  - [HTTPSClient]: the standard net/http client with TLS 1.2/1.3 and a
    configurable timeout.
  - [RawClient]: writes the request to a TCP/TLS connection and parses the
    literal response stream. The gateway's Direct API mishandles request
    bodies sent by the standard client, so POST and PUT calls use this path.
  - [MethodRouter]: dispatches to one of the two by HTTP method.

# Failure Synthesis

The raw-stream path has no structured errors of its own. When the connection
cannot be opened or written, or when the response carries no observable
status line and headers, [RawClient] returns a synthesized 504 Gateway
Timeout response so that callers handle it like any other failed status.

# Status Lines

When a stream contains interim 1xx header blocks, the last status line wins:

	HTTP/1.1 100 Continue

	HTTP/1.1 201 Created
	Content-Type: application/json
*/
package transport
