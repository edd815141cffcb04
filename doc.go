// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package gopaygw is a client SDK for a card payment gateway.

# Overview

The gateway exposes two API families:

  - the Direct API, JSON REST resources (charges, credits, health) where
    every call is signed with HMAC-SHA512 over the method, URL, body,
    merchant id, nonce and timestamp
  - SEVD, an XML hosted-checkout interface that turns a Request_v1 document
    into an opaque tokenized envelope

# Package Structure

	github.com/sirosfoundation/go-paygw/pkg/config    - Configuration, YAML loading
	github.com/sirosfoundation/go-paygw/pkg/direct    - Direct API client and resources
	github.com/sirosfoundation/go-paygw/pkg/sevd      - SEVD client and Request_v1 builder
	github.com/sirosfoundation/go-paygw/pkg/signing   - Request signatures
	github.com/sirosfoundation/go-paygw/pkg/retry     - Per-status retry policy
	github.com/sirosfoundation/go-paygw/pkg/transport - Standard and raw-stream HTTP transports
	github.com/sirosfoundation/go-paygw/pkg/gwerr     - Error kinds

# Quick Start

	cfg, err := config.Load("paygw.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	charges, err := direct.NewCharges(cfg)
	if err != nil {
	    log.Fatal(err)
	}

	result, err := charges.PostCharges(ctx, direct.ChargeSale, payload)

# Errors

Three error kinds are returned, all inspectable with errors.As:

  - *gwerr.ConfigurationError at client construction, listing every
    missing key
  - *gwerr.ArgumentError for invalid per-call data; no request is sent
  - *gwerr.RequestError for a failure status after retries, including
    synthesized 504 responses from the raw-stream transport

# Retries

Direct API failures are retried per status code as configured in
config.Config.Retry; SEVD requests are sent once.

# Command Line

cmd/paygwctl wraps the clients for manual testing against the sandbox.
*/
package gopaygw
