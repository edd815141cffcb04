// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package sevd implements the XML hosted-checkout (SEVD) client.

A request is a Request_v1 document, built with etree, form-encoded as the
"request" field and posted over the raw-stream transport. The response body
is an opaque tokenized envelope and is returned unparsed.

	charge, err := sevd.NewChargeRequest(cfg)
	token, err := charge.UISale(ctx,
	    sevd.Transaction{Reference1: "INV-1", Amount: "10.00"},
	    sevd.Customer{Name: sevd.Name{FirstName: "Ada"}},
	    true, sevd.UISettings{})

BuildUISale returns the document without sending it. Requests are never
retried; a failure status is returned as a *gwerr.RequestError.
*/
package sevd
