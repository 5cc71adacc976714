// Copyright 2026 The Skriba Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package formrec provides a client for the Skriba Forms document-analysis API.

Analysing a document is a long-running operation (LRO): the service accepts
the document, returns an operation handle, and the client polls the handle
until the analysis reaches a terminal state. The formrec package wraps this
pattern in a [Poller], which drives the status checks, reports progress to an
optional callback, and produces a typed [AnalyzeResult] on success.

The package provides a number of features for working with analysis LROs:
  - Starting operations: the BeginAnalyzeReceipt, BeginAnalyzeLayout and
    BeginAnalyzeCustomForm methods submit a document (or a URL pointing to
    one) and return a Poller.
  - Polling: Poller.Poll performs a single status check, while
    Poller.PollUntilDone blocks until the operation completes, honouring
    Retry-After hints from the service.
  - Resuming: Poller.ResumeToken captures the poller as a string which a
    fresh process can hand to ResumeReceiptPoller, ResumeLayoutPoller or
    ResumeCustomFormPoller to continue polling where the original left off.
  - Cancelling: Poller.Cancel abandons local polling of an operation that is
    still in flight.
*/
package formrec //import "go.skriba.build/formrec"
