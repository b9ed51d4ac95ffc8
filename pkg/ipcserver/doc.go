// SPDX-License-Identifier: BSD-3-Clause

// Package ipcserver accepts connections on tutti's Unix domain socket and
// speaks the ipcframe wire protocol over each one. Every connection gets two
// cooperating goroutines sharing a per-connection outbound queue: an inbound
// loop that decodes frames and dispatches requests to a Handler, and an
// outbound loop that drains the queue and writes frames back. A single
// server-wide forwarder goroutine reads supervisor events and republishes
// them through a fanout.Fanout so every connected client observes every
// Stream frame; subscription happens implicitly on connection accept.
package ipcserver
