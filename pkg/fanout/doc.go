// SPDX-License-Identifier: BSD-3-Clause

// Package fanout broadcasts a single published message to every currently
// subscribed channel. A subscriber whose done channel has been closed is
// removed the next time a send observes it; this lazy cleanup is the only
// garbage collection fanout performs, which is fine because a disconnected
// client simply stops receiving events. A subscriber that stays registered
// but stops reading is not removed: once its buffer is full, a send waits
// until it takes the message.
package fanout
