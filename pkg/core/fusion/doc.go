// Package fusion arbitrates a single pointer stream between a panel's own
// drag and the native scrolling of a region embedded inside it.
//
// A [Coordinator] subscribes to a [Scrollable]'s offset changes and, for
// every change, picks one of three modes:
//
//   - [ModeHalted]: the panel is not anchored, so the embedded content is
//     pinned back to its last accepted offset and its indicator hidden.
//   - [ModeTracking]: the content scrolls normally and its offset is cached.
//   - [ModeBouncing]: a full-bleed scrollable was pulled past its top edge;
//     the panel stretches and follows the overscroll, then snaps back.
//
// Offset notifications are synchronous with the mutation that caused them,
// so a halt is applied before the host renders. The coordinator ignores the
// notification produced by its own corrective offset write.
//
// [Region] is an in-memory [Scrollable] with drag, wheel, and deceleration
// support. Hosts that already own a scroll widget can implement
// [Scrollable] themselves and publish through an [OffsetFeed].
package fusion
