// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package procrt implements a concurrent process runtime: many lightweight,
// cooperatively-scheduled "processes" multiplexed across a fixed pool of
// worker goroutines (standing in for OS threads), communicating exclusively
// via synchronous rendezvous over named channels.
//
// A process is an isolated unit of execution backed by an [Isolate] - an
// embedded scripting context such as the one the isolate/goja subpackage
// provides using goja. The host program (the embedder's own goroutine)
// participates in the same channel protocol as any process, via the
// [Runtime] methods directly.
//
// The three subsystems are: the scheduler (ready-queue + worker pool, in
// scheduler.go), the channel subsystem ([Channel] plus the registry in
// registry.go), and the process lifecycle (newproc/sleep/recycle, in
// process.go and recycle.go).
package procrt
