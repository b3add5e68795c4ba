// Package model defines the data model shared by every other package in
// this module: job and operation identities, processing/setup/due-date
// tables, and the re-entrant flow-shop/job-shop instance description that
// graphbuild, longestpath, partial, forward, dd, and schedule all consume.
//
// # Identities
//
// JobID (uint64-backed) and OperationID, MachineID, ReEntrantID, and
// ModuleID (uint32-backed) are distinct types so that the several id spaces in a scheduling
// instance can never be confused at compile time. Three JobID values are
// reserved as sentinels (SourceJobID, TerminalJobID, MaintJobID) and mark
// synthetic vertices in the constraint graph built by graphbuild.
//
// # Delay arithmetic
//
// Delay is a signed 64-bit duration measured in whatever time unit the
// instance was specified in. ASAPNegInf and ALAPPosInf stand in for
// "unreachable"/"unconstrained" in the longest-path engine; AddSaturating
// keeps arithmetic on those sentinels from wrapping around.
//
// # Errors
//
//	ErrUnknownOperation - a table references an operation absent from Jobs.
//	ErrSelfDueDate      - a due date relates an operation to itself.
//	ErrBadFixedOrder    - JobsOutputOrder is not a permutation of Jobs' keys.
package model
