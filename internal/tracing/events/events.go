// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package events provides definitions and functions related to the definition of telemetry events.
package events

// Command event names follow the convention cmd.<command invocation path with spaces replaced by .>.
//
// Examples:
//   - cmd.add
//   - cmd.list
const CommandEventPrefix = "cmd."

// Prefix for language service rpc events.
const RpcEventPrefix = "rpc."

// ProjectLocateEvent is the name of the event which tracks one workspace scan for a functions project.
const ProjectLocateEvent = "project.locate"

// ServiceLaunchEvent is the name of the event which tracks spawning or attaching to the language service.
const ServiceLaunchEvent = "service.launch"
