// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package schedule keeps the production schedule: shoot days, scouting
// trips, casting calls and similar dated events.
package schedule
