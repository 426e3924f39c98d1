// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package motion smooths on-screen movement between simulation ticks.
//
// The game simulates at a fixed 25 Hz while frames are presented at
// whatever rate the display runs at. A [Predictor] tracks every unit and
// floating text across frames, and when an entity moves it renders the
// entity part of the way toward a quarter-step extrapolation of its
// motion, according to how far the [Clock] says the current frame is into
// the simulation tick. Simulation state itself is never touched: the
// predictor only returns screen offsets to add to vertex positions.
//
// Positions from the game are 16.16 fixed point ([Fixed], [Point]); text
// positions and all returned offsets are in screen pixels.
package motion
