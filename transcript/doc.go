// This file is part of RoRSplit.
//
// RoRSplit is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// RoRSplit is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with RoRSplit.  If not, see <https://www.gnu.org/licenses/>.

// Package transcript reads and plays scripted sessions with a game process.
// A transcript describes the memory of a simulated process and how it changes
// from tick to tick. Playing a transcript through the autosplitter shows what
// the autosplitter does in response. Expectations in the transcript turn it
// into a regression test.
//
// The format is line based. Anything following a # character is a comment.
// Arguments containing spaces are quoted. Numbers can be given in decimal or
// in hexadecimal with the 0x prefix.
//
// Directives before the first tick set up the process. They are performed
// again if the transcript restarts the process:
//
//	process "Risk of Rain.exe"
//	module "Risk of Rain.exe" 0x400000 0x3000000
//	segments 0
//	settings "ror1_stages::true"
//	chain runend 32 0x400000 0x2BEB5E0 0x0 0x548 0xC 0xB4
//	poke i32 @runend 0
//
// The process directive is required. The segments directive is the number of
// splits that end the run on the simulated timer.
//
// Managed runtime directives add images, classes and fields:
//
//	image RoR2
//	class RoR2 FadeToBlackManager 0x50000
//	field RoR2 FadeToBlackManager alpha 0x4
//
// The body of the transcript is a list of tick blocks. The tick directive
// has an optional count and the block is played for that many ticks. The
// directives in the block are performed before the first of the ticks:
//
//	tick
//	poke i32 0x2FED7A8 6
//
//	tick 3
//	scene "Assets/RoR2/Scenes/golemplains.unity"
//	poke f32 0x50004 0.5
//	expect commands start gametime
//
// Poke types are i32, u32, u64, f32, f64, bool, str, utf16, ptr32 and ptr64.
// The str and utf16 types are NUL terminated. An address can be a number or
// the label of a chain.
//
// Other directives in a tick block:
//
//	scene                 the scene is in transition
//	detach                the process is no longer attached
//	attach                the process is attached again
//	restart               the process is replaced by a new instance
//	timer reset|start|end the user operates the host's timer
//	settings missing      the host has no configuration for the autosplitter
//
// Expectations are checked after the last tick of the block. The commands
// expectation lists every command sent to the timer during the block, or
// none:
//
//	expect commands split pause
//	expect commands none
//	expect status "Risk of Rain v1.2.2"
//	expect gametime 1.5s
//	expect paused true
package transcript
