// Package machine contains the framework shared by the AMN abstract
// machines.
//
// This package contains:
//   - The fault taxonomy for parse-time and run-time errors
//   - Pull-based input sources consumed by READ instructions
//   - Generic program parsing with line-numbered faults
//   - The Machine capability set and the program driver
package machine

// Version of the instruction set implementation.
const Version = "0.6.1"
