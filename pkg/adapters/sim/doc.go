// Package sim provides an in-memory browser that answers driver calls with a
// simulated accessibility tree. It lets the navigator and the acceptance
// suites run without a device.
package sim
