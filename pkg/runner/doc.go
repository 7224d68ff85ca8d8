/*
Package runner executes registered acceptance tests against a device.

Cases run one after another. Each case gets a freshly launched app, a new
navigator positioned on the launch screen and its own timeout. The device is
leased through a session.Manager for the whole run, and the resulting report is
persisted to a ports.ReportStore when one is configured.
*/
package runner
