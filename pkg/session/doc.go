/*
Package session serializes access to test devices.

A device can only run one suite at a time. Within a process the Manager keeps a
reference-counted mutex per device; across processes it can additionally hold a
distributed lock (for example the Redis adapter) for as long as the suite runs.
*/
package session
