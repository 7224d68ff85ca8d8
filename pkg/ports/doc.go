/*
Package ports defines the driven ports (interfaces) of the screenwalk harness.

These interfaces decouple the navigator and the runner from the application
under test and from persistence, so the same scenarios run against a real
device or the in-memory simulator.

# Key Interfaces

  - Driver: Interacts with the application under test through its accessibility tree.
  - ReportStore: Persists suite run reports.
  - DistributedLocker: Serializes access to a device across processes.
  - Navigator: The navigation surface exposed to outer adapters (HTTP, MCP).
*/
package ports
