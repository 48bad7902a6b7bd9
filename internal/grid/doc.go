// Package grid defines the payloads exchanged with the Smart Grid analysis
// service: the health document, the per-cycle Snapshot, and system info.
//
// Every Snapshot section other than Status is optional. Absent sections decode
// to nil and consumers treat nil as "use defaults" rather than an error.
package grid
