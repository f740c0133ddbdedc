// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The batch control flow is: folder discovery, ownership resolution,
// then per authoritative folder a marker read, transaction resolution
// and the file transfer pipeline, with every outcome aggregated into
// one run report.
package services
